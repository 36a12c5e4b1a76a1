package diagnosis

// script holds the fixed moves/targets advice for one classification.
// Content edits here never touch scoring logic.
type script struct {
	Moves   []string
	Targets []string
}

var recommendationScripts = map[Classification]script{
	ClassificationContender: {
		Moves: []string{
			"Trade future firsts for immediate starter upgrades",
			"Consolidate two depth pieces into one weekly starter",
			"Target discounted veterans from rebuilding teams",
		},
		Targets: []string{
			"Proven WR2s on contending offenses",
			"Veteran RBs with locked-in workloads",
			"Bye-week-proof depth at QB and TE",
		},
	},
	ClassificationRebuild: {
		Moves: []string{
			"Sell every veteran with positive trade value before the deadline",
			"Convert aging starters into rookie picks and young upside",
			"Absorb bad contracts or low-value players to buy extra picks",
		},
		Targets: []string{
			"First-round rookie picks, especially in superflex formats",
			"Second-year WRs buried on depth charts",
			"Young QBs before their breakout window prices you out",
		},
	},
	ClassificationStuck: {
		Moves: []string{
			"Pick a direction now - hold a contend-or-rebuild audit this week",
			"Shop your oldest productive starter to test the market",
			"Stop paying startup prices for mid-tier veterans",
		},
		Targets: []string{
			"Offers that consolidate mid-value pieces into one elite asset",
			"Rookie picks if the audit says rebuild",
			"Undervalued win-now veterans if the audit says push",
		},
	},
}

func scriptFor(classification Classification) script {
	if s, ok := recommendationScripts[classification]; ok {
		return s
	}
	return recommendationScripts[ClassificationStuck]
}
