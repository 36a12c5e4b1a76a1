package diagnosis

import (
	"fmt"
	"math"
	"sort"

	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
)

// StrengthBand maps a minimum starter average score to a group rating.
type StrengthBand struct {
	MinScore float64
	Rating   StrengthRating
}

// ContenderScoring holds the contender-score rule weights. Starter-average
// and elite-asset bands are exclusive (the stronger band wins); the premium
// position bonus applies once per listed position.
type ContenderScoring struct {
	StrongStarterAvg    float64
	StrongStarterPoints int
	SolidStarterAvg     float64
	SolidStarterPoints  int

	ManyEliteAssets int
	ManyElitePoints int
	SomeEliteAssets int
	SomeElitePoints int

	PremiumPositions      []player.Position
	PremiumPositionPoints int
}

// RebuildScoring holds the rebuild-score rule weights.
type RebuildScoring struct {
	WeakStarterAvg       float64
	WeakStarterPoints    int
	MediocreStarterAvg   float64
	MediocreStarterPoints int

	ManyYoungAssets int
	ManyYoungPoints int
	SomeYoungAssets int
	SomeYoungPoints int

	ManyAgingAssets int
	ManyAgingPoints int
	SomeAgingAssets int
	SomeAgingPoints int

	FewEliteAssets int
	FewElitePoints int
}

// Thresholds stores every tunable constant of the diagnosis engine.
type Thresholds struct {
	StarterCounts map[player.Position]int

	// StrengthBands is evaluated top-down; first satisfied band wins.
	StrengthBands []StrengthBand

	EliteAssetScore    float64
	YoungAssetMaxAge   int
	AgingStarterAvgAge float64

	Contender ContenderScoring
	Rebuild   RebuildScoring

	ContenderClassifyAt      int
	RebuildClassifyAt        int
	RebuildStarterScoreFloor float64

	ContenderConfidenceCap int
	RebuildConfidenceCap   int
	RebuildConfidenceFloor int
	StuckConfidence        int

	MaxSells int
	MaxHolds int
	HoldMinScore float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		StarterCounts: map[player.Position]int{
			player.PositionQuarterback:  1,
			player.PositionRunningBack:  3,
			player.PositionWideReceiver: 3,
			player.PositionTightEnd:     1,
		},
		StrengthBands: []StrengthBand{
			{MinScore: 80, Rating: StrengthElite},
			{MinScore: 65, Rating: StrengthStrong},
			{MinScore: 50, Rating: StrengthAverage},
			{MinScore: 35, Rating: StrengthWeak},
			{MinScore: 0, Rating: StrengthDire},
		},
		EliteAssetScore:    75,
		YoungAssetMaxAge:   25,
		AgingStarterAvgAge: 28,
		Contender: ContenderScoring{
			StrongStarterAvg:    70,
			StrongStarterPoints: 40,
			SolidStarterAvg:     60,
			SolidStarterPoints:  20,
			ManyEliteAssets:     4,
			ManyElitePoints:     30,
			SomeEliteAssets:     2,
			SomeElitePoints:     15,
			PremiumPositions: []player.Position{
				player.PositionQuarterback,
				player.PositionRunningBack,
			},
			PremiumPositionPoints: 15,
		},
		Rebuild: RebuildScoring{
			WeakStarterAvg:        50,
			WeakStarterPoints:     40,
			MediocreStarterAvg:    55,
			MediocreStarterPoints: 20,
			ManyYoungAssets:       5,
			ManyYoungPoints:       30,
			SomeYoungAssets:       3,
			SomeYoungPoints:       15,
			ManyAgingAssets:       3,
			ManyAgingPoints:       20,
			SomeAgingAssets:       2,
			SomeAgingPoints:       10,
			FewEliteAssets:        1,
			FewElitePoints:        10,
		},
		ContenderClassifyAt:      60,
		RebuildClassifyAt:        50,
		RebuildStarterScoreFloor: 50,
		ContenderConfidenceCap:   95,
		RebuildConfidenceCap:     90,
		RebuildConfidenceFloor:   50,
		StuckConfidence:          70,
		MaxSells:                 3,
		MaxHolds:                 3,
		HoldMinScore:             60,
	}
}

const draftCapitalNotTracked = "not tracked - supply picks separately"

// GroupByPosition partitions players by tracked position, each group sorted
// descending by overall score. Untracked positions are dropped; single-QB
// dynasty formats do not roster K/DEF here.
func GroupByPosition(players []RosterPlayer) map[player.Position][]RosterPlayer {
	out := make(map[player.Position][]RosterPlayer, len(player.AllPositions))
	for _, p := range players {
		if _, ok := player.AllPositions[p.Position]; !ok {
			continue
		}
		out[p.Position] = append(out[p.Position], p)
	}
	for pos := range out {
		sortByValue(out[pos])
	}

	return out
}

// BuildPositionGroup splits one sorted position list into starters and depth.
// Group averages cover starters only; an empty group floors at dire.
func BuildPositionGroup(sorted []RosterPlayer, starterCount int, t Thresholds) PositionGroup {
	if starterCount < 0 {
		starterCount = 0
	}
	if starterCount > len(sorted) {
		starterCount = len(sorted)
	}

	group := PositionGroup{
		Starters: append([]RosterPlayer(nil), sorted[:starterCount]...),
		Depth:    append([]RosterPlayer(nil), sorted[starterCount:]...),
	}

	for _, p := range sorted {
		group.TotalValue += p.Value.OverallScore
	}

	if len(group.Starters) > 0 {
		ageSum := 0
		scoreSum := 0.0
		for _, p := range group.Starters {
			ageSum += p.Age
			scoreSum += p.Value.OverallScore
		}
		group.AvgAge = float64(ageSum) / float64(len(group.Starters))
		group.AvgScore = scoreSum / float64(len(group.Starters))
	}
	group.Strength = strengthFor(group.AvgScore, t)

	return group
}

// DiagnoseTeam runs the full classification over a scored roster. Total over
// well-formed input; an empty roster produces zeroed metrics and classifies
// REBUILD through the starter-score floor.
func DiagnoseTeam(players []RosterPlayer, t Thresholds) TeamDiagnosis {
	grouped := GroupByPosition(players)

	positions := make(map[player.Position]PositionGroup, len(player.PositionOrder))
	for _, pos := range player.PositionOrder {
		positions[pos] = BuildPositionGroup(grouped[pos], t.StarterCounts[pos], t)
	}

	metrics := buildMetrics(positions, t)
	cs := contenderScore(metrics, positions, t)
	rs := rebuildScore(metrics, t)
	classification, confidence := classify(cs, rs, metrics.AvgStarterScore, t)

	strengths, weaknesses := assessRoster(positions, metrics, t)

	return TeamDiagnosis{
		Classification:  classification,
		Confidence:      confidence,
		Summary:         buildTeamSummary(classification, confidence, metrics),
		Positions:       positions,
		Metrics:         metrics,
		Recommendations: buildRecommendations(classification, players, t),
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Outlook:         buildOutlook(classification, metrics),
	}
}

func buildMetrics(positions map[player.Position]PositionGroup, t Thresholds) Metrics {
	metrics := Metrics{DraftCapital: draftCapitalNotTracked}

	starterCount := 0
	ageSum := 0
	scoreSum := 0.0
	for _, pos := range player.PositionOrder {
		group := positions[pos]
		metrics.TotalRosterValue += group.TotalValue
		for _, p := range group.Starters {
			starterCount++
			ageSum += p.Age
			scoreSum += p.Value.OverallScore
			if p.Value.OverallScore >= t.EliteAssetScore {
				metrics.EliteAssets++
			}
			if p.Age <= t.YoungAssetMaxAge {
				metrics.YoungAssets++
			}
			if p.SellWindow.IsAging() {
				metrics.AgingAssets++
			}
		}
	}
	if starterCount > 0 {
		metrics.AvgStarterAge = float64(ageSum) / float64(starterCount)
		metrics.AvgStarterScore = scoreSum / float64(starterCount)
	}

	return metrics
}

func contenderScore(m Metrics, positions map[player.Position]PositionGroup, t Thresholds) int {
	score := 0

	switch {
	case m.AvgStarterScore >= t.Contender.StrongStarterAvg:
		score += t.Contender.StrongStarterPoints
	case m.AvgStarterScore >= t.Contender.SolidStarterAvg:
		score += t.Contender.SolidStarterPoints
	}

	switch {
	case m.EliteAssets >= t.Contender.ManyEliteAssets:
		score += t.Contender.ManyElitePoints
	case m.EliteAssets >= t.Contender.SomeEliteAssets:
		score += t.Contender.SomeElitePoints
	}

	for _, pos := range t.Contender.PremiumPositions {
		switch positions[pos].Strength {
		case StrengthElite, StrengthStrong:
			score += t.Contender.PremiumPositionPoints
		}
	}

	return score
}

func rebuildScore(m Metrics, t Thresholds) int {
	score := 0

	switch {
	case m.AvgStarterScore < t.Rebuild.WeakStarterAvg:
		score += t.Rebuild.WeakStarterPoints
	case m.AvgStarterScore < t.Rebuild.MediocreStarterAvg:
		score += t.Rebuild.MediocreStarterPoints
	}

	switch {
	case m.YoungAssets >= t.Rebuild.ManyYoungAssets:
		score += t.Rebuild.ManyYoungPoints
	case m.YoungAssets >= t.Rebuild.SomeYoungAssets:
		score += t.Rebuild.SomeYoungPoints
	}

	switch {
	case m.AgingAssets >= t.Rebuild.ManyAgingAssets:
		score += t.Rebuild.ManyAgingPoints
	case m.AgingAssets >= t.Rebuild.SomeAgingAssets:
		score += t.Rebuild.SomeAgingPoints
	}

	if m.EliteAssets <= t.Rebuild.FewEliteAssets {
		score += t.Rebuild.FewElitePoints
	}

	return score
}

func classify(cs, rs int, avgStarterScore float64, t Thresholds) (Classification, int) {
	if cs >= t.ContenderClassifyAt {
		return ClassificationContender, minInt(t.ContenderConfidenceCap, cs)
	}

	if rs >= t.RebuildClassifyAt || avgStarterScore < t.RebuildStarterScoreFloor {
		confidence := minInt(t.RebuildConfidenceCap, rs)
		// Triggered by the starter-score floor alone: the rebuild score
		// carries no signal, so confidence bottoms out at the floor.
		if rs < t.RebuildClassifyAt && confidence < t.RebuildConfidenceFloor {
			confidence = t.RebuildConfidenceFloor
		}
		return ClassificationRebuild, confidence
	}

	return ClassificationStuck, t.StuckConfidence
}

func assessRoster(positions map[player.Position]PositionGroup, m Metrics, t Thresholds) ([]string, []string) {
	strengths := make([]string, 0, 6)
	weaknesses := make([]string, 0, 6)

	for _, pos := range player.PositionOrder {
		group := positions[pos]
		switch group.Strength {
		case StrengthElite, StrengthStrong:
			strengths = append(strengths, fmt.Sprintf("%s room is %s (avg score %.0f)", pos, group.Strength, group.AvgScore))
		case StrengthWeak, StrengthDire:
			weaknesses = append(weaknesses, fmt.Sprintf("%s room is %s (avg score %.0f)", pos, group.Strength, group.AvgScore))
		}
	}

	if m.YoungAssets >= 4 {
		strengths = append(strengths, fmt.Sprintf("Young core: %d starters aged %d or under", m.YoungAssets, t.YoungAssetMaxAge))
	}
	if m.EliteAssets >= 3 {
		strengths = append(strengths, fmt.Sprintf("%d elite assets anchor the roster", m.EliteAssets))
	}
	if m.AgingAssets >= 3 {
		weaknesses = append(weaknesses, fmt.Sprintf("Aging core: %d starters in their sell window", m.AgingAssets))
	}
	if m.AvgStarterAge > t.AgingStarterAvgAge {
		weaknesses = append(weaknesses, fmt.Sprintf("Closing window: average starter age %.1f", m.AvgStarterAge))
	}

	return strengths, weaknesses
}

func buildRecommendations(classification Classification, players []RosterPlayer, t Thresholds) Recommendations {
	script := scriptFor(classification)
	recs := Recommendations{
		Moves:   append([]string(nil), script.Moves...),
		Targets: append([]string(nil), script.Targets...),
		Sells:   make([]string, 0, t.MaxSells),
		Holds:   make([]string, 0, t.MaxHolds),
	}

	ranked := append([]RosterPlayer(nil), players...)
	sortByValue(ranked)

	for _, p := range ranked {
		if len(recs.Sells) >= t.MaxSells {
			break
		}
		sellable := p.SellWindow.Urgency == valuation.UrgencySellNow ||
			(classification != ClassificationContender && p.SellWindow.Urgency == valuation.UrgencySellSoon)
		if !sellable {
			continue
		}
		reason := p.SellWindow.Reason
		if reason == "" {
			reason = "value window closing"
		}
		recs.Sells = append(recs.Sells, fmt.Sprintf("%s (%s) - %s", p.Name, p.Position, reason))
	}

	for _, p := range ranked {
		if len(recs.Holds) >= t.MaxHolds {
			break
		}
		if p.Value.OverallScore < t.HoldMinScore || p.SellWindow.Urgency != valuation.UrgencyHold {
			continue
		}
		recs.Holds = append(recs.Holds, fmt.Sprintf("%s (%s) - core piece, hold", p.Name, p.Position))
	}

	return recs
}

func buildOutlook(classification Classification, m Metrics) string {
	switch classification {
	case ClassificationContender:
		window := 3 - int(math.Floor((m.AvgStarterAge-26)/2))
		if window < 1 {
			window = 1
		}
		return fmt.Sprintf("Championship window: roughly %d more year(s). Spend depth and picks on proven producers while the core peaks.", window)
	case ClassificationRebuild:
		return "Competitive window is 2-3 years out. Accumulate youth and draft capital; resist win-now trades."
	default:
		return "No clear direction. Commit to contending or rebuilding this offseason - middling rosters bleed value the longest."
	}
}

func buildTeamSummary(classification Classification, confidence int, m Metrics) string {
	return fmt.Sprintf("%s (%d%% confidence) - avg starter score %.1f, %d elite asset(s), %d starter(s) in a sell window",
		classification, confidence, m.AvgStarterScore, m.EliteAssets, m.AgingAssets)
}

func strengthFor(avgScore float64, t Thresholds) StrengthRating {
	for _, band := range t.StrengthBands {
		if avgScore >= band.MinScore {
			return band.Rating
		}
	}
	return StrengthDire
}

// sortByValue orders players descending by overall score, ties broken by
// name for deterministic reports.
func sortByValue(players []RosterPlayer) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Value.OverallScore != players[j].Value.OverallScore {
			return players[i].Value.OverallScore > players[j].Value.OverallScore
		}
		return players[i].Name < players[j].Name
	})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
