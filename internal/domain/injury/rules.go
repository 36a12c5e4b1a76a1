package injury

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RatingBand maps a minimum availability rate to a rating and base score.
type RatingBand struct {
	MinAvailability int
	Rating          Rating
	Score           int
}

// Weights stores every tunable constant of the durability analyzer.
type Weights struct {
	GamesPerSeason int

	TypeWeights map[Type]float64

	SeasonWeightCurrent float64
	SeasonWeightPrior   float64
	SeasonWeightTwoBack float64
	SeasonWeightDefault float64
	MajorBonus          float64

	// RatingBands is evaluated top-down; the first band whose
	// MinAvailability is satisfied wins.
	RatingBands []RatingBand

	RecurringPenalty          int
	ConcussionPenaltySevere   int
	ConcussionPenaltyModerate int
	AgeRiskPenaltyExtreme     int
	AgeRiskPenaltyHigh        int

	MinScore     int
	UnknownScore int
}

func DefaultWeights() Weights {
	return Weights{
		GamesPerSeason: 17,
		TypeWeights: map[Type]float64{
			TypeKneeACL:    10,
			TypeConcussion: 9,
			TypeSoftTissue: 7,
			TypeKneeOther:  6,
			TypeBack:       6,
			TypeAnkleFoot:  5,
			TypeShoulder:   4,
			TypeWristHand:  3,
			TypeRibs:       2,
			TypeIllness:    1,
			TypeOther:      2,
		},
		SeasonWeightCurrent: 1.5,
		SeasonWeightPrior:   1.0,
		SeasonWeightTwoBack: 0.6,
		SeasonWeightDefault: 0.5,
		MajorBonus:          1.5,
		RatingBands: []RatingBand{
			{MinAvailability: 94, Rating: RatingIronMan, Score: 30},
			{MinAvailability: 85, Rating: RatingDurable, Score: 25},
			{MinAvailability: 75, Rating: RatingModerate, Score: 20},
			{MinAvailability: 60, Rating: RatingInjuryProne, Score: 12},
			{MinAvailability: 0, Rating: RatingGlass, Score: 5},
		},
		RecurringPenalty:          5,
		ConcussionPenaltySevere:   8,
		ConcussionPenaltyModerate: 4,
		AgeRiskPenaltyExtreme:     8,
		AgeRiskPenaltyHigh:        5,
		MinScore:                  5,
		UnknownScore:              20,
	}
}

// ageRiskRule is one entry of the ordered age-by-injury rule list. The first
// rule whose predicate holds decides the level; later rules are skipped.
type ageRiskRule struct {
	applies func(age int, counts map[Type]int, gamesMissed int, severity float64) bool
	level   AgeRiskLevel
	detail  string
}

var ageRiskRules = []ageRiskRule{
	{
		applies: func(age int, counts map[Type]int, _ int, _ float64) bool {
			return age >= 30 && counts[TypeSoftTissue] >= 2
		},
		level:  AgeRiskExtreme,
		detail: "30+ with recurring soft tissue injuries - rapid decline risk",
	},
	{
		applies: func(age int, counts map[Type]int, _ int, _ float64) bool {
			return age >= 28 && counts[TypeSoftTissue] >= 1
		},
		level:  AgeRiskHigh,
		detail: "28+ with soft tissue history - decline often starts here",
	},
	{
		applies: func(age int, _ map[Type]int, gamesMissed int, _ float64) bool {
			return age >= 30 && gamesMissed >= 10
		},
		level:  AgeRiskHigh,
		detail: "30+ with significant games missed",
	},
	{
		applies: func(age int, _ map[Type]int, _ int, severity float64) bool {
			return age >= 27 && severity > 20
		},
		level:  AgeRiskMedium,
		detail: "Approaching 30 with a heavy injury load",
	},
}

// riskFactorRule is one entry of the ordered narrative rule list. Unlike the
// age rules, every matching rule contributes a factor.
type riskFactorRule struct {
	applies func(counts map[Type]int) bool
	message func(counts map[Type]int) string
}

var riskFactorRules = []riskFactorRule{
	{
		applies: func(c map[Type]int) bool { return c[TypeConcussion] >= 3 },
		message: func(c map[Type]int) string {
			return fmt.Sprintf("SERIOUS: %d concussions - long-term health and early retirement risk", c[TypeConcussion])
		},
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeConcussion] == 2 },
		message: func(map[Type]int) string { return "2 concussions on record - monitor closely" },
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeSoftTissue] >= 3 },
		message: func(c map[Type]int) string {
			return fmt.Sprintf("Chronic soft tissue injuries (%d) - speed and burst decline risk", c[TypeSoftTissue])
		},
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeSoftTissue] == 2 },
		message: func(map[Type]int) string { return "Recurring soft tissue injuries - workload dependent" },
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeKneeACL] >= 2 },
		message: func(map[Type]int) string { return "Multiple ACL tears - extreme re-injury risk" },
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeKneeACL] == 1 && c[TypeKneeOther] >= 1 },
		message: func(map[Type]int) string { return "ACL tear plus additional knee injuries - compromised joint" },
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeKneeACL] == 1 && c[TypeKneeOther] == 0 },
		message: func(map[Type]int) string { return "One ACL tear - monitor explosiveness post-recovery" },
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeAnkleFoot] >= 3 },
		message: func(c map[Type]int) string {
			return fmt.Sprintf("Chronic ankle/foot problems (%d) - availability risk every season", c[TypeAnkleFoot])
		},
	},
	{
		applies: func(c map[Type]int) bool { return c[TypeAnkleFoot] == 2 },
		message: func(map[Type]int) string { return "Recurring ankle/foot injuries" },
	},
}

// Analyze converts an injury history into a durability verdict. It is total:
// a nil history yields the unknown sentinel, never an error. The now argument
// anchors season recency and recovery timelines.
func Analyze(history *History, age *int, now time.Time, w Weights) Analysis {
	if history == nil {
		return unknownAnalysis(w)
	}

	currentSeason := now.Year()

	gamesPlayed := 0
	seasonsActive := 0
	for _, games := range history.GamesPlayed {
		gamesPlayed += games
		if games > 0 {
			seasonsActive++
		}
	}
	possibleGames := seasonsActive * w.GamesPerSeason
	gamesMissed := possibleGames - gamesPlayed

	availabilityRate := 100
	if possibleGames > 0 {
		availabilityRate = int(math.Round(100 * float64(gamesPlayed) / float64(possibleGames)))
	}

	counts := make(map[Type]int, len(history.Injuries))
	for _, record := range history.Injuries {
		counts[record.Type]++
	}

	hasRecurring, recurringDetail := detectRecurring(counts)

	severity := 0.0
	for _, record := range history.Injuries {
		severity += w.TypeWeights[record.Type] *
			seasonWeight(record.Season, currentSeason, w) *
			majorBonus(record.IsMajor, w) *
			(float64(record.GamesMissed) / 4)
	}
	severityScore := int(math.Round(severity))

	factors := make([]string, 0, len(riskFactorRules))
	for _, rule := range riskFactorRules {
		if rule.applies(counts) {
			factors = append(factors, rule.message(counts))
		}
	}

	recoveryStatus, recoveryMonths := recoveryFromMajorInjury(history.MajorInjuryDate, now)

	ageRisk, ageRiskDetail := detectAgeRisk(age, counts, gamesMissed, severity)

	rating, score := baseRating(availabilityRate, w)
	if hasRecurring {
		score = applyPenalty(score, w.RecurringPenalty, w.MinScore)
	}
	switch {
	case counts[TypeConcussion] >= 3:
		score = applyPenalty(score, w.ConcussionPenaltySevere, w.MinScore)
	case counts[TypeConcussion] >= 2:
		score = applyPenalty(score, w.ConcussionPenaltyModerate, w.MinScore)
	}
	switch ageRisk {
	case AgeRiskExtreme:
		score = applyPenalty(score, w.AgeRiskPenaltyExtreme, w.MinScore)
	case AgeRiskHigh:
		score = applyPenalty(score, w.AgeRiskPenaltyHigh, w.MinScore)
	}

	analysis := Analysis{
		GamesPlayed:       gamesPlayed,
		GamesMissed:       gamesMissed,
		AvailabilityRate:  availabilityRate,
		SeasonsTracked:    seasonsActive,
		Rating:            rating,
		Score:             score,
		InjuryCounts:      counts,
		HasRecurringIssue: hasRecurring,
		RecurringDetail:   recurringDetail,
		RiskFactors:       factors,
		SeverityScore:     severityScore,
		RecoveryStatus:    recoveryStatus,
		AgeRisk:           ageRisk,
		AgeRiskDetail:     ageRiskDetail,
	}
	analysis.Summary = buildSummary(analysis, possibleGames, recoveryMonths)
	analysis.Label = buildLabel(analysis)

	return analysis
}

func unknownAnalysis(w Weights) Analysis {
	return Analysis{
		AvailabilityRate: 100,
		Rating:           RatingUnknown,
		Score:            w.UnknownScore,
		InjuryCounts:     map[Type]int{},
		RiskFactors:      []string{},
		Summary:          "No injury history on file",
		Label:            "unknown",
	}
}

// detectRecurring scans counts in the fixed enumeration order and stops at the
// first type with two or more occurrences.
func detectRecurring(counts map[Type]int) (bool, string) {
	for _, t := range TypeOrder {
		n := counts[t]
		if n < 2 {
			continue
		}
		switch t {
		case TypeSoftTissue:
			return true, "Chronic soft tissue issues"
		case TypeConcussion:
			return true, fmt.Sprintf("%d concussions - cumulative risk", n)
		case TypeAnkleFoot:
			return true, "Recurring ankle/foot problems"
		case TypeKneeACL, TypeKneeOther:
			return true, "Multiple knee injuries"
		default:
			return true, fmt.Sprintf("Repeated %s injuries", strings.ReplaceAll(string(t), "_", " "))
		}
	}

	return false, ""
}

func detectAgeRisk(age *int, counts map[Type]int, gamesMissed int, severity float64) (AgeRiskLevel, string) {
	if age == nil {
		return "", ""
	}
	for _, rule := range ageRiskRules {
		if rule.applies(*age, counts, gamesMissed, severity) {
			return rule.level, rule.detail
		}
	}

	return "", ""
}

func recoveryFromMajorInjury(injuredAt *time.Time, now time.Time) (string, int) {
	if injuredAt == nil {
		return "", -1
	}

	months := (now.Year()-injuredAt.Year())*12 + int(now.Month()) - int(injuredAt.Month())
	if months < 0 {
		months = 0
	}

	switch {
	case months < 9:
		return "Still recovering - elevated risk", months
	case months < 12:
		return "Recent return - monitor workload", months
	case months < 18:
		return "Returned successfully - normal risk", months
	default:
		return "Fully recovered", months
	}
}

func baseRating(availabilityRate int, w Weights) (Rating, int) {
	for _, band := range w.RatingBands {
		if availabilityRate >= band.MinAvailability {
			return band.Rating, band.Score
		}
	}
	// Unreachable with a zero-floored band table; glass is the bottom tier.
	return RatingGlass, w.MinScore
}

func applyPenalty(score, penalty, floor int) int {
	score -= penalty
	if score < floor {
		return floor
	}
	return score
}

func seasonWeight(season, currentSeason int, w Weights) float64 {
	switch currentSeason - season {
	case 0:
		return w.SeasonWeightCurrent
	case 1:
		return w.SeasonWeightPrior
	case 2:
		return w.SeasonWeightTwoBack
	default:
		return w.SeasonWeightDefault
	}
}

func majorBonus(isMajor bool, w Weights) float64 {
	if isMajor {
		return w.MajorBonus
	}
	return 1.0
}

func buildSummary(a Analysis, possibleGames, recoveryMonths int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %d/%d games (%d%%) over %d season(s)",
		ratingLabel(a.Rating), a.GamesPlayed, possibleGames, a.AvailabilityRate, a.SeasonsTracked)
	if a.HasRecurringIssue {
		b.WriteString(". ")
		b.WriteString(a.RecurringDetail)
	}
	if a.RecoveryStatus != "" && recoveryMonths >= 0 && recoveryMonths < 18 {
		fmt.Fprintf(&b, ". %s (%d months since major injury)", a.RecoveryStatus, recoveryMonths)
	}

	return b.String()
}

func buildLabel(a Analysis) string {
	return fmt.Sprintf("%d%% available, %s", a.AvailabilityRate, ratingLabel(a.Rating))
}

func ratingLabel(r Rating) string {
	switch r {
	case RatingIronMan:
		return "Iron man"
	case RatingDurable:
		return "Durable"
	case RatingModerate:
		return "Moderate risk"
	case RatingInjuryProne:
		return "Injury prone"
	case RatingGlass:
		return "Glass"
	default:
		return "Unknown"
	}
}

// RatingColor maps a durability rating to a display-style token.
func RatingColor(r Rating) string {
	switch r {
	case RatingIronMan:
		return "green"
	case RatingDurable:
		return "teal"
	case RatingModerate:
		return "yellow"
	case RatingInjuryProne:
		return "orange"
	case RatingGlass:
		return "red"
	default:
		return "gray"
	}
}

// SortedTypes returns the injury types present in counts, in enumeration
// order, for stable report rendering.
func SortedTypes(counts map[Type]int) []Type {
	out := make([]Type, 0, len(counts))
	for _, t := range TypeOrder {
		if counts[t] > 0 {
			out = append(out, t)
		}
	}
	return out
}
