package diagnosis

import (
	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
)

// Classification is the three-way team strategy verdict.
type Classification string

const (
	ClassificationContender Classification = "CONTENDER"
	ClassificationRebuild   Classification = "REBUILD"
	ClassificationStuck     Classification = "STUCK IN THE MIDDLE"
)

// StrengthRating grades a position group by its starters' average value.
type StrengthRating string

const (
	StrengthElite   StrengthRating = "elite"
	StrengthStrong  StrengthRating = "strong"
	StrengthAverage StrengthRating = "average"
	StrengthWeak    StrengthRating = "weak"
	StrengthDire    StrengthRating = "dire"
)

// RosterPlayer is one fully scored roster entry: identity plus the three
// per-player scores the classifier consumes.
type RosterPlayer struct {
	Name       string
	Position   player.Position
	Age        int
	Value      valuation.DynastyValue
	SellWindow valuation.SellWindow
	Durability injury.Analysis
}

// PositionGroup splits one position's players into starters and depth and
// carries the group aggregates. Recomputed on every diagnosis.
type PositionGroup struct {
	Starters   []RosterPlayer
	Depth      []RosterPlayer
	TotalValue float64
	AvgAge     float64
	AvgScore   float64
	Strength   StrengthRating
}

// Metrics are the roster-wide aggregates feeding the classification.
type Metrics struct {
	TotalRosterValue float64
	AvgStarterAge    float64
	AvgStarterScore  float64
	EliteAssets      int
	YoungAssets      int
	AgingAssets      int
	DraftCapital     string
}

// Recommendations holds the ranked advice lists of a diagnosis.
type Recommendations struct {
	Moves   []string
	Targets []string
	Sells   []string
	Holds   []string
}

// TeamDiagnosis is the full verdict for one roster.
type TeamDiagnosis struct {
	Classification  Classification
	Confidence      int
	Summary         string
	Positions       map[player.Position]PositionGroup
	Metrics         Metrics
	Recommendations Recommendations
	Strengths       []string
	Weaknesses      []string
	Outlook         string
}
