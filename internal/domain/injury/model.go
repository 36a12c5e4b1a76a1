package injury

import "time"

// Type classifies an injury for weighting and recurrence detection.
type Type string

const (
	TypeKneeACL    Type = "knee_acl"
	TypeConcussion Type = "concussion"
	TypeKneeOther  Type = "knee_other"
	TypeAnkleFoot  Type = "ankle_foot"
	TypeSoftTissue Type = "soft_tissue"
	TypeBack       Type = "back"
	TypeShoulder   Type = "shoulder"
	TypeWristHand  Type = "wrist_hand"
	TypeRibs       Type = "ribs"
	TypeIllness    Type = "illness"
	TypeOther      Type = "other"
)

// TypeOrder fixes the scan order for recurrence detection. The first type in
// this order with two or more occurrences wins; later recurring types are
// never reported.
var TypeOrder = []Type{
	TypeKneeACL,
	TypeConcussion,
	TypeKneeOther,
	TypeAnkleFoot,
	TypeSoftTissue,
	TypeBack,
	TypeShoulder,
	TypeWristHand,
	TypeRibs,
	TypeIllness,
	TypeOther,
}

var AllTypes = map[Type]struct{}{
	TypeKneeACL:    {},
	TypeConcussion: {},
	TypeKneeOther:  {},
	TypeAnkleFoot:  {},
	TypeSoftTissue: {},
	TypeBack:       {},
	TypeShoulder:   {},
	TypeWristHand:  {},
	TypeRibs:       {},
	TypeIllness:    {},
	TypeOther:      {},
}

// Record is one injury event within a season.
type Record struct {
	Season      int
	Type        Type
	GamesMissed int
	IsMajor     bool
}

// History is the per-player injury ledger owned by the history collaborator.
// GamesPlayed covers the three most recent completed seasons.
type History struct {
	PlayerName      string
	GamesPlayed     map[int]int
	Injuries        []Record
	MajorInjuryDate *time.Time
	MajorInjuryType Type
	Notes           string
}

// Rating buckets availability into the five durability tiers plus an unknown
// sentinel for players without history.
type Rating string

const (
	RatingIronMan     Rating = "iron_man"
	RatingDurable     Rating = "durable"
	RatingModerate    Rating = "moderate"
	RatingInjuryProne Rating = "injury_prone"
	RatingGlass       Rating = "glass"
	RatingUnknown     Rating = "unknown"
)

// AgeRiskLevel grades the combined age and injury-load risk.
type AgeRiskLevel string

const (
	AgeRiskMedium  AgeRiskLevel = "medium"
	AgeRiskHigh    AgeRiskLevel = "high"
	AgeRiskExtreme AgeRiskLevel = "extreme"
)

// Analysis is the durability verdict for one player. Freshly allocated per
// call; Score is always within [MinScore, best band score].
type Analysis struct {
	GamesPlayed       int
	GamesMissed       int
	AvailabilityRate  int
	SeasonsTracked    int
	Rating            Rating
	Score             int
	InjuryCounts      map[Type]int
	HasRecurringIssue bool
	RecurringDetail   string
	RiskFactors       []string
	SeverityScore     int
	RecoveryStatus    string
	AgeRisk           AgeRiskLevel
	AgeRiskDetail     string
	Summary           string
	Label             string
}
