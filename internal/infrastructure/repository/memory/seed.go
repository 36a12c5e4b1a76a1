package memory

import (
	"time"

	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
)

// Fictional players used by the dev seed and the test suites.
const (
	PlayerNameMarcusVale    = "Marcus Vale"    // QB, iron man
	PlayerNameDreHolloway   = "Dre Holloway"   // RB, recurring soft tissue
	PlayerNameTJOkafor      = "TJ Okafor"      // RB, young and healthy
	PlayerNameColeBrannigan = "Cole Brannigan" // WR, aging vet
	PlayerNameIsaiahStrand  = "Isaiah Strand"  // WR, elite asset
	PlayerNameDaltonReyes   = "Dalton Reyes"   // TE, ACL recovery
)

func SeedInjuryHistories() []injury.History {
	aclDate := time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC)

	return []injury.History{
		{
			PlayerName: PlayerNameMarcusVale,
			GamesPlayed: map[int]int{
				2023: 17,
				2024: 17,
				2025: 16,
			},
			Injuries: []injury.Record{
				{Season: 2025, Type: injury.TypeIllness, GamesMissed: 1},
			},
		},
		{
			PlayerName: PlayerNameDreHolloway,
			GamesPlayed: map[int]int{
				2023: 14,
				2024: 12,
				2025: 13,
			},
			Injuries: []injury.Record{
				{Season: 2023, Type: injury.TypeSoftTissue, GamesMissed: 3},
				{Season: 2024, Type: injury.TypeSoftTissue, GamesMissed: 5},
				{Season: 2025, Type: injury.TypeAnkleFoot, GamesMissed: 4},
			},
			Notes: "hamstring flared twice in camp",
		},
		{
			PlayerName: PlayerNameTJOkafor,
			GamesPlayed: map[int]int{
				2024: 17,
				2025: 17,
			},
		},
		{
			PlayerName: PlayerNameColeBrannigan,
			GamesPlayed: map[int]int{
				2023: 16,
				2024: 15,
				2025: 14,
			},
			Injuries: []injury.Record{
				{Season: 2023, Type: injury.TypeRibs, GamesMissed: 1},
				{Season: 2024, Type: injury.TypeShoulder, GamesMissed: 2},
				{Season: 2025, Type: injury.TypeAnkleFoot, GamesMissed: 3},
			},
		},
		{
			PlayerName: PlayerNameIsaiahStrand,
			GamesPlayed: map[int]int{
				2023: 17,
				2024: 16,
				2025: 17,
			},
			Injuries: []injury.Record{
				{Season: 2024, Type: injury.TypeWristHand, GamesMissed: 1},
			},
		},
		{
			PlayerName: PlayerNameDaltonReyes,
			GamesPlayed: map[int]int{
				2023: 15,
				2024: 9,
				2025: 12,
			},
			Injuries: []injury.Record{
				{Season: 2023, Type: injury.TypeKneeOther, GamesMissed: 2},
				{Season: 2024, Type: injury.TypeKneeACL, GamesMissed: 8, IsMajor: true},
			},
			MajorInjuryDate: &aclDate,
			MajorInjuryType: injury.TypeKneeACL,
		},
	}
}

func SeedDynastyValues() map[string]valuation.DynastyValue {
	return map[string]valuation.DynastyValue{
		PlayerNameMarcusVale:    {OverallScore: 88, YearsOfEliteProduction: 5, Tier: "elite", Trend: "stable"},
		PlayerNameDreHolloway:   {OverallScore: 61, YearsOfEliteProduction: 1, Tier: "starter", Trend: "declining"},
		PlayerNameTJOkafor:      {OverallScore: 72, YearsOfEliteProduction: 4, Tier: "starter", Trend: "rising"},
		PlayerNameColeBrannigan: {OverallScore: 64, YearsOfEliteProduction: 1, Tier: "starter", Trend: "declining"},
		PlayerNameIsaiahStrand:  {OverallScore: 91, YearsOfEliteProduction: 6, Tier: "elite", Trend: "rising"},
		PlayerNameDaltonReyes:   {OverallScore: 58, YearsOfEliteProduction: 2, Tier: "streamer", Trend: "stable"},
	}
}

func SeedSellWindows() map[string]valuation.SellWindow {
	return map[string]valuation.SellWindow{
		PlayerNameMarcusVale:    {Urgency: valuation.UrgencyHold, Reason: "franchise anchor"},
		PlayerNameDreHolloway:   {Urgency: valuation.UrgencySellNow, Reason: "age cliff plus recurring hamstring"},
		PlayerNameTJOkafor:      {Urgency: valuation.UrgencyBuy, Reason: "breakout ahead of market"},
		PlayerNameColeBrannigan: {Urgency: valuation.UrgencySellSoon, Reason: "production window closing"},
		PlayerNameIsaiahStrand:  {Urgency: valuation.UrgencyHold, Reason: "peak years ahead"},
		PlayerNameDaltonReyes:   {Urgency: valuation.UrgencyHold, Reason: "value depressed mid recovery"},
	}
}
