package httpapi

import (
	"context"

	"github.com/dynastylab/rosterdoc/internal/domain/diagnosis"
	"github.com/dynastylab/rosterdoc/internal/domain/injury"
)

type teamDiagnosisDTO struct {
	Classification  string                      `json:"classification"`
	Confidence      int                         `json:"confidence"`
	Summary         string                      `json:"summary"`
	Positions       map[string]positionGroupDTO `json:"positions"`
	Metrics         rosterMetricsDTO            `json:"metrics"`
	Recommendations recommendationsDTO          `json:"recommendations"`
	Strengths       []string                    `json:"strengths"`
	Weaknesses      []string                    `json:"weaknesses"`
	Outlook         string                      `json:"outlook"`
}

type positionGroupDTO struct {
	Starters   []rosterPlayerDTO `json:"starters"`
	Depth      []rosterPlayerDTO `json:"depth"`
	TotalValue float64           `json:"totalValue"`
	AvgAge     float64           `json:"avgAge"`
	AvgScore   float64           `json:"avgScore"`
	Strength   string            `json:"strength"`
}

type rosterPlayerDTO struct {
	Name         string         `json:"name"`
	Position     string         `json:"position"`
	Age          int            `json:"age"`
	OverallScore float64        `json:"overallScore"`
	Tier         string         `json:"tier"`
	Trend        string         `json:"trend"`
	SellUrgency  string         `json:"sellUrgency"`
	SellReason   string         `json:"sellReason"`
	Durability   *durabilityDTO `json:"durability,omitempty"`
}

type rosterMetricsDTO struct {
	TotalRosterValue float64 `json:"totalRosterValue"`
	AvgStarterAge    float64 `json:"avgStarterAge"`
	AvgStarterScore  float64 `json:"avgStarterScore"`
	EliteAssets      int     `json:"eliteAssets"`
	YoungAssets      int     `json:"youngAssets"`
	AgingAssets      int     `json:"agingAssets"`
	DraftCapital     string  `json:"draftCapital"`
}

type recommendationsDTO struct {
	Moves   []string `json:"moves"`
	Targets []string `json:"targets"`
	Sells   []string `json:"sells"`
	Holds   []string `json:"holds"`
}

type durabilityDTO struct {
	PlayerName        string         `json:"playerName,omitempty"`
	Rating            string         `json:"rating"`
	RatingColor       string         `json:"ratingColor"`
	Label             string         `json:"label"`
	Score             int            `json:"score"`
	AvailabilityRate  int            `json:"availabilityRate"`
	GamesPlayed       int            `json:"gamesPlayed"`
	GamesMissed       int            `json:"gamesMissed"`
	SeasonsTracked    int            `json:"seasonsTracked"`
	InjuryCounts      map[string]int `json:"injuryCounts,omitempty"`
	HasRecurringIssue bool           `json:"hasRecurringIssue"`
	RecurringDetail   string         `json:"recurringDetail,omitempty"`
	RiskFactors       []string       `json:"riskFactors"`
	SeverityScore     int            `json:"severityScore"`
	RecoveryStatus    string         `json:"recoveryStatus,omitempty"`
	AgeRisk           string         `json:"ageRisk,omitempty"`
	AgeRiskDetail     string         `json:"ageRiskDetail,omitempty"`
	Summary           string         `json:"summary"`
}

func teamDiagnosisToDTO(ctx context.Context, v diagnosis.TeamDiagnosis) teamDiagnosisDTO {
	ctx, span := startSpan(ctx, "httpapi.teamDiagnosisToDTO")
	defer span.End()

	positions := make(map[string]positionGroupDTO, len(v.Positions))
	for pos, group := range v.Positions {
		positions[string(pos)] = positionGroupToDTO(ctx, group)
	}

	return teamDiagnosisDTO{
		Classification: string(v.Classification),
		Confidence:     v.Confidence,
		Summary:        v.Summary,
		Positions:      positions,
		Metrics: rosterMetricsDTO{
			TotalRosterValue: v.Metrics.TotalRosterValue,
			AvgStarterAge:    v.Metrics.AvgStarterAge,
			AvgStarterScore:  v.Metrics.AvgStarterScore,
			EliteAssets:      v.Metrics.EliteAssets,
			YoungAssets:      v.Metrics.YoungAssets,
			AgingAssets:      v.Metrics.AgingAssets,
			DraftCapital:     v.Metrics.DraftCapital,
		},
		Recommendations: recommendationsDTO{
			Moves:   emptyIfNil(v.Recommendations.Moves),
			Targets: emptyIfNil(v.Recommendations.Targets),
			Sells:   emptyIfNil(v.Recommendations.Sells),
			Holds:   emptyIfNil(v.Recommendations.Holds),
		},
		Strengths:  emptyIfNil(v.Strengths),
		Weaknesses: emptyIfNil(v.Weaknesses),
		Outlook:    v.Outlook,
	}
}

func positionGroupToDTO(ctx context.Context, group diagnosis.PositionGroup) positionGroupDTO {
	ctx, span := startSpan(ctx, "httpapi.positionGroupToDTO")
	defer span.End()

	starters := make([]rosterPlayerDTO, 0, len(group.Starters))
	for _, p := range group.Starters {
		starters = append(starters, rosterPlayerToDTO(ctx, p))
	}
	depth := make([]rosterPlayerDTO, 0, len(group.Depth))
	for _, p := range group.Depth {
		depth = append(depth, rosterPlayerToDTO(ctx, p))
	}

	return positionGroupDTO{
		Starters:   starters,
		Depth:      depth,
		TotalValue: group.TotalValue,
		AvgAge:     group.AvgAge,
		AvgScore:   group.AvgScore,
		Strength:   string(group.Strength),
	}
}

func rosterPlayerToDTO(ctx context.Context, p diagnosis.RosterPlayer) rosterPlayerDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterPlayerToDTO")
	defer span.End()

	dto := rosterPlayerDTO{
		Name:         p.Name,
		Position:     string(p.Position),
		Age:          p.Age,
		OverallScore: p.Value.OverallScore,
		Tier:         p.Value.Tier,
		Trend:        p.Value.Trend,
		SellUrgency:  string(p.SellWindow.Urgency),
		SellReason:   p.SellWindow.Reason,
	}

	if p.Durability.Rating != "" && p.Durability.Rating != injury.RatingUnknown {
		d := durabilityToDTO(ctx, "", p.Durability)
		dto.Durability = &d
	}

	return dto
}

func durabilityToDTO(ctx context.Context, playerName string, v injury.Analysis) durabilityDTO {
	ctx, span := startSpan(ctx, "httpapi.durabilityToDTO")
	defer span.End()

	var counts map[string]int
	if len(v.InjuryCounts) > 0 {
		counts = make(map[string]int, len(v.InjuryCounts))
		for injuryType, count := range v.InjuryCounts {
			counts[string(injuryType)] = count
		}
	}

	return durabilityDTO{
		PlayerName:        playerName,
		Rating:            string(v.Rating),
		RatingColor:       injury.RatingColor(v.Rating),
		Label:             v.Label,
		Score:             v.Score,
		AvailabilityRate:  v.AvailabilityRate,
		GamesPlayed:       v.GamesPlayed,
		GamesMissed:       v.GamesMissed,
		SeasonsTracked:    v.SeasonsTracked,
		InjuryCounts:      counts,
		HasRecurringIssue: v.HasRecurringIssue,
		RecurringDetail:   v.RecurringDetail,
		RiskFactors:       emptyIfNil(v.RiskFactors),
		SeverityScore:     v.SeverityScore,
		RecoveryStatus:    v.RecoveryStatus,
		AgeRisk:           string(v.AgeRisk),
		AgeRiskDetail:     v.AgeRiskDetail,
		Summary:           v.Summary,
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
