package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/dynastylab/rosterdoc/internal/domain/diagnosis"
	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
	"github.com/dynastylab/rosterdoc/internal/usecase"
)

type rosterPlayerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Position string `json:"position" validate:"required,oneof=QB RB WR TE"`
	Age      *int   `json:"age" validate:"omitempty,min=18,max=50"`
}

type diagnoseRosterRequest struct {
	Players []rosterPlayerRequest `json:"players" validate:"max=80,dive"`
}

type scoredPlayerRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Position     string  `json:"position" validate:"required,oneof=QB RB WR TE"`
	Age          int     `json:"age" validate:"omitempty,min=18,max=50"`
	OverallScore float64 `json:"overallScore" validate:"min=0,max=100"`
	Tier         string  `json:"tier"`
	Trend        string  `json:"trend"`
	SellUrgency  string  `json:"sellUrgency" validate:"omitempty,oneof='SELL NOW' 'SELL SOON' 'HOLD' 'BUY'"`
	SellReason   string  `json:"sellReason"`
}

type diagnoseScoredRosterRequest struct {
	Players []scoredPlayerRequest `json:"players" validate:"max=80,dive"`
}

// DiagnoseRoster scores the submitted names through the valuation provider and
// the durability analyzer, then classifies the team.
func (h *Handler) DiagnoseRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DiagnoseRoster")
	defer span.End()

	var req diagnoseRosterRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.RosterPlayerInput, 0, len(req.Players))
	for _, p := range req.Players {
		inputs = append(inputs, usecase.RosterPlayerInput{
			Name:     p.Name,
			Position: player.Position(p.Position),
			Age:      p.Age,
		})
	}

	result, err := h.diagnosisService.AnalyzeRoster(ctx, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "roster diagnosis failed", "players", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDiagnosisToDTO(ctx, result))
}

// DiagnoseScoredRoster classifies a roster whose dynasty values are supplied
// inline, bypassing the valuation provider.
func (h *Handler) DiagnoseScoredRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DiagnoseScoredRoster")
	defer span.End()

	var req diagnoseScoredRosterRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players := make([]diagnosis.RosterPlayer, 0, len(req.Players))
	for _, p := range req.Players {
		urgency := valuation.Urgency(p.SellUrgency)
		if p.SellUrgency == "" {
			urgency = valuation.UrgencyHold
		}
		players = append(players, diagnosis.RosterPlayer{
			Name:     p.Name,
			Position: player.Position(p.Position),
			Age:      p.Age,
			Value: valuation.DynastyValue{
				OverallScore: p.OverallScore,
				Tier:         p.Tier,
				Trend:        p.Trend,
			},
			SellWindow: valuation.SellWindow{
				Urgency: urgency,
				Reason:  p.SellReason,
			},
			Durability: injury.Analysis{Rating: injury.RatingUnknown},
		})
	}

	result, err := h.diagnosisService.DiagnoseScored(ctx, players)
	if err != nil {
		h.logger.WarnContext(ctx, "scored roster diagnosis failed", "players", len(players), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDiagnosisToDTO(ctx, result))
}
