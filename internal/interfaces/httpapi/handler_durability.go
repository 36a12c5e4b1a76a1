package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dynastylab/rosterdoc/internal/usecase"
)

// GetPlayerDurability returns the durability analysis for one player. The
// optional age query parameter feeds the age-risk assessment.
func (h *Handler) GetPlayerDurability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDurability")
	defer span.End()

	playerName := strings.TrimSpace(r.PathValue("playerName"))

	var age *int
	if raw := strings.TrimSpace(r.URL.Query().Get("age")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: age must be an integer, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		if parsed < 18 || parsed > 50 {
			writeError(ctx, w, fmt.Errorf("%w: age must be between 18 and 50, got %d", usecase.ErrInvalidInput, parsed))
			return
		}
		age = &parsed
	}

	analysis, err := h.durabilityService.GetPlayerDurability(ctx, playerName, age)
	if err != nil {
		h.logger.WarnContext(ctx, "player durability lookup failed", "player", playerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, durabilityToDTO(ctx, playerName, analysis))
}
