package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dynastylab/rosterdoc/internal/domain/injury"
)

// DurabilityService scores how reliably a player stays on the field.
type DurabilityService struct {
	injuryRepo injury.Repository
	weights    injury.Weights
	now        func() time.Time
}

func NewDurabilityService(injuryRepo injury.Repository) *DurabilityService {
	return &DurabilityService{
		injuryRepo: injuryRepo,
		weights:    injury.DefaultWeights(),
		now:        time.Now,
	}
}

// GetPlayerDurability analyzes a player's injury history. Players without a
// tracked history still get an analysis: an unknown rating with the neutral
// baseline score, never an error.
func (s *DurabilityService) GetPlayerDurability(ctx context.Context, playerName string, age *int) (injury.Analysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DurabilityService.GetPlayerDurability")
	defer span.End()

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return injury.Analysis{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	history, found, err := s.injuryRepo.GetByPlayerName(ctx, playerName)
	if err != nil {
		return injury.Analysis{}, fmt.Errorf("get injury history player=%s: %w", playerName, err)
	}
	if !found {
		return injury.Analyze(nil, age, s.now(), s.weights), nil
	}

	return injury.Analyze(&history, age, s.now(), s.weights), nil
}
