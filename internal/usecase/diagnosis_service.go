package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/dynastylab/rosterdoc/internal/domain/diagnosis"
	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
)

const defaultDiagnosisWorkers = 4

// RosterPlayerInput is one unscored roster entry as submitted by the caller.
// A nil age falls back to the league-typical default.
type RosterPlayerInput struct {
	Name     string
	Position player.Position
	Age      *int
}

// DiagnosisService scores a submitted roster through the valuation provider
// and the durability analyzer, then classifies the team.
type DiagnosisService struct {
	valuations  valuation.Provider
	durability  *DurabilityService
	thresholds  diagnosis.Thresholds
	workerCount int
}

func NewDiagnosisService(valuations valuation.Provider, durability *DurabilityService, workerCount int) *DiagnosisService {
	if workerCount <= 0 {
		workerCount = defaultDiagnosisWorkers
	}
	return &DiagnosisService{
		valuations:  valuations,
		durability:  durability,
		thresholds:  diagnosis.DefaultThresholds(),
		workerCount: workerCount,
	}
}

// AnalyzeRoster scores every submitted player concurrently and diagnoses the
// team. Scored players keep the submitted order regardless of which worker
// finished first.
func (s *DiagnosisService) AnalyzeRoster(ctx context.Context, inputs []RosterPlayerInput) (diagnosis.TeamDiagnosis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiagnosisService.AnalyzeRoster")
	defer span.End()

	if s.valuations == nil || s.durability == nil {
		return diagnosis.TeamDiagnosis{}, fmt.Errorf("%w: diagnosis service is not fully configured", ErrDependencyUnavailable)
	}

	players, err := normalizeRosterInputs(inputs)
	if err != nil {
		return diagnosis.TeamDiagnosis{}, err
	}
	if len(players) == 0 {
		return diagnosis.DiagnoseTeam(nil, s.thresholds), nil
	}

	workerCount := s.workerCount
	if workerCount > len(players) {
		workerCount = len(players)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return diagnosis.TeamDiagnosis{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	scored := make([]diagnosis.RosterPlayer, len(players))
	scoreErrs := make([]error, len(players))

	var workers sync.WaitGroup
	for i, p := range players {
		i, p := i, p
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			scored[i], scoreErrs[i] = s.scorePlayer(ctx, p)
		}); err != nil {
			workers.Done()
			return diagnosis.TeamDiagnosis{}, fmt.Errorf("submit player to worker pool: %w", err)
		}
	}
	workers.Wait()

	for _, err := range scoreErrs {
		if err != nil {
			return diagnosis.TeamDiagnosis{}, err
		}
	}

	return diagnosis.DiagnoseTeam(scored, s.thresholds), nil
}

// DiagnoseScored classifies a roster whose per-player scores were supplied by
// the caller, skipping the valuation provider entirely.
func (s *DiagnosisService) DiagnoseScored(ctx context.Context, players []diagnosis.RosterPlayer) (diagnosis.TeamDiagnosis, error) {
	_, span := startUsecaseSpan(ctx, "usecase.DiagnosisService.DiagnoseScored")
	defer span.End()

	normalized := make([]diagnosis.RosterPlayer, 0, len(players))
	for i, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		if p.Age == 0 {
			p.Age = player.DefaultAge
		}
		if err := validateRosterIdentity(i, p.Name, p.Position, p.Age); err != nil {
			return diagnosis.TeamDiagnosis{}, err
		}
		normalized = append(normalized, p)
	}

	return diagnosis.DiagnoseTeam(normalized, s.thresholds), nil
}

// scorePlayer fans out the three per-player lookups; both valuation calls and
// the durability analysis are independent of each other.
func (s *DiagnosisService) scorePlayer(ctx context.Context, p player.Player) (diagnosis.RosterPlayer, error) {
	var (
		value      valuation.DynastyValue
		window     valuation.SellWindow
		durability injury.Analysis

		valueErr      error
		windowErr     error
		durabilityErr error
	)

	var fetch conc.WaitGroup
	fetch.Go(func() {
		value, valueErr = s.valuations.DynastyValue(ctx, p)
	})
	fetch.Go(func() {
		window, windowErr = s.valuations.SellWindow(ctx, p)
	})
	fetch.Go(func() {
		age := p.Age
		durability, durabilityErr = s.durability.GetPlayerDurability(ctx, p.Name, &age)
	})
	fetch.Wait()

	if valueErr != nil {
		return diagnosis.RosterPlayer{}, fmt.Errorf("fetch dynasty value player=%s: %w", p.Name, valueErr)
	}
	if windowErr != nil {
		return diagnosis.RosterPlayer{}, fmt.Errorf("fetch sell window player=%s: %w", p.Name, windowErr)
	}
	if durabilityErr != nil {
		return diagnosis.RosterPlayer{}, fmt.Errorf("analyze durability player=%s: %w", p.Name, durabilityErr)
	}

	return diagnosis.RosterPlayer{
		Name:       p.Name,
		Position:   p.Position,
		Age:        p.Age,
		Value:      value,
		SellWindow: window,
		Durability: durability,
	}, nil
}

func normalizeRosterInputs(inputs []RosterPlayerInput) ([]player.Player, error) {
	players := make([]player.Player, 0, len(inputs))
	for i, in := range inputs {
		p := player.Player{
			Name:     strings.TrimSpace(in.Name),
			Position: in.Position,
			Age:      player.DefaultAge,
		}
		if in.Age != nil {
			p.Age = *in.Age
		}
		if err := validateRosterIdentity(i, p.Name, p.Position, p.Age); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func validateRosterIdentity(index int, name string, position player.Position, age int) error {
	if name == "" {
		return fmt.Errorf("%w: players[%d]: name is required", ErrInvalidInput, index)
	}
	if _, ok := player.AllPositions[position]; !ok {
		return fmt.Errorf("%w: players[%d]: unsupported position %q", ErrInvalidInput, index, position)
	}
	if age <= 0 {
		return fmt.Errorf("%w: players[%d]: age must be greater than zero", ErrInvalidInput, index)
	}
	return nil
}
