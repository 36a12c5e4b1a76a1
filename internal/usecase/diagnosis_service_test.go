package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dynastylab/rosterdoc/internal/domain/diagnosis"
	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
	"github.com/dynastylab/rosterdoc/internal/infrastructure/repository/memory"
)

type failingValuationProvider struct{}

func (failingValuationProvider) DynastyValue(context.Context, player.Player) (valuation.DynastyValue, error) {
	return valuation.DynastyValue{}, errors.New("valuation upstream down")
}

func (failingValuationProvider) SellWindow(context.Context, player.Player) (valuation.SellWindow, error) {
	return valuation.SellWindow{}, errors.New("valuation upstream down")
}

func newDiagnosisServiceForTest() *DiagnosisService {
	provider := memory.NewValuationProvider(memory.SeedDynastyValues(), memory.SeedSellWindows())
	return NewDiagnosisService(provider, newDurabilityServiceForTest(), 2)
}

func intPtr(v int) *int {
	return &v
}

func seededRosterInputs() []RosterPlayerInput {
	return []RosterPlayerInput{
		{Name: memory.PlayerNameMarcusVale, Position: player.PositionQuarterback, Age: intPtr(26)},
		{Name: memory.PlayerNameDreHolloway, Position: player.PositionRunningBack, Age: intPtr(28)},
		{Name: memory.PlayerNameTJOkafor, Position: player.PositionRunningBack, Age: intPtr(23)},
		{Name: memory.PlayerNameColeBrannigan, Position: player.PositionWideReceiver, Age: intPtr(30)},
		{Name: memory.PlayerNameIsaiahStrand, Position: player.PositionWideReceiver, Age: intPtr(24)},
		{Name: memory.PlayerNameDaltonReyes, Position: player.PositionTightEnd, Age: intPtr(25)},
	}
}

func TestDiagnosisService_AnalyzeRoster_SeededContender(t *testing.T) {
	service := newDiagnosisServiceForTest()

	got, err := service.AnalyzeRoster(t.Context(), seededRosterInputs())
	if err != nil {
		t.Fatalf("analyze roster failed: %v", err)
	}

	if got.Classification != diagnosis.ClassificationContender {
		t.Fatalf("expected CONTENDER, got %s", got.Classification)
	}
	if got.Metrics.EliteAssets != 2 {
		t.Fatalf("expected 2 elite assets, got %d", got.Metrics.EliteAssets)
	}
	if got.Metrics.AgingAssets != 2 {
		t.Fatalf("expected 2 starters in a sell window, got %d", got.Metrics.AgingAssets)
	}

	qb := got.Positions[player.PositionQuarterback]
	if len(qb.Starters) != 1 || qb.Starters[0].Name != memory.PlayerNameMarcusVale {
		t.Fatalf("expected seeded QB starter, got %+v", qb.Starters)
	}
	if qb.Starters[0].Durability.Rating != injury.RatingIronMan {
		t.Fatalf("expected durability attached to scored player, got %s", qb.Starters[0].Durability.Rating)
	}

	// Contenders only move SELL NOW players.
	if len(got.Recommendations.Sells) != 1 || !strings.HasPrefix(got.Recommendations.Sells[0], memory.PlayerNameDreHolloway) {
		t.Fatalf("expected single sell for %s, got %v", memory.PlayerNameDreHolloway, got.Recommendations.Sells)
	}
}

func TestDiagnosisService_AnalyzeRoster_EmptyRoster(t *testing.T) {
	service := newDiagnosisServiceForTest()

	got, err := service.AnalyzeRoster(t.Context(), nil)
	if err != nil {
		t.Fatalf("analyze roster failed: %v", err)
	}
	if got.Classification != diagnosis.ClassificationRebuild {
		t.Fatalf("expected REBUILD for empty roster, got %s", got.Classification)
	}
	if got.Confidence != 50 {
		t.Fatalf("expected floored confidence 50, got %d", got.Confidence)
	}
}

func TestDiagnosisService_AnalyzeRoster_InvalidInput(t *testing.T) {
	service := newDiagnosisServiceForTest()

	_, err := service.AnalyzeRoster(t.Context(), []RosterPlayerInput{
		{Name: "  ", Position: player.PositionQuarterback},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	_, err = service.AnalyzeRoster(t.Context(), []RosterPlayerInput{
		{Name: "Some Kicker", Position: player.Position("K")},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unsupported position, got %v", err)
	}

	_, err = service.AnalyzeRoster(t.Context(), []RosterPlayerInput{
		{Name: memory.PlayerNameMarcusVale, Position: player.PositionQuarterback, Age: intPtr(-1)},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative age, got %v", err)
	}
}

func TestDiagnosisService_AnalyzeRoster_ProviderFailure(t *testing.T) {
	service := NewDiagnosisService(failingValuationProvider{}, newDurabilityServiceForTest(), 2)

	_, err := service.AnalyzeRoster(t.Context(), seededRosterInputs())
	if err == nil {
		t.Fatal("expected provider failure to surface")
	}
}

func TestDiagnosisService_AnalyzeRoster_NotConfigured(t *testing.T) {
	service := NewDiagnosisService(nil, nil, 2)

	_, err := service.AnalyzeRoster(t.Context(), seededRosterInputs())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestDiagnosisService_DiagnoseScored_DefaultsMissingAge(t *testing.T) {
	service := newDiagnosisServiceForTest()

	got, err := service.DiagnoseScored(t.Context(), []diagnosis.RosterPlayer{
		{
			Name:     "Ageless Wonder",
			Position: player.PositionQuarterback,
			Value:    valuation.DynastyValue{OverallScore: 80},
			SellWindow: valuation.SellWindow{
				Urgency: valuation.UrgencyHold,
			},
		},
	})
	if err != nil {
		t.Fatalf("diagnose scored failed: %v", err)
	}
	if got.Metrics.AvgStarterAge != float64(player.DefaultAge) {
		t.Fatalf("expected default age %d, got %.1f", player.DefaultAge, got.Metrics.AvgStarterAge)
	}
}

func TestDiagnosisService_DiagnoseScored_InvalidPosition(t *testing.T) {
	service := newDiagnosisServiceForTest()

	_, err := service.DiagnoseScored(t.Context(), []diagnosis.RosterPlayer{
		{Name: "Some Kicker", Position: player.Position("K"), Age: 27},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
