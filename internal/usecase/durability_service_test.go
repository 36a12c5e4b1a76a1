package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/infrastructure/repository/memory"
)

func newDurabilityServiceForTest() *DurabilityService {
	service := NewDurabilityService(memory.NewInjuryHistoryRepository(memory.SeedInjuryHistories()))
	service.now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }
	return service
}

func TestDurabilityService_GetPlayerDurability_IronMan(t *testing.T) {
	service := newDurabilityServiceForTest()

	got, err := service.GetPlayerDurability(t.Context(), memory.PlayerNameMarcusVale, nil)
	if err != nil {
		t.Fatalf("get player durability failed: %v", err)
	}

	if got.Rating != injury.RatingIronMan {
		t.Fatalf("expected iron_man, got %s", got.Rating)
	}
	if got.HasRecurringIssue {
		t.Fatal("single illness must not flag a recurring issue")
	}
	if got.SeasonsTracked != 3 {
		t.Fatalf("expected 3 tracked seasons, got %d", got.SeasonsTracked)
	}
}

func TestDurabilityService_GetPlayerDurability_RecurringSoftTissue(t *testing.T) {
	service := newDurabilityServiceForTest()
	age := 28

	got, err := service.GetPlayerDurability(t.Context(), memory.PlayerNameDreHolloway, &age)
	if err != nil {
		t.Fatalf("get player durability failed: %v", err)
	}

	if got.Rating != injury.RatingModerate {
		t.Fatalf("expected moderate, got %s", got.Rating)
	}
	if !got.HasRecurringIssue {
		t.Fatal("two soft tissue injuries must flag a recurring issue")
	}
	if got.AgeRisk != injury.AgeRiskHigh {
		t.Fatalf("expected high age risk at 28 with soft tissue history, got %q", got.AgeRisk)
	}
	// moderate base 20, recurring -5, high age risk -5
	if got.Score != 10 {
		t.Fatalf("expected score 10, got %d", got.Score)
	}
}

func TestDurabilityService_GetPlayerDurability_UnknownPlayer(t *testing.T) {
	service := newDurabilityServiceForTest()

	got, err := service.GetPlayerDurability(t.Context(), "Nobody Fakename", nil)
	if err != nil {
		t.Fatalf("unknown players must not error: %v", err)
	}

	if got.Rating != injury.RatingUnknown {
		t.Fatalf("expected unknown rating, got %s", got.Rating)
	}
	if got.Score != injury.DefaultWeights().UnknownScore {
		t.Fatalf("expected neutral baseline score, got %d", got.Score)
	}
}

func TestDurabilityService_GetPlayerDurability_NameLookupIsCaseInsensitive(t *testing.T) {
	service := newDurabilityServiceForTest()

	got, err := service.GetPlayerDurability(t.Context(), "  marcus vale  ", nil)
	if err != nil {
		t.Fatalf("get player durability failed: %v", err)
	}
	if got.Rating != injury.RatingIronMan {
		t.Fatalf("expected seeded history via case-insensitive lookup, got %s", got.Rating)
	}
}

func TestDurabilityService_GetPlayerDurability_EmptyName(t *testing.T) {
	service := newDurabilityServiceForTest()

	_, err := service.GetPlayerDurability(t.Context(), "   ", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
