package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dynastylab/rosterdoc/internal/domain/injury"
)

// InjuryHistoryRepository keeps injury histories in memory, keyed by a
// case-insensitive player name.
type InjuryHistoryRepository struct {
	mu    sync.RWMutex
	items map[string]injury.History
}

func NewInjuryHistoryRepository(histories []injury.History) *InjuryHistoryRepository {
	items := make(map[string]injury.History, len(histories))
	for _, h := range histories {
		items[normalizeName(h.PlayerName)] = h
	}

	return &InjuryHistoryRepository{items: items}
}

func (r *InjuryHistoryRepository) GetByPlayerName(_ context.Context, playerName string) (injury.History, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.items[normalizeName(playerName)]
	if !ok {
		return injury.History{}, false, nil
	}

	return h, true, nil
}

func (r *InjuryHistoryRepository) Upsert(_ context.Context, history injury.History) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[normalizeName(history.PlayerName)] = history
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
