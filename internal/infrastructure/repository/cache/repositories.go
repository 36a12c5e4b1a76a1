package cache

import (
	"context"
	"strings"

	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	basecache "github.com/dynastylab/rosterdoc/internal/platform/cache"
)

// InjuryHistoryRepository caches history lookups in front of another
// repository. Misses are cached too so repeat diagnoses of untracked players
// skip the backing store.
type InjuryHistoryRepository struct {
	next  injury.Repository
	cache *basecache.Store
}

func NewInjuryHistoryRepository(next injury.Repository, cache *basecache.Store) *InjuryHistoryRepository {
	return &InjuryHistoryRepository{next: next, cache: cache}
}

func (r *InjuryHistoryRepository) GetByPlayerName(ctx context.Context, playerName string) (injury.History, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, historyKey(playerName), func(ctx context.Context) (any, error) {
		item, found, err := r.next.GetByPlayerName(ctx, playerName)
		if err != nil {
			return nil, err
		}
		return cachedHistoryByName{value: cloneHistory(item), found: found}, nil
	})
	if err != nil {
		return injury.History{}, false, err
	}

	cached, _ := v.(cachedHistoryByName)
	return cloneHistory(cached.value), cached.found, nil
}

type cachedHistoryByName struct {
	value injury.History
	found bool
}

func cloneHistory(item injury.History) injury.History {
	out := item
	if item.GamesPlayed != nil {
		out.GamesPlayed = make(map[int]int, len(item.GamesPlayed))
		for season, games := range item.GamesPlayed {
			out.GamesPlayed[season] = games
		}
	}
	out.Injuries = append([]injury.Record(nil), item.Injuries...)
	if item.MajorInjuryDate != nil {
		date := *item.MajorInjuryDate
		out.MajorInjuryDate = &date
	}
	return out
}

func historyKey(playerName string) string {
	return "injury:history:" + strings.ToLower(strings.TrimSpace(playerName))
}
