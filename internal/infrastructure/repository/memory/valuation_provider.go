package memory

import (
	"context"
	"sync"

	"github.com/dynastylab/rosterdoc/internal/domain/player"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
)

// ValuationProvider serves dynasty values from a fixed in-memory table. It
// backs local development and tests when no external valuation API is wired.
type ValuationProvider struct {
	mu      sync.RWMutex
	values  map[string]valuation.DynastyValue
	windows map[string]valuation.SellWindow
}

func NewValuationProvider(values map[string]valuation.DynastyValue, windows map[string]valuation.SellWindow) *ValuationProvider {
	normalizedValues := make(map[string]valuation.DynastyValue, len(values))
	for name, v := range values {
		normalizedValues[normalizeName(name)] = v
	}
	normalizedWindows := make(map[string]valuation.SellWindow, len(windows))
	for name, w := range windows {
		normalizedWindows[normalizeName(name)] = w
	}

	return &ValuationProvider{
		values:  normalizedValues,
		windows: normalizedWindows,
	}
}

// DynastyValue returns the tabled value for the player. Unranked players get
// a neutral mid-table value rather than an error.
func (p *ValuationProvider) DynastyValue(_ context.Context, item player.Player) (valuation.DynastyValue, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if v, ok := p.values[normalizeName(item.Name)]; ok {
		return v, nil
	}

	return valuation.DynastyValue{
		OverallScore:           50,
		YearsOfEliteProduction: 0,
		Tier:                   "unranked",
		Trend:                  "stable",
	}, nil
}

func (p *ValuationProvider) SellWindow(_ context.Context, item player.Player) (valuation.SellWindow, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if w, ok := p.windows[normalizeName(item.Name)]; ok {
		return w, nil
	}

	return valuation.SellWindow{
		Urgency: valuation.UrgencyHold,
		Reason:  "no timing signal for unranked player",
	}, nil
}
