package valuation

import (
	"context"

	"github.com/dynastylab/rosterdoc/internal/domain/player"
)

// Provider supplies externally computed value and sell-window scores.
type Provider interface {
	DynastyValue(ctx context.Context, p player.Player) (DynastyValue, error)
	SellWindow(ctx context.Context, p player.Player) (SellWindow, error)
}
