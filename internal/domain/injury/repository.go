package injury

import "context"

// Repository looks up injury histories collected by the data pipeline.
// A missing player is not an error: found=false with a nil error.
type Repository interface {
	GetByPlayerName(ctx context.Context, playerName string) (History, bool, error)
}
