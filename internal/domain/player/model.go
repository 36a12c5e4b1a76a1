package player

import "fmt"

// Position represents the roster positions tracked by the diagnosis engine.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
}

// PositionOrder fixes the iteration order for position-keyed reports.
var PositionOrder = []Position{
	PositionQuarterback,
	PositionRunningBack,
	PositionWideReceiver,
	PositionTightEnd,
}

// DefaultAge substitutes for a missing age at the service boundary.
const DefaultAge = 25

// Player identifies one rostered player before scoring.
type Player struct {
	Name     string
	Position Position
	Age      int
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Age <= 0 {
		return fmt.Errorf("player age must be greater than zero")
	}

	return nil
}
