package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Trade is one closed position from a validated trade log.
// The validation layer guarantees Size > 0, ExitTime >= EntryTime and a
// normalized lower-case Direction; the analytics code assumes these hold.
type Trade struct {
	EntryTime time.Time
	ExitTime  time.Time
	Symbol    string
	Direction Direction
	Size      decimal.Decimal
	PnL       decimal.Decimal
}
