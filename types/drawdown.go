package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrawdownPoint augments one EquityPoint with the running peak and the
// decline from it. The series is index-aligned with the equity curve.
//
// Drawdown is balance minus peak, so it is <= 0; DrawdownPct is the same
// decline in percent of the peak (0 exactly at a new peak).
type DrawdownPoint struct {
	Timestamp   time.Time
	Balance     decimal.Decimal
	Peak        decimal.Decimal
	Drawdown    decimal.Decimal
	DrawdownPct float64
	Underwater  bool
}

// DrawdownEpisode is one maximal underwater run, from the point the balance
// first drops below the running peak until it recovers to it.
//
// For an episode still open at the end of the data, Recovered is false,
// EndIndex is -1 and EndTime is the zero time; Duration then counts from
// StartIndex to the end of the series.
type DrawdownEpisode struct {
	StartIndex     int
	EndIndex       int
	StartTime      time.Time
	EndTime        time.Time
	PeakBalance    decimal.Decimal
	TroughBalance  decimal.Decimal
	MaxDrawdown    decimal.Decimal
	MaxDrawdownPct float64
	Duration       int
	Recovered      bool
}

// MaxDrawdownSummary locates the single worst decline across the whole
// series: the trough with the most negative DrawdownPct, the last peak-equal
// point strictly before it, and the first point at or after it where the
// balance reached the peak again.
//
// When the drawdown never recovered, RecoveryTime is the zero time,
// DurationToRecovery is -1 and CurrentlyInDrawdown is true.
type MaxDrawdownSummary struct {
	MaxDrawdownPct      float64
	MaxDrawdownAmount   decimal.Decimal
	PeakBalance         decimal.Decimal
	TroughBalance       decimal.Decimal
	PeakTime            time.Time
	TroughTime          time.Time
	RecoveryTime        time.Time
	DurationToTrough    int
	DurationToRecovery  int
	CurrentlyInDrawdown bool
}

// DurationStats summarizes episode lengths, measured in trades.
type DurationStats struct {
	AvgDuration         float64
	MedianDuration      float64
	MaxDuration         int
	TotalEpisodes       int
	CurrentlyUnderwater bool
}

// UnderwaterTime is the share of trades spent below the running peak.
type UnderwaterTime struct {
	UnderwaterTrades int
	TotalTrades      int
	UnderwaterPct    float64
}
