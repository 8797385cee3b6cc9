package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one point of the equity curve: the account balance after a
// trade closed. Points are ordered by exit time ascending, stable on ties.
//
// Balance and PnL are exact decimals. ReturnPct is the per-trade return in
// percent of the balance before the trade; it is a float64 because it feeds
// the ratio math, where +Inf is a legitimate value.
type EquityPoint struct {
	Timestamp time.Time
	Balance   decimal.Decimal
	PnL       decimal.Decimal
	ReturnPct float64
}

// PeriodPoint is one bucket of a resampled equity curve. Buckets with no
// trades carry the previous bucket's ending balance forward with zero pnl.
type PeriodPoint struct {
	PeriodStart time.Time
	Balance     decimal.Decimal
	PnL         decimal.Decimal
	// ReturnPct is the percent change versus the previous period's balance.
	ReturnPct float64
	// CumReturnPct is the percent change versus the pre-trade starting
	// balance, not versus the first period.
	CumReturnPct float64
}
