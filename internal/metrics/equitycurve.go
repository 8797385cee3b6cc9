package metrics

import (
	"sort"
	"time"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

// DefaultStartingBalance is used when the caller does not care about the
// absolute account size.
var DefaultStartingBalance = decimal.NewFromInt(10000)

// sortTradesByExit returns a copy of trades in chronological exit order.
// The sort is stable so that trades closing at the same instant keep their
// input order. Every downstream series derives its order from this one
// sort; nothing re-sorts later.
func sortTradesByExit(trades []types.Trade) []types.Trade {
	sorted := make([]types.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExitTime.Before(sorted[j].ExitTime)
	})
	return sorted
}

// ToEquityCurve converts a trade log into the per-trade balance curve.
// An empty log yields an empty curve, which every consumer treats as a
// valid zero-activity state.
func ToEquityCurve(trades []types.Trade, startingBalance decimal.Decimal) []types.EquityPoint {
	if len(trades) == 0 {
		return nil
	}

	sorted := sortTradesByExit(trades)
	curve := make([]types.EquityPoint, 0, len(sorted))

	balance := startingBalance
	for _, tr := range sorted {
		prev := balance
		balance = balance.Add(tr.PnL)

		// Return in percent of the balance before the trade. Done in
		// float64 so a zero prior balance yields an infinity instead
		// of a division panic.
		ret := tr.PnL.InexactFloat64() / prev.InexactFloat64() * 100

		curve = append(curve, types.EquityPoint{
			Timestamp: tr.ExitTime,
			Balance:   balance,
			PnL:       tr.PnL,
			ReturnPct: ret,
		})
	}

	return curve
}

// Resample buckets an equity curve into calendar periods. Each bucket takes
// the last balance observed inside it and the sum of pnl inside it; buckets
// with no trades carry the previous balance forward with zero pnl. Period
// returns are percent changes between consecutive bucket balances, with the
// pre-trade starting balance standing in as the bucket before the first.
// An empty curve resamples to an empty result.
func Resample(curve []types.EquityPoint, period types.Period, startingBalance decimal.Decimal) []types.PeriodPoint {
	if len(curve) == 0 {
		return nil
	}

	type bucket struct {
		balance decimal.Decimal
		pnl     decimal.Decimal
		hit     bool
	}

	buckets := make(map[time.Time]*bucket)
	for _, p := range curve {
		key := types.PeriodStart(p.Timestamp, period)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{pnl: decimal.Zero}
			buckets[key] = b
		}
		// curve is chronological, so the last write wins
		b.balance = p.Balance
		b.pnl = b.pnl.Add(p.PnL)
		b.hit = true
	}

	first := types.PeriodStart(curve[0].Timestamp, period)
	last := types.PeriodStart(curve[len(curve)-1].Timestamp, period)

	var points []types.PeriodPoint
	prevBalance := startingBalance
	startFloat := startingBalance.InexactFloat64()

	for cur := first; !cur.After(last); cur = types.NextPeriod(cur, period) {
		balance := prevBalance
		pnl := decimal.Zero
		if b, ok := buckets[cur]; ok && b.hit {
			balance = b.balance
			pnl = b.pnl
		}

		ret := balance.Sub(prevBalance).InexactFloat64() / prevBalance.InexactFloat64() * 100
		cum := balance.Sub(startingBalance).InexactFloat64() / startFloat * 100

		points = append(points, types.PeriodPoint{
			PeriodStart:  cur,
			Balance:      balance,
			PnL:          pnl,
			ReturnPct:    ret,
			CumReturnPct: cum,
		})
		prevBalance = balance
	}

	return points
}
