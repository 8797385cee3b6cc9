package metrics

import (
	"math"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

// The win/loss functions take trades in chronological exit order, as
// established once by the equity curve sort. Only the streak metrics are
// order-dependent; the rates and averages are plain reductions.

// WinRate is the fraction of trades with positive pnl.
func WinRate(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0.0
	}
	wins := 0
	for _, tr := range trades {
		if tr.PnL.GreaterThan(decimal.Zero) {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

// LossRate is the fraction of trades with negative pnl.
func LossRate(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0.0
	}
	losses := 0
	for _, tr := range trades {
		if tr.PnL.LessThan(decimal.Zero) {
			losses++
		}
	}
	return float64(losses) / float64(len(trades))
}

// BreakevenRate is the fraction of trades with exactly zero pnl.
func BreakevenRate(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0.0
	}
	breakeven := 0
	for _, tr := range trades {
		if tr.PnL.IsZero() {
			breakeven++
		}
	}
	return float64(breakeven) / float64(len(trades))
}

// AverageWin is the mean pnl of winning trades, zero if there are none.
func AverageWin(trades []types.Trade) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, tr := range trades {
		if tr.PnL.GreaterThan(decimal.Zero) {
			sum = sum.Add(tr.PnL)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// AverageLoss is the mean pnl of losing trades (a negative number), zero if
// there are none.
func AverageLoss(trades []types.Trade) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, tr := range trades {
		if tr.PnL.LessThan(decimal.Zero) {
			sum = sum.Add(tr.PnL)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// Expectancy is the expected pnl of a random trade:
// win_rate*avg_win + loss_rate*avg_loss.
func Expectancy(trades []types.Trade) decimal.Decimal {
	if len(trades) == 0 {
		return decimal.Zero
	}

	wr := decimal.NewFromFloat(WinRate(trades))
	lr := decimal.NewFromFloat(LossRate(trades))

	return wr.Mul(AverageWin(trades)).Add(lr.Mul(AverageLoss(trades)))
}

// ProfitFactor is total winning pnl over absolute total losing pnl.
// +Inf with wins and no losses, 0 with no wins.
func ProfitFactor(trades []types.Trade) float64 {
	totalWins := decimal.Zero
	totalLosses := decimal.Zero
	for _, tr := range trades {
		switch {
		case tr.PnL.GreaterThan(decimal.Zero):
			totalWins = totalWins.Add(tr.PnL)
		case tr.PnL.LessThan(decimal.Zero):
			totalLosses = totalLosses.Add(tr.PnL)
		}
	}

	if totalLosses.IsZero() {
		if totalWins.GreaterThan(decimal.Zero) {
			return math.Inf(1)
		}
		return 0.0
	}
	if totalWins.IsZero() {
		return 0.0
	}

	return totalWins.InexactFloat64() / math.Abs(totalLosses.InexactFloat64())
}

// WinLossRatio is average win over absolute average loss, the payoff ratio.
// Same infinity policy as ProfitFactor.
func WinLossRatio(trades []types.Trade) float64 {
	avgWin := AverageWin(trades)
	avgLoss := AverageLoss(trades)

	if avgLoss.IsZero() {
		if avgWin.GreaterThan(decimal.Zero) {
			return math.Inf(1)
		}
		return 0.0
	}

	return avgWin.InexactFloat64() / math.Abs(avgLoss.InexactFloat64())
}

type streak struct {
	win    bool
	length int
}

// streakRuns collapses the chronological pnl signs into maximal same-sign
// runs. Breakeven trades are dropped before the scan, so they neither start
// nor break a run.
func streakRuns(trades []types.Trade) []streak {
	var runs []streak

	started := false
	cur := streak{}

	for _, tr := range trades {
		if tr.PnL.IsZero() {
			continue
		}
		win := tr.PnL.GreaterThan(decimal.Zero)

		if !started {
			started = true
			cur = streak{win: win, length: 1}
			continue
		}
		if win == cur.win {
			cur.length++
			continue
		}

		runs = append(runs, cur)
		cur = streak{win: win, length: 1}
	}

	if started {
		runs = append(runs, cur)
	}

	return runs
}

// LongestWinStreak is the longest run of consecutive winning trades.
func LongestWinStreak(trades []types.Trade) int {
	longest := 0
	for _, run := range streakRuns(trades) {
		if run.win && run.length > longest {
			longest = run.length
		}
	}
	return longest
}

// LongestLossStreak is the longest run of consecutive losing trades.
func LongestLossStreak(trades []types.Trade) int {
	longest := 0
	for _, run := range streakRuns(trades) {
		if !run.win && run.length > longest {
			longest = run.length
		}
	}
	return longest
}

// ComputeStreakDistribution counts how often runs of each length occurred,
// separately for wins and losses. Two separate 3-win runs count twice under
// length 3, they are never merged.
func ComputeStreakDistribution(trades []types.Trade) types.StreakDistribution {
	dist := types.StreakDistribution{
		Wins:   make(map[int]int),
		Losses: make(map[int]int),
	}
	for _, run := range streakRuns(trades) {
		if run.win {
			dist.Wins[run.length]++
		} else {
			dist.Losses[run.length]++
		}
	}
	return dist
}

// ComputeWinLossSummary bundles all trade-level distribution metrics.
func ComputeWinLossSummary(trades []types.Trade) types.WinLossSummary {
	return types.WinLossSummary{
		TotalTrades:       len(trades),
		WinRate:           WinRate(trades),
		LossRate:          LossRate(trades),
		BreakevenRate:     BreakevenRate(trades),
		AverageWin:        AverageWin(trades),
		AverageLoss:       AverageLoss(trades),
		Expectancy:        Expectancy(trades),
		ProfitFactor:      ProfitFactor(trades),
		WinLossRatio:      WinLossRatio(trades),
		LongestWinStreak:  LongestWinStreak(trades),
		LongestLossStreak: LongestLossStreak(trades),
	}
}
