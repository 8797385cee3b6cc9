package types

import "github.com/shopspring/decimal"

// WinLossSummary groups the trade-level distribution metrics. Rates are
// fractions of all trades; AverageLoss is negative, Expectancy is the
// expected pnl of a random trade. ProfitFactor and WinLossRatio are +Inf
// when there are wins but no losses.
type WinLossSummary struct {
	TotalTrades       int
	WinRate           float64
	LossRate          float64
	BreakevenRate     float64
	AverageWin        decimal.Decimal
	AverageLoss       decimal.Decimal
	Expectancy        decimal.Decimal
	ProfitFactor      float64
	WinLossRatio      float64
	LongestWinStreak  int
	LongestLossStreak int
}

// StreakDistribution maps run length to occurrence count, separately for
// winning and losing runs. Breakeven trades are excluded from the sign
// sequence, so they neither start nor break a run.
type StreakDistribution struct {
	Wins   map[int]int
	Losses map[int]int
}
