package metrics

import (
	"fmt"
	"io"
	"sync"
	"time"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

type Report struct {
	// Meta / period info
	StartDate   time.Time
	TotalPeriod time.Duration
	TotalTrades int

	// Absolute performance
	StartingBalance decimal.Decimal
	EndingBalance   decimal.Decimal
	NetProfit       decimal.Decimal

	// Trade-level distribution metrics
	WinLoss types.WinLossSummary
	Streaks types.StreakDistribution

	// Drawdown metrics
	MaxDrawdown        types.MaxDrawdownSummary
	AverageDrawdownPct float64
	Durations          types.DurationStats
	Underwater         types.UnderwaterTime

	// Risk-adjusted metrics
	SharpeRatio    float64
	SortinoRatio   float64
	CalmarRatio    float64
	RecoveryFactor float64

	// Derived series, exposed for exporting
	Curve    []types.EquityPoint
	Episodes []types.DrawdownEpisode
}

// BuildReport runs the full analytics pipeline over a trade log. The
// chronological order is established once, by the equity curve sort; the
// drawdown series, episodes and streaks all inherit it. The independent
// calculators then run concurrently; none of them shares mutable state, so
// the only ordering constraint is that Calmar and the recovery factor wait
// for the maximum-drawdown summary they consume.
func BuildReport(trades []types.Trade, startingBalance decimal.Decimal, cfg RatioConfig) *Report {
	sorted := sortTradesByExit(trades)
	curve := ToEquityCurve(sorted, startingBalance)
	series := DrawdownSeries(curve)

	report := &Report{
		TotalTrades:     len(sorted),
		StartingBalance: startingBalance,
		EndingBalance:   startingBalance,
		Curve:           curve,
	}
	if len(curve) > 0 {
		report.StartDate = sorted[0].EntryTime
		report.TotalPeriod = curve[len(curve)-1].Timestamp.Sub(sorted[0].EntryTime)
		report.EndingBalance = curve[len(curve)-1].Balance
	}
	report.NetProfit = report.EndingBalance.Sub(startingBalance)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		report.WinLoss = ComputeWinLossSummary(sorted)
	}()
	go func() {
		defer wg.Done()
		report.Streaks = ComputeStreakDistribution(sorted)
	}()
	go func() {
		defer wg.Done()
		report.Episodes = DrawdownEpisodes(series)
		report.AverageDrawdownPct = AverageDrawdown(report.Episodes)
		report.Durations = EpisodeDurationStats(report.Episodes)
		report.Underwater = TimeUnderwater(series)
	}()
	go func() {
		defer wg.Done()
		report.SharpeRatio = SharpeRatio(curve, cfg)
		report.SortinoRatio = SortinoRatio(curve, cfg)
	}()
	go func() {
		defer wg.Done()
		maxDD := MaximumDrawdown(series)
		report.MaxDrawdown = maxDD
		report.CalmarRatio = CalmarRatio(curve, maxDD, cfg)
		report.RecoveryFactor = RecoveryFactor(curve, maxDD)
	}()
	wg.Wait()

	return report
}

func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "===== Performance Report =====")
	fmt.Fprintf(w, "Start Date:            %s\n", r.StartDate.Format("2006-01-02"))
	fmt.Fprintf(w, "Total Period:          %d days\n", r.TotalPeriod/(24*time.Hour))
	fmt.Fprintf(w, "Total Trades:          %d\n", r.TotalTrades)

	fmt.Fprintln(w, "\n-- Absolute Performance --")
	fmt.Fprintf(w, "Starting Balance:      %s\n", r.StartingBalance)
	fmt.Fprintf(w, "Ending Balance:        %s\n", r.EndingBalance)
	fmt.Fprintf(w, "Net Profit:            %s\n", r.NetProfit)

	fmt.Fprintln(w, "\n-- Trade-Level Metrics --")
	fmt.Fprintf(w, "Win Rate:              %.2f%%\n", r.WinLoss.WinRate*100)
	fmt.Fprintf(w, "Loss Rate:             %.2f%%\n", r.WinLoss.LossRate*100)
	fmt.Fprintf(w, "Breakeven Rate:        %.2f%%\n", r.WinLoss.BreakevenRate*100)
	fmt.Fprintf(w, "Avg Win:               %s\n", r.WinLoss.AverageWin)
	fmt.Fprintf(w, "Avg Loss:              %s\n", r.WinLoss.AverageLoss)
	fmt.Fprintf(w, "Expectancy:            %s\n", r.WinLoss.Expectancy)
	fmt.Fprintf(w, "Profit Factor:         %.2f\n", r.WinLoss.ProfitFactor)
	fmt.Fprintf(w, "Win/Loss Ratio:        %.2f\n", r.WinLoss.WinLossRatio)
	fmt.Fprintf(w, "Longest Win Streak:    %d\n", r.WinLoss.LongestWinStreak)
	fmt.Fprintf(w, "Longest Loss Streak:   %d\n", r.WinLoss.LongestLossStreak)

	fmt.Fprintln(w, "\n-- Drawdown Metrics --")
	fmt.Fprintf(w, "Max Drawdown:          %s\n", r.MaxDrawdown.MaxDrawdownAmount)
	fmt.Fprintf(w, "Max Drawdown %%:        %.2f%%\n", r.MaxDrawdown.MaxDrawdownPct)
	fmt.Fprintf(w, "Avg Drawdown %%:        %.2f%%\n", r.AverageDrawdownPct)
	fmt.Fprintf(w, "Drawdown Episodes:     %d\n", r.Durations.TotalEpisodes)
	fmt.Fprintf(w, "Avg Duration:          %.1f trades\n", r.Durations.AvgDuration)
	fmt.Fprintf(w, "Max Duration:          %d trades\n", r.Durations.MaxDuration)
	fmt.Fprintf(w, "Time Underwater:       %.1f%%\n", r.Underwater.UnderwaterPct)
	fmt.Fprintf(w, "Currently Underwater:  %t\n", r.Durations.CurrentlyUnderwater)

	fmt.Fprintln(w, "\n-- Risk-Adjusted Metrics --")
	fmt.Fprintf(w, "Sharpe Ratio:          %.2f\n", r.SharpeRatio)
	fmt.Fprintf(w, "Sortino Ratio:         %.2f\n", r.SortinoRatio)
	fmt.Fprintf(w, "Calmar Ratio:          %.2f\n", r.CalmarRatio)
	fmt.Fprintf(w, "Recovery Factor:       %.2f\n", r.RecoveryFactor)

	fmt.Fprintln(w, "==============================")
}
