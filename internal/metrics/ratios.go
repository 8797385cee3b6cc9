package metrics

import (
	"math"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

// The ratios are pure functions of the equity curve; Calmar and the
// recovery factor additionally take the already-computed maximum-drawdown
// summary instead of re-deriving it.
//
// Degenerate inputs never raise: an empty curve or a zero denominator
// resolves to 0, and a zero-risk denominator with positive return resolves
// to +Inf.

// perPeriodRiskFreePct converts an annual risk-free rate (decimal, e.g.
// 0.04) to a per-period rate in percent via compounding.
func perPeriodRiskFreePct(cfg RatioConfig) float64 {
	rf := math.Pow(1.0+cfg.annualRiskFreeRate, 1.0/float64(cfg.periodsPerYear)) - 1.0
	return rf * 100
}

// curveReturns collects the per-trade returns, dropping NaN entries (a 0/0
// return on a zero balance).
func curveReturns(curve []types.EquityPoint) []float64 {
	returns := make([]float64, 0, len(curve))
	for _, p := range curve {
		if math.IsNaN(p.ReturnPct) {
			continue
		}
		returns = append(returns, p.ReturnPct)
	}
	return returns
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStddev is the n-1 standard deviation. Undefined below two samples,
// reported as 0 so the callers hit their zero-variance branch.
func sampleStddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0.0
	}
	m := mean(xs)
	var varianceSum float64
	for _, x := range xs {
		diff := x - m
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(xs)-1))
}

// SharpeRatio is mean excess return over return volatility, annualized by
// sqrt(periods per year). Zero when the curve is empty or the returns have
// no variance.
func SharpeRatio(curve []types.EquityPoint, cfg RatioConfig) float64 {
	if len(curve) == 0 {
		return 0.0
	}

	returns := curveReturns(curve)
	std := sampleStddev(returns)
	if len(returns) == 0 || std == 0 {
		return 0.0
	}

	rfPct := perPeriodRiskFreePct(cfg)
	avgExcess := mean(returns) - rfPct

	return (avgExcess / std) * math.Sqrt(float64(cfg.periodsPerYear))
}

// SortinoRatio is like Sharpe but penalizes only returns below the target
// (per-period risk-free rate unless the config pins one). With no
// sub-target returns it is +Inf when the mean return beats the target and
// 0 otherwise, never -Inf.
func SortinoRatio(curve []types.EquityPoint, cfg RatioConfig) float64 {
	if len(curve) == 0 {
		return 0.0
	}

	returns := curveReturns(curve)
	if len(returns) == 0 {
		return 0.0
	}

	target := perPeriodRiskFreePct(cfg)
	if cfg.targetReturn != nil {
		target = *cfg.targetReturn
	}

	var downsideSquares float64
	downside := 0
	for _, r := range returns {
		if r < target {
			diff := r - target
			downsideSquares += diff * diff
			downside++
		}
	}

	avg := mean(returns)
	if downside == 0 {
		if avg > target {
			return math.Inf(1)
		}
		return 0.0
	}

	downsideDeviation := math.Sqrt(downsideSquares / float64(downside))
	if downsideDeviation == 0 {
		if avg > target {
			return math.Inf(1)
		}
		return 0.0
	}

	return ((avg - target) / downsideDeviation) * math.Sqrt(float64(cfg.periodsPerYear))
}

// CalmarRatio is the annualized return in percent over the absolute maximum
// drawdown percent. The curve length in trades stands in for elapsed time
// when annualizing.
func CalmarRatio(curve []types.EquityPoint, maxDD types.MaxDrawdownSummary, cfg RatioConfig) float64 {
	if len(curve) == 0 {
		return 0.0
	}

	start := curve[0].Balance.Sub(curve[0].PnL)
	end := curve[len(curve)-1].Balance
	totalReturn := end.Sub(start).InexactFloat64() / start.InexactFloat64()

	years := float64(len(curve)) / float64(cfg.periodsPerYear)
	if years <= 0 {
		return 0.0
	}
	annualized := math.Pow(1.0+totalReturn, 1.0/years) - 1.0

	ddPct := math.Abs(maxDD.MaxDrawdownPct)
	if ddPct == 0 {
		if annualized > 0 {
			return math.Inf(1)
		}
		return 0.0
	}

	return (annualized * 100) / ddPct
}

// RecoveryFactor is the net profit over the absolute maximum drawdown
// amount: how many times the strategy earned back its worst decline.
func RecoveryFactor(curve []types.EquityPoint, maxDD types.MaxDrawdownSummary) float64 {
	if len(curve) == 0 {
		return 0.0
	}

	netProfit := decimal.Zero
	for _, p := range curve {
		netProfit = netProfit.Add(p.PnL)
	}

	amount := maxDD.MaxDrawdownAmount.Abs()
	if amount.IsZero() {
		if netProfit.GreaterThan(decimal.Zero) {
			return math.Inf(1)
		}
		return 0.0
	}

	return netProfit.InexactFloat64() / amount.InexactFloat64()
}
