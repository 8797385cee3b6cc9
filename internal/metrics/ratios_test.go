package metrics

import (
	"math"
	"testing"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

func TestSharpeRatio(t *testing.T) {
	cfg := NewRatioConfig(0.0, 252)

	t.Run("empty curve -> zero", func(t *testing.T) {
		if got := SharpeRatio(nil, cfg); got != 0.0 {
			t.Errorf("SharpeRatio(empty) = %f, want 0", got)
		}
	})

	t.Run("single return has no variance -> zero", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("100"), decimal.RequireFromString("10000"))
		if got := SharpeRatio(curve, cfg); got != 0.0 {
			t.Errorf("SharpeRatio(one point) = %f, want 0", got)
		}
	})

	t.Run("zero variance -> zero", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("0", "0", "0"), decimal.RequireFromString("10000"))
		if got := SharpeRatio(curve, cfg); got != 0.0 {
			t.Errorf("SharpeRatio(flat) = %f, want 0", got)
		}
	})

	t.Run("known returns", func(t *testing.T) {
		// Returns of 1% then 3%: mean 2, sample stddev sqrt(2),
		// annualized by sqrt(252) -> sqrt(504)
		curve := ToEquityCurve(tradesFromPnLs("100", "303"), decimal.RequireFromString("10000"))

		got := SharpeRatio(curve, cfg)
		want := math.Sqrt(504)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("SharpeRatio() = %f, want %f", got, want)
		}
	})

	t.Run("risk-free rate lowers the ratio", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("100", "303"), decimal.RequireFromString("10000"))

		withRF := SharpeRatio(curve, NewRatioConfig(0.04, 252))
		withoutRF := SharpeRatio(curve, cfg)
		if withRF >= withoutRF {
			t.Errorf("SharpeRatio(rf=4%%) = %f, want below %f", withRF, withoutRF)
		}
	})
}

func TestSortinoRatio(t *testing.T) {
	cfg := NewRatioConfig(0.0, 252)

	t.Run("empty curve -> zero", func(t *testing.T) {
		if got := SortinoRatio(nil, cfg); got != 0.0 {
			t.Errorf("SortinoRatio(empty) = %f, want 0", got)
		}
	})

	t.Run("no sub-target returns and positive mean -> +Inf", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("100", "303"), decimal.RequireFromString("10000"))
		if got := SortinoRatio(curve, cfg); !math.IsInf(got, 1) {
			t.Errorf("SortinoRatio(all above target) = %f, want +Inf", got)
		}
	})

	t.Run("no sub-target returns and flat mean -> zero, never -Inf", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("0", "0"), decimal.RequireFromString("10000"))
		if got := SortinoRatio(curve, cfg); got != 0.0 {
			t.Errorf("SortinoRatio(flat) = %f, want 0", got)
		}
	})

	t.Run("known downside", func(t *testing.T) {
		// Returns of -1% then -3%: mean -2, downside deviation
		// sqrt((1+9)/2) = sqrt(5)
		curve := ToEquityCurve(tradesFromPnLs("-100", "-297"), decimal.RequireFromString("10000"))

		got := SortinoRatio(curve, cfg)
		want := -2.0 / math.Sqrt(5) * math.Sqrt(252)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("SortinoRatio() = %f, want %f", got, want)
		}
	})

	t.Run("explicit target overrides risk-free", func(t *testing.T) {
		// With the target above both returns, everything is downside.
		curve := ToEquityCurve(tradesFromPnLs("100", "303"), decimal.RequireFromString("10000"))
		cfgTarget := NewRatioConfigWithTarget(0.0, 252, 5.0)

		if got := SortinoRatio(curve, cfgTarget); math.IsInf(got, 1) || got >= 0 {
			t.Errorf("SortinoRatio(target 5%%) = %f, want finite negative", got)
		}
	})
}

func TestCalmarRatio(t *testing.T) {
	cfg := NewRatioConfig(0.0, 252)

	t.Run("empty curve -> zero", func(t *testing.T) {
		if got := CalmarRatio(nil, types.MaxDrawdownSummary{}, cfg); got != 0.0 {
			t.Errorf("CalmarRatio(empty) = %f, want 0", got)
		}
	})

	t.Run("zero drawdown with positive return -> +Inf", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("10", "20", "30"), decimal.RequireFromString("10000"))
		maxDD := MaximumDrawdown(DrawdownSeries(curve))

		if got := CalmarRatio(curve, maxDD, cfg); !math.IsInf(got, 1) {
			t.Errorf("CalmarRatio(no drawdown) = %f, want +Inf", got)
		}
	})

	t.Run("zero drawdown with flat return -> zero", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("0", "0"), decimal.RequireFromString("10000"))
		maxDD := MaximumDrawdown(DrawdownSeries(curve))

		if got := CalmarRatio(curve, maxDD, cfg); got != 0.0 {
			t.Errorf("CalmarRatio(flat) = %f, want 0", got)
		}
	})

	t.Run("one year of trades", func(t *testing.T) {
		// 252 points spanning exactly one year: annualized return equals
		// the total return of 10%; against a 5% max drawdown -> 2
		pnls := make([]string, 252)
		pnls[0] = "1000"
		for i := 1; i < 252; i++ {
			pnls[i] = "0"
		}
		curve := ToEquityCurve(tradesFromPnLs(pnls...), decimal.RequireFromString("10000"))

		maxDD := types.MaxDrawdownSummary{MaxDrawdownPct: -5.0}
		got := CalmarRatio(curve, maxDD, cfg)

		if math.Abs(got-2.0) > 1e-6 {
			t.Errorf("CalmarRatio() = %f, want 2", got)
		}
	})
}

func TestRecoveryFactor(t *testing.T) {
	t.Run("empty curve -> zero", func(t *testing.T) {
		if got := RecoveryFactor(nil, types.MaxDrawdownSummary{}); got != 0.0 {
			t.Errorf("RecoveryFactor(empty) = %f, want 0", got)
		}
	})

	t.Run("net profit over drawdown amount", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("400", "-200", "400"), decimal.RequireFromString("10000"))
		maxDD := types.MaxDrawdownSummary{MaxDrawdownAmount: decimal.RequireFromString("-200")}

		if got := RecoveryFactor(curve, maxDD); !floatEquals(got, 3.0) {
			t.Errorf("RecoveryFactor() = %f, want 3", got)
		}
	})

	t.Run("zero drawdown with profit -> +Inf", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("10", "20"), decimal.RequireFromString("10000"))

		if got := RecoveryFactor(curve, types.MaxDrawdownSummary{}); !math.IsInf(got, 1) {
			t.Errorf("RecoveryFactor(no drawdown) = %f, want +Inf", got)
		}
	})

	t.Run("zero drawdown without profit -> zero", func(t *testing.T) {
		curve := ToEquityCurve(tradesFromPnLs("0", "0"), decimal.RequireFromString("10000"))

		if got := RecoveryFactor(curve, types.MaxDrawdownSummary{}); got != 0.0 {
			t.Errorf("RecoveryFactor(flat) = %f, want 0", got)
		}
	})
}
