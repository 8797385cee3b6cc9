package metrics

import (
	"math"
	"reflect"
	"testing"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

func TestRatesPartition(t *testing.T) {
	tests := []struct {
		name          string
		pnls          []string
		wantWin       float64
		wantLoss      float64
		wantBreakeven float64
	}{
		{
			name: "no trades",
			pnls: nil,
		},
		{
			name:     "five wins three losses",
			pnls:     []string{"150", "-75", "300", "200", "-100", "50", "-50", "125"},
			wantWin:  0.625,
			wantLoss: 0.375,
		},
		{
			name:          "with breakevens",
			pnls:          []string{"100", "0", "-50", "0"},
			wantWin:       0.25,
			wantLoss:      0.25,
			wantBreakeven: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := tradesFromPnLs(tt.pnls...)

			if got := WinRate(trades); !floatEquals(got, tt.wantWin) {
				t.Errorf("WinRate() = %f, want %f", got, tt.wantWin)
			}
			if got := LossRate(trades); !floatEquals(got, tt.wantLoss) {
				t.Errorf("LossRate() = %f, want %f", got, tt.wantLoss)
			}
			if got := BreakevenRate(trades); !floatEquals(got, tt.wantBreakeven) {
				t.Errorf("BreakevenRate() = %f, want %f", got, tt.wantBreakeven)
			}

			if len(trades) > 0 {
				sum := WinRate(trades) + LossRate(trades) + BreakevenRate(trades)
				if !floatEquals(sum, 1.0) {
					t.Errorf("rates sum to %f, want 1.0", sum)
				}
			}
		})
	}
}

func TestAverageWinLoss(t *testing.T) {
	trades := tradesFromPnLs("100", "-50", "200", "-150")

	if got := AverageWin(trades); !got.Equal(decimal.RequireFromString("150")) {
		t.Errorf("AverageWin() = %s, want 150", got)
	}
	if got := AverageLoss(trades); !got.Equal(decimal.RequireFromString("-100")) {
		t.Errorf("AverageLoss() = %s, want -100", got)
	}

	// no winners / no losers fall back to zero
	if got := AverageWin(tradesFromPnLs("-10")); !got.IsZero() {
		t.Errorf("AverageWin(all losses) = %s, want 0", got)
	}
	if got := AverageLoss(tradesFromPnLs("10")); !got.IsZero() {
		t.Errorf("AverageLoss(all wins) = %s, want 0", got)
	}
}

func TestExpectancy(t *testing.T) {
	// 50% wins averaging 150, 50% losses averaging -100 -> 25 per trade
	trades := tradesFromPnLs("100", "-50", "200", "-150")

	if got := Expectancy(trades); !got.Equal(decimal.RequireFromString("25")) {
		t.Errorf("Expectancy() = %s, want 25", got)
	}
	if got := Expectancy(nil); !got.IsZero() {
		t.Errorf("Expectancy(empty) = %s, want 0", got)
	}
}

func TestProfitFactor(t *testing.T) {
	tests := []struct {
		name string
		pnls []string
		want float64
	}{
		{"wins double the losses", []string{"200", "-50", "100", "-100"}, 2.0},
		{"no losses -> infinity", []string{"100", "50"}, math.Inf(1)},
		{"no wins -> zero", []string{"-100", "-50"}, 0.0},
		{"no trades", nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProfitFactor(tradesFromPnLs(tt.pnls...)); !floatEquals(got, tt.want) {
				t.Errorf("ProfitFactor() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestWinLossRatio(t *testing.T) {
	trades := tradesFromPnLs("100", "-50", "200", "-150")
	if got := WinLossRatio(trades); !floatEquals(got, 1.5) {
		t.Errorf("WinLossRatio() = %f, want 1.5", got)
	}

	if got := WinLossRatio(tradesFromPnLs("100")); !math.IsInf(got, 1) {
		t.Errorf("WinLossRatio(no losses) = %f, want +Inf", got)
	}
	if got := WinLossRatio(nil); got != 0.0 {
		t.Errorf("WinLossRatio(empty) = %f, want 0", got)
	}
}

func TestLongestStreaks(t *testing.T) {
	tests := []struct {
		name     string
		pnls     []string
		wantWin  int
		wantLoss int
	}{
		{"no trades", nil, 0, 0},
		{"alternating", []string{"150", "-75", "300", "200", "-100", "50", "-50", "125"}, 2, 1},
		{"all wins", []string{"10", "20", "30", "40"}, 4, 0},
		{"all losses", []string{"-10", "-20", "-30"}, 0, 3},
		{"breakevens do not break a run", []string{"100", "0", "100", "-50"}, 2, 1},
		{"only breakevens", []string{"0", "0"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := tradesFromPnLs(tt.pnls...)

			if got := LongestWinStreak(trades); got != tt.wantWin {
				t.Errorf("LongestWinStreak() = %d, want %d", got, tt.wantWin)
			}
			if got := LongestLossStreak(trades); got != tt.wantLoss {
				t.Errorf("LongestLossStreak() = %d, want %d", got, tt.wantLoss)
			}

			nonBreakeven := 0
			for _, tr := range trades {
				if !tr.PnL.IsZero() {
					nonBreakeven++
				}
			}
			if LongestWinStreak(trades)+LongestLossStreak(trades) > nonBreakeven {
				t.Errorf("streak lengths exceed %d non-breakeven trades", nonBreakeven)
			}
		})
	}
}

func TestComputeStreakDistribution(t *testing.T) {
	tests := []struct {
		name string
		pnls []string
		want types.StreakDistribution
	}{
		{
			name: "no trades",
			pnls: nil,
			want: types.StreakDistribution{Wins: map[int]int{}, Losses: map[int]int{}},
		},
		{
			name: "separate runs of equal length count separately",
			pnls: []string{"10", "10", "10", "-5", "10", "10", "10"},
			want: types.StreakDistribution{Wins: map[int]int{3: 2}, Losses: map[int]int{1: 1}},
		},
		{
			name: "mixed",
			pnls: []string{"150", "-75", "300", "200", "-100", "50", "-50", "125"},
			want: types.StreakDistribution{Wins: map[int]int{1: 3, 2: 1}, Losses: map[int]int{1: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreakDistribution(tradesFromPnLs(tt.pnls...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeStreakDistribution() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeWinLossSummary(t *testing.T) {
	summary := ComputeWinLossSummary(tradesFromPnLs("150", "-75", "300", "200", "-100", "50", "-50", "125"))

	if summary.TotalTrades != 8 {
		t.Errorf("total trades = %d, want 8", summary.TotalTrades)
	}
	if !floatEquals(summary.WinRate, 0.625) {
		t.Errorf("win rate = %f, want 0.625", summary.WinRate)
	}
	if !floatEquals(summary.LossRate, 0.375) {
		t.Errorf("loss rate = %f, want 0.375", summary.LossRate)
	}
	if !summary.AverageWin.Equal(decimal.RequireFromString("165")) {
		t.Errorf("avg win = %s, want 165", summary.AverageWin)
	}
	if !summary.AverageLoss.Equal(decimal.RequireFromString("-75")) {
		t.Errorf("avg loss = %s, want -75", summary.AverageLoss)
	}
	if summary.LongestWinStreak != 2 || summary.LongestLossStreak != 1 {
		t.Errorf("streaks = %d/%d, want 2/1", summary.LongestWinStreak, summary.LongestLossStreak)
	}
}
