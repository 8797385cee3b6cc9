package metrics

import (
	"math"
	"sort"

	"tradestats/types"

	"github.com/shopspring/decimal"
)

// DrawdownSeries augments an equity curve with the running peak balance and
// the decline from it. Single forward pass; the curve must already be in
// chronological order.
func DrawdownSeries(curve []types.EquityPoint) []types.DrawdownPoint {
	series := make([]types.DrawdownPoint, 0, len(curve))

	var peak decimal.Decimal
	for i, p := range curve {
		if i == 0 || p.Balance.GreaterThan(peak) {
			peak = p.Balance
		}

		dd := p.Balance.Sub(peak)
		ddPct := 0.0
		if !dd.IsZero() {
			ddPct = dd.InexactFloat64() / peak.InexactFloat64() * 100
		}

		series = append(series, types.DrawdownPoint{
			Timestamp:   p.Timestamp,
			Balance:     p.Balance,
			Peak:        peak,
			Drawdown:    dd,
			DrawdownPct: ddPct,
			Underwater:  p.Balance.LessThan(peak),
		})
	}

	return series
}

// DrawdownEpisodes segments a drawdown series into discrete underwater runs.
//
// The scan is a two-state machine. Above water nothing happens; the first
// underwater point opens an episode pinned to the peak it fell from. While
// underwater, a strictly worse drawdown moves the trough. The first point
// back at or above the peak closes the episode; a scan that ends underwater
// appends the open episode with Recovered=false and no end point.
func DrawdownEpisodes(series []types.DrawdownPoint) []types.DrawdownEpisode {
	var episodes []types.DrawdownEpisode

	inDrawdown := false
	var cur types.DrawdownEpisode

	for i, p := range series {
		switch {
		case p.Underwater && !inDrawdown:
			inDrawdown = true
			cur = types.DrawdownEpisode{
				StartIndex:     i,
				EndIndex:       -1,
				StartTime:      p.Timestamp,
				PeakBalance:    p.Peak,
				TroughBalance:  p.Balance,
				MaxDrawdown:    p.Drawdown,
				MaxDrawdownPct: p.DrawdownPct,
			}

		case p.Underwater && inDrawdown:
			if p.Drawdown.LessThan(cur.MaxDrawdown) {
				cur.MaxDrawdown = p.Drawdown
				cur.MaxDrawdownPct = p.DrawdownPct
				cur.TroughBalance = p.Balance
			}

		case !p.Underwater && inDrawdown:
			inDrawdown = false
			cur.EndIndex = i
			cur.EndTime = p.Timestamp
			cur.Duration = i - cur.StartIndex
			cur.Recovered = true
			episodes = append(episodes, cur)
		}
	}

	if inDrawdown {
		cur.Duration = len(series) - cur.StartIndex
		episodes = append(episodes, cur)
	}

	return episodes
}

// MaximumDrawdown finds the single worst decline in the series and resolves
// its peak, trough and recovery points.
//
// The trough is the first point with the most negative DrawdownPct. The peak
// is the last point strictly before the trough whose balance equals the
// trough's peak (falling back to the first point when the series starts
// underwater). The recovery is the first point at or after the trough whose
// balance is back at the peak.
func MaximumDrawdown(series []types.DrawdownPoint) types.MaxDrawdownSummary {
	if len(series) == 0 {
		return types.MaxDrawdownSummary{DurationToRecovery: -1}
	}

	troughIdx := 0
	for i, p := range series {
		if p.DrawdownPct < series[troughIdx].DrawdownPct {
			troughIdx = i
		}
	}
	trough := series[troughIdx]

	peakIdx := 0
	for i := troughIdx - 1; i >= 0; i-- {
		if series[i].Balance.Equal(trough.Peak) {
			peakIdx = i
			break
		}
	}

	summary := types.MaxDrawdownSummary{
		MaxDrawdownPct:      trough.DrawdownPct,
		MaxDrawdownAmount:   trough.Drawdown,
		PeakBalance:         trough.Peak,
		TroughBalance:       trough.Balance,
		PeakTime:            series[peakIdx].Timestamp,
		TroughTime:          trough.Timestamp,
		DurationToTrough:    troughIdx - peakIdx,
		DurationToRecovery:  -1,
		CurrentlyInDrawdown: true,
	}

	for i := troughIdx; i < len(series); i++ {
		if series[i].Balance.GreaterThanOrEqual(trough.Peak) {
			summary.RecoveryTime = series[i].Timestamp
			summary.DurationToRecovery = i - peakIdx
			summary.CurrentlyInDrawdown = false
			break
		}
	}

	return summary
}

// AverageDrawdown is the mean of the episodes' worst drawdowns, in absolute
// percent. Zero when there are no episodes.
func AverageDrawdown(episodes []types.DrawdownEpisode) float64 {
	if len(episodes) == 0 {
		return 0.0
	}

	var sum float64
	for _, ep := range episodes {
		sum += math.Abs(ep.MaxDrawdownPct)
	}
	return sum / float64(len(episodes))
}

// EpisodeDurationStats summarizes how long the drawdown episodes lasted,
// in trades.
func EpisodeDurationStats(episodes []types.DrawdownEpisode) types.DurationStats {
	if len(episodes) == 0 {
		return types.DurationStats{}
	}

	durations := make([]int, len(episodes))
	sum := 0
	max := 0
	for i, ep := range episodes {
		durations[i] = ep.Duration
		sum += ep.Duration
		if ep.Duration > max {
			max = ep.Duration
		}
	}
	sort.Ints(durations)

	n := len(durations)
	var median float64
	if n%2 == 1 {
		median = float64(durations[n/2])
	} else {
		median = float64(durations[n/2-1]+durations[n/2]) / 2
	}

	return types.DurationStats{
		AvgDuration:         float64(sum) / float64(n),
		MedianDuration:      median,
		MaxDuration:         max,
		TotalEpisodes:       n,
		CurrentlyUnderwater: !episodes[n-1].Recovered,
	}
}

// TimeUnderwater counts how much of the series was spent below the running
// peak. An empty series is 0% underwater.
func TimeUnderwater(series []types.DrawdownPoint) types.UnderwaterTime {
	underwater := 0
	for _, p := range series {
		if p.Underwater {
			underwater++
		}
	}

	pct := 0.0
	if len(series) > 0 {
		pct = float64(underwater) / float64(len(series)) * 100
	}

	return types.UnderwaterTime{
		UnderwaterTrades: underwater,
		TotalTrades:      len(series),
		UnderwaterPct:    pct,
	}
}
