package metrics

// RatioConfig carries the annualization parameters shared by the
// risk-adjusted ratios. periodsPerYear is the number of trading periods the
// per-trade returns represent (252 for daily, 52 for weekly).
type RatioConfig struct {
	annualRiskFreeRate float64
	periodsPerYear     int
	targetReturn       *float64
}

func NewRatioConfig(annualRiskFreeRate float64, periodsPerYear int) RatioConfig {
	return RatioConfig{
		annualRiskFreeRate: annualRiskFreeRate,
		periodsPerYear:     periodsPerYear,
	}
}

// NewRatioConfigWithTarget pins the Sortino minimum acceptable return in
// percent per period instead of deriving it from the risk-free rate.
func NewRatioConfigWithTarget(annualRiskFreeRate float64, periodsPerYear int, targetReturnPct float64) RatioConfig {
	return RatioConfig{
		annualRiskFreeRate: annualRiskFreeRate,
		periodsPerYear:     periodsPerYear,
		targetReturn:       &targetReturnPct,
	}
}

func DefaultRatioConfig() RatioConfig {
	return NewRatioConfig(0.0, 252)
}
