package risk

import "math"

// Metrics summarizes how much of each limit the current book consumes.
type Metrics struct {
	MaxPositionUtilizationPct float64 `json:"max_position_utilization_pct"`
	ConcentrationRiskPct      float64 `json:"concentration_risk_pct"`
	DailyLossUtilizationPct   float64 `json:"daily_loss_utilization_pct"`
	ViolationCount            int     `json:"violation_count"`
	BuyingPower               float64 `json:"buying_power"`
}

// Summarize computes limit-consumption metrics from per-instrument exposures
// and the day's P&L.
func Summarize(lim Limits, exposures map[string]float64, dailyPnL float64, violations int) Metrics {
	var largest, total float64
	for _, v := range exposures {
		total += v
		if v > largest {
			largest = v
		}
	}

	m := Metrics{ViolationCount: violations}
	if mp := lim.MaxPositionValue(); mp > 0 {
		m.MaxPositionUtilizationPct = 100 * largest / mp
	}
	m.ConcentrationRiskPct = 100 * largest / lim.TotalCapital
	if ml := lim.MaxDailyLoss(); ml > 0 && dailyPnL < 0 {
		m.DailyLossUtilizationPct = 100 * -dailyPnL / ml
	}
	m.BuyingPower = BuyingPower(lim, total, dailyPnL)
	return m
}

// BuyingPower is the capital still deployable under the limits: configured
// capital minus open exposure, reduced further by any daily loss.
func BuyingPower(lim Limits, totalExposure, dailyPnL float64) float64 {
	remaining := lim.TotalCapital - totalExposure
	if dailyPnL < 0 {
		remaining += dailyPnL
	}
	return math.Max(0, remaining)
}
