package sim

import "github.com/rustyeddy/papertrade/market"

// CostModel prices the friction of a simulated fill: slippage on the fill
// price plus commission, exchange fees, a sell-side transaction tax, and tax
// charged on the commission itself. All rates are fractions of trade value
// except SlippageBPS, which is in basis points.
type CostModel struct {
	CommissionRate    float64
	ExchangeFeeRate   float64
	SellTaxRate       float64 // levied on sells only
	CommissionTaxRate float64 // e.g. GST applied to the commission
	SlippageBPS       float64
}

// FillPrice adjusts the reference price by the slippage rate, always against
// the trader: buys fill higher, sells fill lower.
func (m CostModel) FillPrice(ref float64, action market.Action) float64 {
	factor := 1 + m.SlippageBPS/10000
	if action == market.Sell {
		return ref / factor
	}
	return ref * factor
}

// Commission is the broker commission on a trade value.
func (m CostModel) Commission(value float64) float64 {
	return value * m.CommissionRate
}

// Fees is everything charged on top of commission: exchange fees, the
// sell-side transaction tax, and tax on the commission.
func (m CostModel) Fees(value float64, action market.Action) float64 {
	fees := value * m.ExchangeFeeRate
	if action == market.Sell {
		fees += value * m.SellTaxRate
	}
	fees += m.Commission(value) * m.CommissionTaxRate
	return fees
}

// Total is the full transaction cost for a trade value.
func (m CostModel) Total(value float64, action market.Action) float64 {
	return m.Commission(value) + m.Fees(value, action)
}
