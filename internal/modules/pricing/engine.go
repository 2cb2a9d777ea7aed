// README: Shipment pricing engine; pure fee breakdown and platform/traveler split.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	ValueSurchargeThreshold = 500.0
	ValueSurchargeRate      = 0.02
	PlatformCommissionRate  = 0.20

	proInsuranceFlat     = 15.00
	premiumInsuranceRate = 0.05
)

// ComputeQuote prices a shipment. Numeric inputs are clamped to zero instead
// of rejected; urgency and tier must belong to their closed sets or the call
// panics. Percentages are taken from unrounded figures and each output field
// is rounded to cents independently. Products that overflow float64 saturate
// at +Inf; no field is ever NaN. Callers that serialize a quote check Validate.
func ComputeQuote(weightKg, ratePerKg, declaredValue float64, urgency Urgency, tier InsuranceTier) ShipmentQuote {
	multiplier := urgency.Multiplier()

	weight := nonNegative(weightKg)
	rate := nonNegative(ratePerKg)
	value := nonNegative(declaredValue)

	baseFee := weight * rate

	valueSurcharge := 0.0
	if value > ValueSurchargeThreshold {
		valueSurcharge = (value - ValueSurchargeThreshold) * ValueSurchargeRate
	}

	urgencyPremium := 0.0
	if multiplier > 1 {
		urgencyPremium = baseFee * (multiplier - 1)
	}
	insurancePremium := tier.Premium(value)

	total := baseFee + valueSurcharge + urgencyPremium + insurancePremium
	commission := total * PlatformCommissionRate
	payout := total - commission
	if math.IsInf(total, 1) {
		// Inf - Inf is NaN; an overflowed total saturates both sides of the split.
		payout = total
	}

	return ShipmentQuote{
		BaseFee:            roundCents(baseFee),
		ValueSurcharge:     roundCents(valueSurcharge),
		UrgencyPremium:     roundCents(urgencyPremium),
		InsurancePremium:   roundCents(insurancePremium),
		Total:              roundCents(total),
		PlatformCommission: roundCents(commission),
		TravelerPayout:     roundCents(payout),
	}
}

// nonNegative floors v at zero. NaN and infinities also collapse to zero.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

// roundCents rounds half away from zero at two decimals, using the shortest
// decimal representation of v so that 0.125 becomes 0.13.
func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
