// README: Display formatting of currency amounts for the presentation layer.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as "$1,234.50". Engine outputs stay numeric;
// this is only for response bodies and CLI output. Non-finite amounts render
// as "N/A".
func FormatUSD(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return "N/A"
	}
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// Display is the formatted view of a ShipmentQuote.
type Display struct {
	BaseFee            string `json:"baseFee"`
	ValueSurcharge     string `json:"valueSurcharge"`
	UrgencyPremium     string `json:"urgencyPremium"`
	InsurancePremium   string `json:"insurancePremium"`
	Total              string `json:"total"`
	PlatformCommission string `json:"platformCommission"`
	TravelerPayout     string `json:"travelerPayout"`
}

func (q ShipmentQuote) Display() Display {
	return Display{
		BaseFee:            FormatUSD(q.BaseFee),
		ValueSurcharge:     FormatUSD(q.ValueSurcharge),
		UrgencyPremium:     FormatUSD(q.UrgencyPremium),
		InsurancePremium:   FormatUSD(q.InsurancePremium),
		Total:              FormatUSD(q.Total),
		PlatformCommission: FormatUSD(q.PlatformCommission),
		TravelerPayout:     FormatUSD(q.TravelerPayout),
	}
}
