// README: Luggage storage pricing (hourly per-bag rate, service fee, per-bag insurance).
package pricing

const (
	StorageServiceFeeRate = 0.12

	basicStoragePerBag = 2.50
	eliteStoragePerBag = 8.50
)

// ComputeStorageQuote prices a storage booking. Bags and hours never drop
// below one; a negative hourly price is treated as free.
func ComputeStorageQuote(bags, hours int, pricePerHour float64, tier StorageTier) StorageQuote {
	perBag := tier.perBagFee()

	bags = max(bags, 1)
	hours = max(hours, 1)
	price := nonNegative(pricePerHour)

	base := float64(bags) * price * float64(hours)
	service := base * StorageServiceFeeRate
	insurance := perBag * float64(bags)

	return StorageQuote{
		BasePrice:    roundCents(base),
		ServiceFee:   roundCents(service),
		InsuranceFee: roundCents(insurance),
		Total:        roundCents(base + service + insurance),
	}
}
