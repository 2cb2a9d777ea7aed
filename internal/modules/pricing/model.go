// README: Pricing inputs, tier enums and quote breakdowns for shipments and storage.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownUrgency       = errors.New("pricing: unknown urgency")
	ErrUnknownInsuranceTier = errors.New("pricing: unknown insurance tier")
	ErrUnknownStorageTier   = errors.New("pricing: unknown storage tier")
	ErrAmountOutOfRange     = errors.New("pricing: amount out of range")
)

// Urgency is the delivery-speed category chosen by the shipper.
type Urgency string

const (
	UrgencyFlexible   Urgency = "flexible"
	UrgencyExpress    Urgency = "express"
	UrgencyNextFlight Urgency = "next-flight"
)

// Urgencies lists every valid urgency in display order.
var Urgencies = []Urgency{UrgencyFlexible, UrgencyExpress, UrgencyNextFlight}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyFlexible, UrgencyExpress, UrgencyNextFlight:
		return true
	}
	return false
}

// Multiplier returns the factor applied to the base fee. It panics for a
// value outside the closed set.
func (u Urgency) Multiplier() float64 {
	switch u {
	case UrgencyFlexible:
		return 1.0
	case UrgencyExpress:
		return 1.25
	case UrgencyNextFlight:
		return 1.5
	}
	panic(fmt.Errorf("%w: %q", ErrUnknownUrgency, string(u)))
}

// ParseUrgency converts untrusted input into an Urgency.
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUrgency, s)
	}
	return u, nil
}

// InsuranceTier is the protection level chosen by the shipper.
type InsuranceTier string

const (
	InsuranceBasic   InsuranceTier = "BASIC"
	InsurancePro     InsuranceTier = "PRO"
	InsurancePremium InsuranceTier = "PREMIUM"
)

var InsuranceTiers = []InsuranceTier{InsuranceBasic, InsurancePro, InsurancePremium}

func (t InsuranceTier) Valid() bool {
	switch t {
	case InsuranceBasic, InsurancePro, InsurancePremium:
		return true
	}
	return false
}

// Premium returns the raw insurance charge for a normalized declared value.
// It panics for a value outside the closed set.
func (t InsuranceTier) Premium(value float64) float64 {
	switch t {
	case InsuranceBasic:
		return 0
	case InsurancePro:
		return proInsuranceFlat
	case InsurancePremium:
		return value * premiumInsuranceRate
	}
	panic(fmt.Errorf("%w: %q", ErrUnknownInsuranceTier, string(t)))
}

func ParseInsuranceTier(s string) (InsuranceTier, error) {
	t := InsuranceTier(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownInsuranceTier, s)
	}
	return t, nil
}

// ShipmentQuoteRequest carries the five engine inputs. Rate is either the
// trip's asking rate or a negotiated bid rate.
type ShipmentQuoteRequest struct {
	WeightKg      float64       `json:"weightKg"`
	RatePerKg     float64       `json:"ratePerKg"`
	DeclaredValue float64       `json:"declaredValue"`
	Urgency       Urgency       `json:"urgency"`
	Insurance     InsuranceTier `json:"insuranceTier"`
}

// Quote runs ComputeQuote over the request fields.
func (r ShipmentQuoteRequest) Quote() ShipmentQuote {
	return ComputeQuote(r.WeightKg, r.RatePerKg, r.DeclaredValue, r.Urgency, r.Insurance)
}

// ShipmentQuote is the line-item breakdown of a shipment. Every field is
// rounded on its own, so Total may differ from the sum of the rounded parts
// by up to two cents.
type ShipmentQuote struct {
	BaseFee            float64 `json:"baseFee"`
	ValueSurcharge     float64 `json:"valueSurcharge"`
	UrgencyPremium     float64 `json:"urgencyPremium"`
	InsurancePremium   float64 `json:"insurancePremium"`
	Total              float64 `json:"total"`
	PlatformCommission float64 `json:"platformCommission"`
	TravelerPayout     float64 `json:"travelerPayout"`
}

// Validate reports ErrAmountOutOfRange when inputs were large enough for a
// line item to overflow. Such a quote cannot be displayed or encoded as JSON.
func (q ShipmentQuote) Validate() error {
	for _, v := range []float64{
		q.BaseFee, q.ValueSurcharge, q.UrgencyPremium, q.InsurancePremium,
		q.Total, q.PlatformCommission, q.TravelerPayout,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return ErrAmountOutOfRange
		}
	}
	return nil
}

// StorageTier is the luggage-storage protection level.
type StorageTier string

const (
	StorageBasic StorageTier = "Basic"
	StorageElite StorageTier = "Elite"
)

func (t StorageTier) Valid() bool {
	return t == StorageBasic || t == StorageElite
}

// perBagFee panics for a value outside the closed set.
func (t StorageTier) perBagFee() float64 {
	switch t {
	case StorageBasic:
		return basicStoragePerBag
	case StorageElite:
		return eliteStoragePerBag
	}
	panic(fmt.Errorf("%w: %q", ErrUnknownStorageTier, string(t)))
}

func ParseStorageTier(s string) (StorageTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return StorageBasic, nil
	case "elite":
		return StorageElite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStorageTier, s)
}

type StorageQuote struct {
	BasePrice    float64 `json:"basePrice"`
	ServiceFee   float64 `json:"serviceFee"`
	InsuranceFee float64 `json:"insuranceFee"`
	Total        float64 `json:"total"`
}
