// README: Quote handlers: stateless shipment pricing and listing storage quotes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/modules/booking"
	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/obs"
	"sharestuff/internal/types"
)

type QuoteHandler struct {
	bookings *booking.Service
	metrics  *obs.DomainMetrics
}

func NewQuoteHandler(bookings *booking.Service, metrics *obs.DomainMetrics) *QuoteHandler {
	return &QuoteHandler{bookings: bookings, metrics: metrics}
}

type shipmentQuoteReq struct {
	WeightKg      float64 `json:"weightKg"`
	RatePerKg     float64 `json:"ratePerKg"`
	DeclaredValue float64 `json:"declaredValue"`
	Urgency       string  `json:"urgency" binding:"required"`
	InsuranceTier string  `json:"insuranceTier" binding:"required"`
}

type shipmentQuoteResp struct {
	pricing.ShipmentQuote
	Display pricing.Display `json:"display"`
}

func newShipmentQuoteResp(q pricing.ShipmentQuote) shipmentQuoteResp {
	return shipmentQuoteResp{ShipmentQuote: q, Display: q.Display()}
}

// Shipment handles POST /api/quotes/shipment.
func (h *QuoteHandler) Shipment(c *gin.Context) {
	var req shipmentQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	urgency, err := pricing.ParseUrgency(req.Urgency)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	tier, err := pricing.ParseInsuranceTier(req.InsuranceTier)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	q := pricing.ComputeQuote(req.WeightKg, req.RatePerKg, req.DeclaredValue, urgency, tier)
	if err := q.Validate(); err != nil {
		writeDomainError(c, err)
		return
	}
	h.metrics.ShipmentQuoted(string(urgency), string(tier))
	writeJSON(c, http.StatusOK, newShipmentQuoteResp(q))
}

type storageQuoteReq struct {
	ListingID     string `json:"listingId" binding:"required"`
	Bags          int    `json:"bags"`
	Hours         int    `json:"hours"`
	InsuranceTier string `json:"insuranceTier" binding:"required"`
}

type storageDisplay struct {
	BasePrice    string `json:"basePrice"`
	ServiceFee   string `json:"serviceFee"`
	InsuranceFee string `json:"insuranceFee"`
	Total        string `json:"total"`
}

type storageQuoteResp struct {
	pricing.StorageQuote
	Display storageDisplay `json:"display"`
}

func newStorageQuoteResp(q pricing.StorageQuote) storageQuoteResp {
	return storageQuoteResp{
		StorageQuote: q,
		Display: storageDisplay{
			BasePrice:    pricing.FormatUSD(q.BasePrice),
			ServiceFee:   pricing.FormatUSD(q.ServiceFee),
			InsuranceFee: pricing.FormatUSD(q.InsuranceFee),
			Total:        pricing.FormatUSD(q.Total),
		},
	}
}

// Storage handles POST /api/quotes/storage.
func (h *QuoteHandler) Storage(c *gin.Context) {
	var req storageQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.ListingID) {
		writeError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	q, err := h.bookings.Quote(c.Request.Context(), types.ID(req.ListingID), req.Bags, req.Hours, req.InsuranceTier)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newStorageQuoteResp(q))
}
