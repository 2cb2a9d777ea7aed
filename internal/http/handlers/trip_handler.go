// README: Trip handlers: board search, bids and live shipment quotes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/modules/shipment"
	"sharestuff/internal/modules/trip"
	"sharestuff/internal/types"
)

type TripHandler struct {
	trips     *trip.Service
	shipments *shipment.Service
}

func NewTripHandler(trips *trip.Service, shipments *shipment.Service) *TripHandler {
	return &TripHandler{trips: trips, shipments: shipments}
}

// Search handles GET /api/trips?q=.
func (h *TripHandler) Search(c *gin.Context) {
	trips, err := h.trips.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

func (h *TripHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.trips.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type bidReq struct {
	SenderID  string  `json:"senderId" binding:"required"`
	RatePerKg float64 `json:"ratePerKg"`
}

// SubmitBid handles POST /api/trips/:id/bids.
func (h *TripHandler) SubmitBid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req bidReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.SenderID) {
		writeError(c, http.StatusBadRequest, "invalid sender id")
		return
	}
	bid, err := h.trips.SubmitBid(c.Request.Context(), trip.BidCommand{
		TripID:    types.ID(id),
		SenderID:  types.ID(req.SenderID),
		RatePerKg: req.RatePerKg,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, bid)
}

type tripQuoteReq struct {
	SenderID      string  `json:"senderId"`
	WeightKg      float64 `json:"weightKg"`
	DeclaredValue float64 `json:"declaredValue"`
	Urgency       string  `json:"urgency" binding:"required"`
	InsuranceTier string  `json:"insuranceTier" binding:"required"`
}

// Quote handles POST /api/trips/:id/quote. It is called on every input
// change, so it never validates beyond the tier names.
func (h *TripHandler) Quote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req tripQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.shipments.Preview(c.Request.Context(), shipment.QuoteCommand{
		TripID:        types.ID(id),
		SenderID:      types.ID(req.SenderID),
		WeightKg:      req.WeightKg,
		DeclaredValue: req.DeclaredValue,
		Urgency:       req.Urgency,
		Insurance:     req.InsuranceTier,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"tripId":     p.TripID,
		"ratePerKg":  p.RatePerKg,
		"negotiated": p.Negotiated,
		"quote":      newShipmentQuoteResp(p.Quote),
	})
}
