// README: Shipment handlers: booking confirmation, lookup and lifecycle updates.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/modules/shipment"
	"sharestuff/internal/types"
)

type ShipmentHandler struct {
	shipments *shipment.Service
}

func NewShipmentHandler(shipments *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

type bookShipmentReq struct {
	TripID          string  `json:"tripId" binding:"required"`
	SenderID        string  `json:"senderId" binding:"required"`
	ItemDescription string  `json:"itemDescription" binding:"required"`
	WeightKg        float64 `json:"weightKg"`
	DeclaredValue   float64 `json:"declaredValue"`
	Urgency         string  `json:"urgency" binding:"required"`
	InsuranceTier   string  `json:"insuranceTier" binding:"required"`
}

type shipmentResp struct {
	*shipment.Shipment
	Display struct {
		Total          string `json:"total"`
		TravelerPayout string `json:"travelerPayout"`
	} `json:"display"`
}

func newShipmentResp(sh *shipment.Shipment) shipmentResp {
	resp := shipmentResp{Shipment: sh}
	d := sh.Quote.Display()
	resp.Display.Total = d.Total
	resp.Display.TravelerPayout = d.TravelerPayout
	return resp
}

// Book handles POST /api/shipments.
func (h *ShipmentHandler) Book(c *gin.Context) {
	var req bookShipmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.TripID) || !isValidID(req.SenderID) {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	sh, err := h.shipments.Book(c.Request.Context(), shipment.BookCommand{
		QuoteCommand: shipment.QuoteCommand{
			TripID:        types.ID(req.TripID),
			SenderID:      types.ID(req.SenderID),
			WeightKg:      req.WeightKg,
			DeclaredValue: req.DeclaredValue,
			Urgency:       req.Urgency,
			Insurance:     req.InsuranceTier,
		},
		ItemDescription: req.ItemDescription,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, newShipmentResp(sh))
}

// List handles GET /api/shipments?sender_id=.
func (h *ShipmentHandler) List(c *gin.Context) {
	sender := c.Query("sender_id")
	if !isValidID(sender) {
		writeError(c, http.StatusBadRequest, "missing or invalid sender_id")
		return
	}
	list, err := h.shipments.ListBySender(c.Request.Context(), types.ID(sender))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"shipments": list})
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sh, err := h.shipments.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newShipmentResp(sh))
}

type advanceReq struct {
	Status string `json:"status" binding:"required"`
}

// Advance handles POST /api/shipments/:id/status.
func (h *ShipmentHandler) Advance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req advanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	to, err := shipment.ParseOrderStatus(req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	sh, err := h.shipments.Advance(c.Request.Context(), types.ID(id), to)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newShipmentResp(sh))
}
