// README: Storage booking handlers (traveler history, cancel, complete).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/modules/booking"
	"sharestuff/internal/types"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List handles GET /api/bookings?traveler_id=.
func (h *BookingHandler) List(c *gin.Context) {
	traveler := c.Query("traveler_id")
	if !isValidID(traveler) {
		writeError(c, http.StatusBadRequest, "missing or invalid traveler_id")
		return
	}
	list, err := h.bookings.ListByTraveler(c.Request.Context(), types.ID(traveler))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.bookings.Cancel(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.bookings.Complete(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}
