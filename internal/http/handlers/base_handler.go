// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/maps"
	"sharestuff/internal/modules/booking"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/modules/shipment"
	"sharestuff/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts catalog ids (t_can_2, can-1) and uuids.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps module sentinel errors to status codes. Anything
// unrecognised is a 500 and its message is not echoed to the client.
func writeDomainError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, pricing.ErrUnknownUrgency),
		errors.Is(err, pricing.ErrUnknownInsuranceTier),
		errors.Is(err, pricing.ErrUnknownStorageTier),
		errors.Is(err, pricing.ErrAmountOutOfRange),
		errors.Is(err, trip.ErrBadRequest),
		errors.Is(err, listing.ErrBadRequest),
		errors.Is(err, shipment.ErrBadRequest),
		errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound),
		errors.Is(err, listing.ErrNotFound),
		errors.Is(err, shipment.ErrNotFound),
		errors.Is(err, booking.ErrNotFound),
		errors.Is(err, maps.ErrAddressNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrTripNotOpen),
		errors.Is(err, shipment.ErrInvalidState),
		errors.Is(err, shipment.ErrConflict),
		errors.Is(err, booking.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, trip.ErrBidBelowFloor),
		errors.Is(err, trip.ErrBidAboveAsking),
		errors.Is(err, shipment.ErrOverCapacity),
		errors.Is(err, booking.ErrOverCapacity):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, listing.ErrGeocoderUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// pathID reads and validates the :id route parameter, writing a 400 when invalid.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id, true
}
