// README: Listing handlers: search, proximity, AI summaries and storage bookings.
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/ai"
	"sharestuff/internal/modules/booking"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/types"
)

type ListingHandler struct {
	listings *listing.Service
	bookings *booking.Service
	advisor  ai.Advisor
}

func NewListingHandler(listings *listing.Service, bookings *booking.Service, advisor ai.Advisor) *ListingHandler {
	if advisor == nil {
		advisor = ai.FallbackAdvisor{}
	}
	return &ListingHandler{listings: listings, bookings: bookings, advisor: advisor}
}

// Search handles GET /api/listings?q=&amenity=CCTV&amenity=24/7.
func (h *ListingHandler) Search(c *gin.Context) {
	f := listing.Filter{Query: c.Query("q"), Amenities: c.QueryArray("amenity")}
	out, err := h.listings.Search(c.Request.Context(), f)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"listings": out})
}

// Nearby handles GET /api/listings/nearby with either lat/lng or address.
func (h *ListingHandler) Nearby(c *gin.Context) {
	radius, ok := queryFloat(c, "radius_km", 0)
	if !ok {
		return
	}
	var (
		out []listing.Nearest
		err error
	)
	if addr := strings.TrimSpace(c.Query("address")); addr != "" {
		out, err = h.listings.NearbyAddress(c.Request.Context(), addr, radius)
	} else {
		if c.Query("lat") == "" || c.Query("lng") == "" {
			writeError(c, http.StatusBadRequest, "lat and lng, or address, are required")
			return
		}
		lat, ok := queryFloat(c, "lat", 0)
		if !ok {
			return
		}
		lng, ok := queryFloat(c, "lng", 0)
		if !ok {
			return
		}
		out, err = h.listings.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	}
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"listings": out})
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := h.listings.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}

// Summary handles GET /api/listings/:id/summary. Always 200 for a known listing.
func (h *ListingHandler) Summary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := h.listings.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	summary := h.advisor.StorageSummary(c.Request.Context(), l.Title, l.Amenities)
	writeJSON(c, http.StatusOK, gin.H{"listingId": l.ID, "summary": summary})
}

type bookStorageReq struct {
	TravelerID    string     `json:"travelerId" binding:"required"`
	Bags          int        `json:"bags"`
	Hours         int        `json:"hours"`
	InsuranceTier string     `json:"insuranceTier" binding:"required"`
	StartTime     *time.Time `json:"startTime"`
}

// Book handles POST /api/listings/:id/bookings.
func (h *ListingHandler) Book(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req bookStorageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.TravelerID) {
		writeError(c, http.StatusBadRequest, "invalid traveler id")
		return
	}
	cmd := booking.BookCommand{
		ListingID:  types.ID(id),
		TravelerID: types.ID(req.TravelerID),
		Bags:       req.Bags,
		Hours:      req.Hours,
		Tier:       req.InsuranceTier,
	}
	if req.StartTime != nil {
		cmd.StartTime = *req.StartTime
	}
	b, err := h.bookings.Book(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, b)
}

// queryFloat parses an optional float query parameter, writing a 400 on bad input.
func queryFloat(c *gin.Context, key string, def float64) (float64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return v, true
}
