// README: End-to-end tests of the REST surface against in-memory services.
package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharestuff/internal/events"
	apihttp "sharestuff/internal/http"
	"sharestuff/internal/modules/booking"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/modules/shipment"
	"sharestuff/internal/modules/trip"
	"sharestuff/internal/obs"
	"sharestuff/internal/types"
)

type stubAdvisor struct{}

func (stubAdvisor) StorageSummary(ctx context.Context, title string, amenities []string) string {
	return "Summary for " + title
}

func (stubAdvisor) ItemSafetyAdvice(ctx context.Context, description string) string {
	return "Check " + description
}

type fixedGeocoder struct{ p types.Point }

func (g fixedGeocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	return g.p, nil
}

func newTestRouter(t *testing.T, geocoder listing.Geocoder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	metrics := obs.NewDomainMetrics("sharestuff", reg)
	pub := events.NewLogPublisher(log)

	trips := trip.NewService(trip.NewStore(trip.SeedTrips()), log)
	listings := listing.NewService(listing.NewStore(listing.SeedListings()), geocoder, log)
	shipments := shipment.NewService(shipment.NewStore(), trips, pub, metrics, log)
	bookings := booking.NewService(booking.NewStore(), listings, pub, metrics, log)

	return apihttp.NewRouter(apihttp.RouterDeps{
		Trips:       trips,
		Listings:    listings,
		Shipments:   shipments,
		Bookings:    bookings,
		Advisor:     stubAdvisor{},
		Log:         log,
		HTTPMetrics: obs.NewHTTPMetrics("sharestuff", reg),
		Metrics:     metrics,
		Gatherer:    reg,
	})
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	doRequest(r, http.MethodPost, "/api/quotes/shipment", map[string]any{
		"weightKg": 1, "ratePerKg": 12, "declaredValue": 100, "urgency": "flexible", "insuranceTier": "BASIC",
	})
	w = doRequest(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sharestuff_quotes_total{insurance="BASIC",kind="shipment",urgency="flexible"} 1`)
	assert.Contains(t, w.Body.String(), "sharestuff_http_requests_total")
}

func TestShipmentQuote_Scenarios(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name        string
		body        map[string]any
		wantTotal   float64
		wantPayout  float64
		wantDisplay string
	}{
		{"A", map[string]any{"weightKg": 1, "ratePerKg": 12, "declaredValue": 100, "urgency": "flexible", "insuranceTier": "BASIC"}, 12, 9.60, "$12.00"},
		{"B", map[string]any{"weightKg": 5, "ratePerKg": 25, "declaredValue": 800, "urgency": "express", "insuranceTier": "PRO"}, 177.25, 141.80, "$177.25"},
		{"C", map[string]any{"weightKg": 10, "ratePerKg": 35, "declaredValue": 2000, "urgency": "next-flight", "insuranceTier": "PREMIUM"}, 655, 524, "$655.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/quotes/shipment", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			out := decode(t, w)
			assert.Equal(t, tt.wantTotal, out["total"])
			assert.Equal(t, tt.wantPayout, out["travelerPayout"])
			assert.Equal(t, tt.wantDisplay, out["display"].(map[string]any)["total"])
		})
	}
}

func TestShipmentQuote_UnknownTiersRejected(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/quotes/shipment", map[string]any{
		"weightKg": 1, "ratePerKg": 12, "urgency": "overnight", "insuranceTier": "BASIC",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown urgency")

	w = doRequest(r, http.MethodPost, "/api/quotes/shipment", map[string]any{
		"weightKg": 1, "ratePerKg": 12, "urgency": "flexible", "insuranceTier": "GOLD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/quotes/shipment", map[string]any{"weightKg": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShipmentQuote_OverflowRejected(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/quotes/shipment", map[string]any{
		"weightKg": 1e200, "ratePerKg": 1e200, "declaredValue": 100, "urgency": "flexible", "insuranceTier": "BASIC",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "out of range")

	w = doRequest(r, http.MethodPost, "/api/trips/t1/quote", map[string]any{
		"senderId": "u1", "weightKg": 1e308, "declaredValue": 100, "urgency": "express", "insuranceTier": "PRO",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestStorageQuote(t *testing.T) {
	r := newTestRouter(t, nil)
	w := doRequest(r, http.MethodPost, "/api/quotes/storage", map[string]any{
		"listingId": "can-1", "bags": 2, "hours": 3, "insuranceTier": "Basic",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, 28.52, out["total"])
	assert.Equal(t, "$28.52", out["display"].(map[string]any)["total"])

	w = doRequest(r, http.MethodPost, "/api/quotes/storage", map[string]any{
		"listingId": "nope", "bags": 2, "hours": 3, "insuranceTier": "Basic",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/api/quotes/storage", map[string]any{
		"listingId": "can-1", "bags": 1, "hours": 3000000, "insuranceTier": "Basic",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrips(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/api/trips?q=toronto", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["trips"], 2)

	w = doRequest(r, http.MethodGet, "/api/trips/t_intl_1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AF272", decode(t, w)["flightNumber"])

	w = doRequest(r, http.MethodGet, "/api/trips/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/api/trips/bad$id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBidThenQuoteUsesNegotiatedRate(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/trips/t1/bids", map[string]any{"senderId": "u1", "ratePerKg": 9})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = doRequest(r, http.MethodPost, "/api/trips/t1/bids", map[string]any{"senderId": "u1", "ratePerKg": 13})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(r, http.MethodPost, "/api/trips/t1/bids", map[string]any{"senderId": "u1", "ratePerKg": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPost, "/api/trips/t1/quote", map[string]any{
		"senderId": "u1", "weightKg": 2, "declaredValue": 100, "urgency": "flexible", "insuranceTier": "BASIC",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, true, out["negotiated"])
	assert.Equal(t, 10.0, out["ratePerKg"])
	assert.Equal(t, 20.0, out["quote"].(map[string]any)["total"])
}

func TestShipmentLifecycle(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/shipments", map[string]any{
		"tripId": "t_can_2", "senderId": "u1", "itemDescription": "Vintage camera",
		"weightKg": 5, "declaredValue": 800, "urgency": "express", "insuranceTier": "PRO",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, 177.25, created["total"])
	assert.Equal(t, 141.8, created["travelerPayout"])
	assert.Equal(t, "MATCHED", created["status"])
	assert.Equal(t, "PENDING", created["escrowStatus"])
	assert.Equal(t, "$141.80", created["display"].(map[string]any)["travelerPayout"])

	w = doRequest(r, http.MethodPost, "/api/shipments/"+id+"/status", map[string]any{"status": "funded"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "SECURED", decode(t, w)["escrowStatus"])

	w = doRequest(r, http.MethodPost, "/api/shipments/"+id+"/status", map[string]any{"status": "PAID"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/api/shipments/"+id+"/status", map[string]any{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/shipments?sender_id=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["shipments"], 1)

	w = doRequest(r, http.MethodGet, "/api/shipments/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FUNDED", decode(t, w)["status"])
}

func TestShipmentBook_Rejections(t *testing.T) {
	r := newTestRouter(t, nil)
	base := map[string]any{
		"tripId": "t1", "senderId": "u1", "itemDescription": "Books",
		"weightKg": 9, "declaredValue": 50, "urgency": "flexible", "insuranceTier": "BASIC",
	}
	w := doRequest(r, http.MethodPost, "/api/shipments", base)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "over the 8 kg capacity")

	base["weightKg"] = 2
	base["urgency"] = "whenever"
	w = doRequest(r, http.MethodPost, "/api/shipments", base)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/shipments", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListings(t *testing.T) {
	r := newTestRouter(t, fixedGeocoder{p: types.Point{Lat: 43.6453, Lng: -79.3806}})

	w := doRequest(r, http.MethodGet, "/api/listings?q=toronto&amenity=Insurance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listings := decode(t, w)["listings"].([]any)
	require.Len(t, listings, 1)
	assert.Equal(t, "can-2", listings[0].(map[string]any)["id"])

	w = doRequest(r, http.MethodGet, "/api/listings/nearby?lat=43.6453&lng=-79.3806&radius_km=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["listings"], 2)

	w = doRequest(r, http.MethodGet, "/api/listings/nearby?address=Union+Station&radius_km=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["listings"], 2)

	w = doRequest(r, http.MethodGet, "/api/listings/nearby?lat=abc&lng=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(r, http.MethodGet, "/api/listings/nearby", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/listings/intl-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dubai", decode(t, w)["city"])

	w = doRequest(r, http.MethodGet, "/api/listings/intl-1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Summary for Dubai Marina Nexus", decode(t, w)["summary"])
}

func TestListingsNearbyAddress_NoGeocoder(t *testing.T) {
	r := newTestRouter(t, nil)
	w := doRequest(r, http.MethodGet, "/api/listings/nearby?address=Union+Station", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStorageBookingLifecycle(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/listings/can-1/bookings", map[string]any{
		"travelerId": "u1", "bags": 2, "hours": 3, "insuranceTier": "elite",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode(t, w)
	assert.Equal(t, "ACTIVE", b["status"])
	assert.Equal(t, 40.52, b["totalPrice"])
	assert.True(t, strings.HasPrefix(b["qrCode"].(string), "SS-LOGISTICS-TOKEN-"))
	id := b["id"].(string)

	w = doRequest(r, http.MethodPost, "/api/listings/can-1/bookings", map[string]any{
		"travelerId": "u1", "bags": 46, "hours": 3, "insuranceTier": "elite",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(r, http.MethodGet, "/api/bookings?traveler_id=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["bookings"], 1)

	w = doRequest(r, http.MethodPost, "/api/bookings/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", decode(t, w)["status"])

	w = doRequest(r, http.MethodPost, "/api/bookings/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestItemSafetyAdvice(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/advice/item-safety", map[string]any{"itemDescription": "drone battery"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Check drone battery", decode(t, w)["advice"])

	w = doRequest(r, http.MethodPost, "/api/advice/item-safety", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
