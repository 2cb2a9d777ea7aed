// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sharestuff/internal/ai"
	"sharestuff/internal/http/handlers"
	"sharestuff/internal/http/middleware"
	"sharestuff/internal/modules/booking"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/modules/shipment"
	"sharestuff/internal/modules/trip"
	"sharestuff/internal/obs"
)

type RouterDeps struct {
	Trips     *trip.Service
	Listings  *listing.Service
	Shipments *shipment.Service
	Bookings  *booking.Service
	Advisor   ai.Advisor

	Log         zerolog.Logger
	HTTPMetrics *obs.HTTPMetrics
	Metrics     *obs.DomainMetrics
	// Gatherer backs GET /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Log),
		middleware.Logging(deps.Log),
		middleware.Metrics(deps.HTTPMetrics),
	)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	quoteHandler := handlers.NewQuoteHandler(deps.Bookings, deps.Metrics)
	api.POST("/quotes/shipment", quoteHandler.Shipment)
	api.POST("/quotes/storage", quoteHandler.Storage)

	tripHandler := handlers.NewTripHandler(deps.Trips, deps.Shipments)
	api.GET("/trips", tripHandler.Search)
	api.GET("/trips/:id", tripHandler.Get)
	api.POST("/trips/:id/bids", tripHandler.SubmitBid)
	api.POST("/trips/:id/quote", tripHandler.Quote)

	shipmentHandler := handlers.NewShipmentHandler(deps.Shipments)
	api.POST("/shipments", shipmentHandler.Book)
	api.GET("/shipments", shipmentHandler.List)
	api.GET("/shipments/:id", shipmentHandler.Get)
	api.POST("/shipments/:id/status", shipmentHandler.Advance)

	listingHandler := handlers.NewListingHandler(deps.Listings, deps.Bookings, deps.Advisor)
	api.GET("/listings", listingHandler.Search)
	api.GET("/listings/nearby", listingHandler.Nearby)
	api.GET("/listings/:id", listingHandler.Get)
	api.GET("/listings/:id/summary", listingHandler.Summary)
	api.POST("/listings/:id/bookings", listingHandler.Book)

	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	api.GET("/bookings", bookingHandler.List)
	api.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	api.POST("/bookings/:id/complete", bookingHandler.Complete)

	adviceHandler := handlers.NewAdviceHandler(deps.Advisor)
	api.POST("/advice/item-safety", adviceHandler.ItemSafety)

	return r
}
