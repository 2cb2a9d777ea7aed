// README: Entry point; loads config, wires services and integrations, serves HTTP until signalled.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"sharestuff/internal/config"
	httptransport "sharestuff/internal/http"
	"sharestuff/internal/infra"
	"sharestuff/internal/modules/booking"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/modules/shipment"
	"sharestuff/internal/modules/trip"
	"sharestuff/internal/obs"
)

const metricsNamespace = "sharestuff"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := obs.NewLogger("json", "info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := obs.NewLogger(cfg.Log.Format, cfg.Log.Level)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := obs.NewHTTPMetrics(metricsNamespace, reg)
	domainMetrics := obs.NewDomainMetrics(metricsNamespace, reg)

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; advice cache disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := infra.NewPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("close publisher")
		}
	}()

	advisor, closeAdvisor, err := infra.NewAdvisor(ctx, cfg, redisClient, domainMetrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("advisor init")
	}
	defer closeAdvisor()

	geocoder, err := infra.NewGeocoder(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("geocoder init")
	}

	tripSvc := trip.NewService(trip.NewStore(trip.SeedTrips()), log)
	listingSvc := listing.NewService(listing.NewStore(listing.SeedListings()), geocoder, log)
	shipmentSvc := shipment.NewService(shipment.NewStore(), tripSvc, publisher, domainMetrics, log)
	bookingSvc := booking.NewService(booking.NewStore(), listingSvc, publisher, domainMetrics, log)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:       tripSvc,
		Listings:    listingSvc,
		Shipments:   shipmentSvc,
		Bookings:    bookingSvc,
		Advisor:     advisor,
		Log:         log,
		HTTPMetrics: httpMetrics,
		Metrics:     domainMetrics,
		Gatherer:    reg,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router, log)
	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("http server")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}
