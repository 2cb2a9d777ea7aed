// README: Prometheus collectors for HTTP traffic and marketplace activity.
package obs

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type HTTPMetrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
}

func NewHTTPMetrics(namespace string, reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &HTTPMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
	}
	m.ReqTotal = registerOrExisting(reg, m.ReqTotal)
	m.ReqDur = registerOrExisting(reg, m.ReqDur)
	return m
}

// DomainMetrics counts marketplace events. A nil *DomainMetrics is a no-op.
type DomainMetrics struct {
	Quotes           *prometheus.CounterVec
	ShipmentsBooked  prometheus.Counter
	StorageBookings  prometheus.Counter
	AdvisorFallbacks *prometheus.CounterVec
}

func NewDomainMetrics(namespace string, reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &DomainMetrics{
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quotes computed, by kind and tier.",
		}, []string{"kind", "urgency", "insurance"}),
		ShipmentsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_booked_total",
			Help:      "Shipments confirmed through the booking flow.",
		}),
		StorageBookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_bookings_total",
			Help:      "Luggage storage bookings created.",
		}),
		AdvisorFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisor_fallbacks_total",
			Help:      "Advisory text requests answered with fallback copy.",
		}, []string{"kind"}),
	}
	m.Quotes = registerOrExisting(reg, m.Quotes)
	m.ShipmentsBooked = registerOrExisting(reg, m.ShipmentsBooked)
	m.StorageBookings = registerOrExisting(reg, m.StorageBookings)
	m.AdvisorFallbacks = registerOrExisting(reg, m.AdvisorFallbacks)
	return m
}

func (m *DomainMetrics) ShipmentQuoted(urgency, insurance string) {
	if m == nil {
		return
	}
	m.Quotes.WithLabelValues("shipment", urgency, insurance).Inc()
}

func (m *DomainMetrics) StorageQuoted(tier string) {
	if m == nil {
		return
	}
	m.Quotes.WithLabelValues("storage", "", tier).Inc()
}

func (m *DomainMetrics) ShipmentBooked() {
	if m == nil {
		return
	}
	m.ShipmentsBooked.Inc()
}

func (m *DomainMetrics) StorageBooked() {
	if m == nil {
		return
	}
	m.StorageBookings.Inc()
}

func (m *DomainMetrics) AdvisorFallback(kind string) {
	if m == nil {
		return
	}
	m.AdvisorFallbacks.WithLabelValues(kind).Inc()
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// registerOrExisting registers c, returning the already registered collector
// when an identical one exists so that tests can build several servers.
func registerOrExisting[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
