// README: Benchmark cases covering health, pricing scenarios, booking flows, metrics and load.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

type quoteBody struct {
	WeightKg      float64 `json:"weightKg"`
	RatePerKg     float64 `json:"ratePerKg"`
	DeclaredValue float64 `json:"declaredValue"`
	Urgency       string  `json:"urgency"`
	InsuranceTier string  `json:"insuranceTier"`
}

type quoteTotals struct {
	BaseFee            float64 `json:"baseFee"`
	ValueSurcharge     float64 `json:"valueSurcharge"`
	UrgencyPremium     float64 `json:"urgencyPremium"`
	InsurancePremium   float64 `json:"insurancePremium"`
	Total              float64 `json:"total"`
	PlatformCommission float64 `json:"platformCommission"`
	TravelerPayout     float64 `json:"travelerPayout"`
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	quoteURL := base + "/api/quotes/shipment"
	return []TestCase{
		{
			Name:  "Env: Redis ping",
			Focus: "Advice cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),

		// Pricing scenarios
		quoteCase("Quote: scenario A (flexible/BASIC)", quoteURL,
			quoteBody{WeightKg: 1, RatePerKg: 12, DeclaredValue: 100, Urgency: "flexible", InsuranceTier: "BASIC"},
			quoteTotals{BaseFee: 12, Total: 12, PlatformCommission: 2.40, TravelerPayout: 9.60}),
		quoteCase("Quote: scenario B (express/PRO)", quoteURL,
			quoteBody{WeightKg: 5, RatePerKg: 25, DeclaredValue: 800, Urgency: "express", InsuranceTier: "PRO"},
			quoteTotals{BaseFee: 125, ValueSurcharge: 6, UrgencyPremium: 31.25, InsurancePremium: 15, Total: 177.25, PlatformCommission: 35.45, TravelerPayout: 141.80}),
		quoteCase("Quote: scenario C (next-flight/PREMIUM)", quoteURL,
			quoteBody{WeightKg: 10, RatePerKg: 35, DeclaredValue: 2000, Urgency: "next-flight", InsuranceTier: "PREMIUM"},
			quoteTotals{BaseFee: 350, ValueSurcharge: 30, UrgencyPremium: 175, InsurancePremium: 100, Total: 655, PlatformCommission: 131, TravelerPayout: 524}),
		quoteCase("Quote: negative inputs clamp to zero", quoteURL,
			quoteBody{WeightKg: -5, RatePerKg: -3, DeclaredValue: -100, Urgency: "flexible", InsuranceTier: "BASIC"},
			quoteTotals{}),
		httpCase("Quote: unknown urgency -> 400", quoteURL,
			quoteBody{WeightKg: 1, RatePerKg: 12, Urgency: "overnight", InsuranceTier: "BASIC"}, []int{400}, nil),
		httpCase("Quote: unknown insurance tier -> 400", quoteURL,
			quoteBody{WeightKg: 1, RatePerKg: 12, Urgency: "flexible", InsuranceTier: "GOLD"}, []int{400}, nil),
		{
			Name:  "Quote: concurrent requests agree",
			Focus: "Engine is deterministic under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentQuotes(ctx, r, quoteURL,
					quoteBody{WeightKg: 3.7, RatePerKg: 18.5, DeclaredValue: 640, Urgency: "express", InsuranceTier: "PREMIUM"})
			},
		},
		httpCase("Storage: quote can-1", base+"/api/quotes/storage", map[string]any{
			"listingId":     "can-1",
			"bags":          2,
			"hours":         3,
			"insuranceTier": "Elite",
		}, []int{200}, []int{404}),

		// Marketplace
		httpCaseMethod("Trips: search", http.MethodGet, base+"/api/trips?q=Toronto", nil, []int{200}, nil),
		httpCaseMethod("Trips: unknown trip -> 404", http.MethodGet, base+"/api/trips/nope", nil, []int{404}, nil),
		{
			Name:  "Shipment: bid, book, advance",
			Focus: "Negotiated rate flows into the booked shipment",
			Run: func(ctx context.Context, r *Runner) Result {
				return shipmentFlow(ctx, r, base)
			},
		},
		httpCaseMethod("Listings: nearby Union Station", http.MethodGet,
			base+"/api/listings/nearby?lat=43.6453&lng=-79.3806&radius_km=5", nil, []int{200}, nil),
		httpCase("Listings: book storage", base+"/api/listings/can-1/bookings", map[string]any{
			"travelerId":    "bench-traveler",
			"bags":          1,
			"hours":         2,
			"insuranceTier": "Basic",
		}, []int{201}, []int{404}),
		httpCase("Listings: over capacity -> 422", base+"/api/listings/can-1/bookings", map[string]any{
			"travelerId":    "bench-traveler",
			"bags":          999,
			"hours":         2,
			"insuranceTier": "Basic",
		}, []int{422}, []int{404}),
		{
			Name:  "Metrics: exposition",
			Focus: "Prometheus endpoint lists domain counters",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				body, status, err := r.do(ctx, http.MethodGet, base+"/metrics", nil)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
				}
				if !strings.Contains(string(body), "sharestuff_quotes_total") {
					return Result{Status: statusFail, Latency: time.Since(start), Note: "missing sharestuff_quotes_total"}
				}
				return Result{Status: statusPass, Latency: time.Since(start)}
			},
		},

		// Load
		{
			Name:  "Perf: shipment quote throughput",
			Focus: "Quote endpoint under sustained load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, quoteURL,
					quoteBody{WeightKg: 5, RatePerKg: 25, DeclaredValue: 800, Urgency: "express", InsuranceTier: "PRO"})
			},
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) ([]byte, int, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	return out, resp.StatusCode, err
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP status",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			_, status, err := r.do(ctx, method, url, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if contains(okStatuses, status) {
				return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			if contains(pendingStatuses, status) {
				return Result{Status: statusPending, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func quoteCase(name, url string, body quoteBody, want quoteTotals) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Quote breakdown",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			raw, status, err := r.do(ctx, http.MethodPost, url, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if status != http.StatusOK {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			var got quoteTotals
			if err := json.Unmarshal(raw, &got); err != nil {
				return Result{Status: statusFail, Latency: latency, Note: "decode: " + err.Error()}
			}
			if diff := diffTotals(got, want); diff != "" {
				return Result{Status: statusFail, Latency: latency, Note: diff}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("total=%.2f", got.Total)}
		},
	}
}

func diffTotals(got, want quoteTotals) string {
	pairs := []struct {
		field     string
		got, want float64
	}{
		{"baseFee", got.BaseFee, want.BaseFee},
		{"valueSurcharge", got.ValueSurcharge, want.ValueSurcharge},
		{"urgencyPremium", got.UrgencyPremium, want.UrgencyPremium},
		{"insurancePremium", got.InsurancePremium, want.InsurancePremium},
		{"total", got.Total, want.Total},
		{"platformCommission", got.PlatformCommission, want.PlatformCommission},
		{"travelerPayout", got.TravelerPayout, want.TravelerPayout},
	}
	for _, p := range pairs {
		if math.Abs(p.got-p.want) > 0.001 {
			return fmt.Sprintf("%s=%.2f want %.2f", p.field, p.got, p.want)
		}
	}
	return ""
}

func concurrentQuotes(ctx context.Context, r *Runner, url string, body quoteBody) Result {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		bodies = make(map[string]int)
		errs   int
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, status, err := r.do(ctx, http.MethodPost, url, body)
			mu.Lock()
			defer mu.Unlock()
			if err != nil || status != http.StatusOK {
				errs++
				return
			}
			bodies[string(raw)]++
		}()
	}
	wg.Wait()

	if errs > 0 {
		return Result{Status: statusFail, Note: fmt.Sprintf("errors=%d", errs)}
	}
	if len(bodies) != 1 {
		return Result{Status: statusFail, Note: fmt.Sprintf("distinct responses=%d", len(bodies))}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("requests=%d", r.cfg.Concurrency)}
}

func shipmentFlow(ctx context.Context, r *Runner, base string) Result {
	start := time.Now()
	sender := fmt.Sprintf("bench-%d", time.Now().UnixNano())

	_, status, err := r.do(ctx, http.MethodPost, base+"/api/trips/t_can_2/bids", map[string]any{
		"senderId":  sender,
		"ratePerKg": 20,
	})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusCreated {
		return Result{Status: statusFail, Note: fmt.Sprintf("bid status=%d", status)}
	}

	order := map[string]any{
		"tripId":          "t_can_2",
		"senderId":        sender,
		"itemDescription": "Two paperback books",
		"weightKg":        5,
		"declaredValue":   800,
		"urgency":         "express",
		"insuranceTier":   "PRO",
	}
	raw, status, err := r.do(ctx, http.MethodPost, base+"/api/shipments", order)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusCreated {
		return Result{Status: statusFail, Note: fmt.Sprintf("book status=%d", status)}
	}
	var booked struct {
		ID         string  `json:"id"`
		Status     string  `json:"status"`
		Total      float64 `json:"total"`
		Negotiated bool    `json:"negotiated"`
	}
	if err := json.Unmarshal(raw, &booked); err != nil {
		return Result{Status: statusFail, Note: "decode: " + err.Error()}
	}
	if !booked.Negotiated || math.Abs(booked.Total-146) > 0.001 {
		return Result{Status: statusFail, Note: fmt.Sprintf("negotiated=%t total=%.2f", booked.Negotiated, booked.Total)}
	}

	for _, next := range []string{"FUNDED", "PICKED_UP", "IN_TRANSIT", "DELIVERED", "PAID"} {
		_, status, err := r.do(ctx, http.MethodPost, base+"/api/shipments/"+booked.ID+"/status", map[string]any{"status": next})
		if err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if status != http.StatusOK {
			return Result{Status: statusFail, Note: fmt.Sprintf("%s status=%d", next, status)}
		}
	}

	_, status, err = r.do(ctx, http.MethodPost, base+"/api/shipments/"+booked.ID+"/status", map[string]any{"status": "FUNDED"})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusConflict {
		return Result{Status: statusFail, Note: fmt.Sprintf("paid->funded status=%d", status)}
	}
	return Result{Status: statusPass, Latency: time.Since(start), Note: "id=" + booked.ID}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				_, status, err := r.do(ctx, http.MethodPost, url, payload)
				mu.Lock()
				if err != nil || status >= 500 {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}
