package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharestuff/internal/events"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/obs"
	"sharestuff/internal/types"
)

type capturePublisher struct {
	mu   sync.Mutex
	envs []events.Envelope
}

func (p *capturePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envs = append(p.envs, value.(events.Envelope))
	return nil
}

func (p *capturePublisher) Close() error { return nil }

var start = time.Date(2024, 12, 20, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *capturePublisher, *obs.DomainMetrics) {
	t.Helper()
	listings := listing.NewService(listing.NewStore(listing.SeedListings()), nil, zerolog.Nop())
	pub := &capturePublisher{}
	metrics := obs.NewDomainMetrics("test", prometheus.NewRegistry())
	svc := NewService(NewStore(), listings, pub, metrics, zerolog.Nop())
	svc.now = func() time.Time { return start }
	return svc, pub, metrics
}

func TestQuote(t *testing.T) {
	svc, _, metrics := newTestService(t)

	q, err := svc.Quote(context.Background(), "can-1", 2, 3, "elite")
	require.NoError(t, err)
	assert.Equal(t, pricing.StorageQuote{BasePrice: 21, ServiceFee: 2.52, InsuranceFee: 17, Total: 40.52}, q)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Quotes.WithLabelValues("storage", "", "Elite")))

	_, err = svc.Quote(context.Background(), "can-1", 2, 3, "platinum")
	assert.ErrorIs(t, err, pricing.ErrUnknownStorageTier)

	_, err = svc.Quote(context.Background(), "nope", 2, 3, "basic")
	assert.ErrorIs(t, err, listing.ErrNotFound)

	_, err = svc.Quote(context.Background(), "can-1", 1, MaxHours+1, "basic")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestBook(t *testing.T) {
	svc, pub, metrics := newTestService(t)

	b, err := svc.Book(context.Background(), BookCommand{
		ListingID:  "can-1",
		TravelerID: "u1",
		Bags:       2,
		Hours:      3,
		Tier:       "Basic",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, b.Status)
	assert.Equal(t, start, b.StartTime)
	assert.Equal(t, start.Add(3*time.Hour), b.EndTime)
	assert.Equal(t, 28.52, b.TotalPrice)
	assert.Equal(t, pricing.StorageBasic, b.Tier)
	assert.True(t, strings.HasPrefix(b.QRCode, "SS-LOGISTICS-TOKEN-"), b.QRCode)
	assert.Equal(t, strings.ToUpper(b.QRCode), b.QRCode)
	assert.Len(t, b.QRCode, len("SS-LOGISTICS-TOKEN-")+10)

	require.Len(t, pub.envs, 1)
	assert.Equal(t, events.TypeBookingCreated, pub.envs[0].Type)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StorageBookings))

	stored, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.QRCode, stored.QRCode)
}

func TestBook_ExplicitStart(t *testing.T) {
	svc, _, _ := newTestService(t)
	at := start.Add(48 * time.Hour)
	b, err := svc.Book(context.Background(), BookCommand{ListingID: "l1", TravelerID: "u1", Bags: 1, Hours: 24, Tier: "elite", StartTime: at})
	require.NoError(t, err)
	assert.Equal(t, at, b.StartTime)
	assert.Equal(t, at.Add(24*time.Hour), b.EndTime)
	assert.Equal(t, start, b.CreatedAt)
}

func TestBook_QRCodesDiffer(t *testing.T) {
	svc, _, _ := newTestService(t)
	cmd := BookCommand{ListingID: "can-2", TravelerID: "u1", Bags: 1, Hours: 1, Tier: "basic"}
	a, err := svc.Book(context.Background(), cmd)
	require.NoError(t, err)
	b, err := svc.Book(context.Background(), cmd)
	require.NoError(t, err)
	assert.NotEqual(t, a.QRCode, b.QRCode)
}

func TestBook_Rejections(t *testing.T) {
	svc, pub, _ := newTestService(t)
	valid := BookCommand{ListingID: "can-1", TravelerID: "u1", Bags: 2, Hours: 3, Tier: "basic"}

	tests := []struct {
		name    string
		mutate  func(*BookCommand)
		wantErr error
	}{
		{"missing traveler", func(c *BookCommand) { c.TravelerID = "" }, ErrBadRequest},
		{"zero bags", func(c *BookCommand) { c.Bags = 0 }, ErrBadRequest},
		{"zero hours", func(c *BookCommand) { c.Hours = 0 }, ErrBadRequest},
		{"hours past one year", func(c *BookCommand) { c.Hours = MaxHours + 1 }, ErrBadRequest},
		{"hours overflowing the end time", func(c *BookCommand) { c.Hours = 3000000 }, ErrBadRequest},
		{"over capacity", func(c *BookCommand) { c.Bags = 46 }, ErrOverCapacity},
		{"unknown tier", func(c *BookCommand) { c.Tier = "gold" }, pricing.ErrUnknownStorageTier},
		{"unknown listing", func(c *BookCommand) { c.ListingID = "missing" }, listing.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)
			_, err := svc.Book(context.Background(), cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, pub.envs)

	cmd := valid
	cmd.Bags = 45
	_, err := svc.Book(context.Background(), cmd)
	assert.NoError(t, err, "exactly at capacity is allowed")

	cmd = valid
	cmd.Hours = MaxHours
	b, err := svc.Book(context.Background(), cmd)
	require.NoError(t, err)
	assert.True(t, b.EndTime.After(b.StartTime))
	assert.Equal(t, time.Duration(MaxHours)*time.Hour, b.EndTime.Sub(b.StartTime))
}

func TestCancelAndComplete(t *testing.T) {
	svc, pub, _ := newTestService(t)
	ctx := context.Background()
	cmd := BookCommand{ListingID: "intl-1", TravelerID: "u1", Bags: 3, Hours: 5, Tier: "elite"}

	a, err := svc.Book(ctx, cmd)
	require.NoError(t, err)
	b, err := svc.Book(ctx, cmd)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	completed, err := svc.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	_, err = svc.Complete(ctx, a.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Cancel(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, pub.envs, 4)
	assert.Equal(t, events.TypeBookingStatusChanged, pub.envs[3].Type)
}

func TestConcurrentCancelVsComplete(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	b, err := svc.Book(ctx, BookCommand{ListingID: "can-5", TravelerID: "u1", Bags: 1, Hours: 2, Tier: "basic"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, closeOut := range []func(context.Context, types.ID) (*Booking, error){svc.Cancel, svc.Complete} {
		wg.Add(1)
		go func(closeOut func(context.Context, types.ID) (*Booking, error)) {
			defer wg.Done()
			_, err := closeOut(ctx, b.ID)
			errs <- err
		}(closeOut)
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		require.True(t, errors.Is(err, ErrInvalidState), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, success)
}

func TestListByTraveler(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	early, err := svc.Book(ctx, BookCommand{ListingID: "l1", TravelerID: "u1", Bags: 1, Hours: 1, Tier: "basic", StartTime: start})
	require.NoError(t, err)
	late, err := svc.Book(ctx, BookCommand{ListingID: "l1", TravelerID: "u1", Bags: 1, Hours: 1, Tier: "basic", StartTime: start.Add(time.Hour)})
	require.NoError(t, err)
	_, err = svc.Book(ctx, BookCommand{ListingID: "l1", TravelerID: "u2", Bags: 1, Hours: 1, Tier: "basic"})
	require.NoError(t, err)

	list, err := svc.ListByTraveler(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, late.ID, list[0].ID)
	assert.Equal(t, early.ID, list[1].ID)

	_, err = svc.ListByTraveler(ctx, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}
