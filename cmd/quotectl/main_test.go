package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharestuff/internal/ai"
	"sharestuff/internal/modules/pricing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteTable(t *testing.T) {
	out, err := run(t, "quote", "--weight", "5", "--rate", "25", "--value", "800", "--urgency", "express", "--insurance", "pro")
	require.NoError(t, err)
	assert.Contains(t, out, "$177.25")
	assert.Contains(t, out, "$141.80")
	assert.Contains(t, out, "Traveler payout")
}

func TestQuoteJSON(t *testing.T) {
	out, err := run(t, "quote", "--weight", "10", "--rate", "35", "--value", "2000", "--urgency", "next-flight", "--insurance", "PREMIUM", "--json")
	require.NoError(t, err)

	var q pricing.ShipmentQuote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, pricing.ShipmentQuote{
		BaseFee: 350, ValueSurcharge: 30, UrgencyPremium: 175, InsurancePremium: 100,
		Total: 655, PlatformCommission: 131, TravelerPayout: 524,
	}, q)
}

func TestQuoteRejectsUnknownTiers(t *testing.T) {
	_, err := run(t, "quote", "--rate", "12", "--urgency", "overnight")
	assert.ErrorIs(t, err, pricing.ErrUnknownUrgency)

	_, err = run(t, "quote", "--rate", "12", "--insurance", "GOLD")
	assert.ErrorIs(t, err, pricing.ErrUnknownInsuranceTier)

	_, err = run(t, "quote")
	assert.Error(t, err, "rate is required")
}

func TestQuoteRejectsOverflow(t *testing.T) {
	_, err := run(t, "quote", "--weight", "1e200", "--rate", "1e200", "--json")
	assert.ErrorIs(t, err, pricing.ErrAmountOutOfRange)
}

func TestStorage(t *testing.T) {
	out, err := run(t, "storage", "--bags", "2", "--hours", "3", "--price", "3.5", "--tier", "elite")
	require.NoError(t, err)
	assert.Contains(t, out, "$40.52")

	out, err = run(t, "storage", "--bags", "2", "--hours", "3", "--price", "3.5", "--json")
	require.NoError(t, err)
	var q pricing.StorageQuote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, 28.52, q.Total)
}

type echoAdvisor struct{}

func (echoAdvisor) StorageSummary(ctx context.Context, title string, amenities []string) string {
	return title + " [" + strings.Join(amenities, "|") + "]"
}

func (echoAdvisor) ItemSafetyAdvice(ctx context.Context, description string) string {
	return "inspect " + description
}

func TestAdvise(t *testing.T) {
	orig := advisorFromEnv
	t.Cleanup(func() { advisorFromEnv = orig })
	advisorFromEnv = func(ctx context.Context) (ai.Advisor, func() error, error) {
		return echoAdvisor{}, func() error { return nil }, nil
	}

	out, err := run(t, "advise", "--item", "camera")
	require.NoError(t, err)
	assert.Equal(t, "inspect camera\n", out)

	out, err = run(t, "advise", "--listing", "Dubai Marina Nexus", "--amenities", "24/7, Biometric")
	require.NoError(t, err)
	assert.Equal(t, "Dubai Marina Nexus [24/7|Biometric]\n", out)

	_, err = run(t, "advise")
	assert.Error(t, err)
	_, err = run(t, "advise", "--item", "a", "--listing", "b")
	assert.Error(t, err)
}
