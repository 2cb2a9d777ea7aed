// README: Advisory copy for listings and shipments; answers are best-effort and never fail a request.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sharestuff/internal/obs"
)

// Advisor produces short customer-facing text. It never returns an error;
// when the model is unavailable or silent it answers with fixed copy.
type Advisor interface {
	StorageSummary(ctx context.Context, title string, amenities []string) string
	ItemSafetyAdvice(ctx context.Context, description string) string
}

// Generator is a single-prompt text completion backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	KindStorageSummary = "storage_summary"
	KindItemSafety     = "item_safety"

	storageSummaryEmpty = "A secure and verified logistics node in our global network."
	storageSummaryError = "Expertly vetted storage node with high-level protocol security."
	itemSafetyEmpty     = "1. Visual match. 2. Safety seals. 3. Compliance verification."
	itemSafetyError     = "Ensure the asset matches its digital manifestation and satisfies safety protocols."

	defaultTimeout = 8 * time.Second
)

// IsFallback reports whether text is one of the fixed fallback answers.
func IsFallback(text string) bool {
	switch text {
	case storageSummaryEmpty, storageSummaryError, itemSafetyEmpty, itemSafetyError:
		return true
	}
	return false
}

func storageSummaryPrompt(title string, amenities []string) string {
	return fmt.Sprintf(
		"Act as an elite logistics concierge for Sharestuff. Summarize why this storage location named %q is a premium choice for global travelers. Features: %s. Max 2 sentences. Use professional, reassuring language.",
		title, strings.Join(amenities, ", "),
	)
}

func itemSafetyPrompt(description string) string {
	return fmt.Sprintf(
		"Act as a global compliance officer. A user wants to ship this item: %q. What are 3 critical inspection points for the courier to verify before accepting custody to ensure compliance with international aviation safety? Brief bullet points.",
		description,
	)
}

// TextAdvisor asks a Generator and substitutes fallback copy on failure.
type TextAdvisor struct {
	gen     Generator
	metrics *obs.DomainMetrics
	log     zerolog.Logger
	timeout time.Duration
}

func NewTextAdvisor(gen Generator, metrics *obs.DomainMetrics, log zerolog.Logger) *TextAdvisor {
	return &TextAdvisor{gen: gen, metrics: metrics, log: log, timeout: defaultTimeout}
}

func (a *TextAdvisor) StorageSummary(ctx context.Context, title string, amenities []string) string {
	return a.ask(ctx, KindStorageSummary, storageSummaryPrompt(title, amenities), storageSummaryEmpty, storageSummaryError)
}

func (a *TextAdvisor) ItemSafetyAdvice(ctx context.Context, description string) string {
	return a.ask(ctx, KindItemSafety, itemSafetyPrompt(description), itemSafetyEmpty, itemSafetyError)
}

func (a *TextAdvisor) ask(ctx context.Context, kind, prompt, onEmpty, onError string) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Str("kind", kind).Msg("advisor generation failed")
		a.metrics.AdvisorFallback(kind)
		return onError
	}
	text = strings.TrimSpace(text)
	if text == "" {
		a.metrics.AdvisorFallback(kind)
		return onEmpty
	}
	return text
}

// FallbackAdvisor answers with the fixed copy. Used when no model is configured.
type FallbackAdvisor struct{}

func (FallbackAdvisor) StorageSummary(ctx context.Context, title string, amenities []string) string {
	return storageSummaryEmpty
}

func (FallbackAdvisor) ItemSafetyAdvice(ctx context.Context, description string) string {
	return itemSafetyEmpty
}
