// README: Builds optional integrations (Kafka, Gemini, Maps) from config with local fallbacks.
package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"sharestuff/internal/ai"
	"sharestuff/internal/config"
	"sharestuff/internal/events"
	"sharestuff/internal/maps"
	"sharestuff/internal/modules/listing"
	"sharestuff/internal/obs"
)

// NewPublisher returns a Kafka publisher when brokers are configured and a
// log publisher otherwise.
func NewPublisher(cfg config.Config, log zerolog.Logger) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("no kafka brokers configured; events go to the log")
		return events.NewLogPublisher(log)
	}
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka publisher enabled")
	return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

// NewAdvisor builds the advisory text chain: Gemini, optionally cached in
// Redis. The returned closer releases the Gemini client.
func NewAdvisor(ctx context.Context, cfg config.Config, rdb *redis.Client, metrics *obs.DomainMetrics, log zerolog.Logger) (ai.Advisor, func() error, error) {
	noop := func() error { return nil }
	if cfg.AI.GeminiKey == "" {
		log.Info().Msg("GEMINI_API_KEY not set; advisor uses fallback copy")
		return ai.FallbackAdvisor{}, noop, nil
	}
	gen, err := ai.NewGeminiGenerator(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		return nil, noop, fmt.Errorf("gemini init: %w", err)
	}
	var advisor ai.Advisor = ai.NewTextAdvisor(gen, metrics, log)
	if rdb != nil {
		advisor = ai.NewCachedAdvisor(advisor, rdb, cfg.AI.SummaryTTL, log)
	}
	return advisor, gen.Close, nil
}

// NewGeocoder returns nil (address search disabled) without a Maps key.
func NewGeocoder(cfg config.Config, log zerolog.Logger) (listing.Geocoder, error) {
	if cfg.Maps.APIKey == "" {
		log.Info().Msg("GOOGLE_MAPS_API_KEY not set; address search disabled")
		return nil, nil
	}
	g, err := maps.NewGeocoder(cfg.Maps.APIKey)
	if err != nil {
		return nil, err
	}
	return g, nil
}
