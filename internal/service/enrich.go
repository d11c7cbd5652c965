package service

import (
	"context"
	"log/slog"

	"github.com/pkordes/trip-planner/internal/domain"
)

// WeatherProvider reports current conditions for a place name.
type WeatherProvider interface {
	Current(ctx context.Context, place string) (domain.Weather, error)
}

// CountryProvider looks up a country by its ISO 3166-1 alpha-2 code.
type CountryProvider interface {
	Country(ctx context.Context, iso2 string) (domain.Country, error)
}

// Enricher decorates destinations with third-party data. Either provider may
// be nil. A failing provider is logged and its part omitted.
type Enricher struct {
	weather WeatherProvider
	country CountryProvider
	logger  *slog.Logger
}

// NewEnricher constructs an Enricher. A nil logger falls back to slog.Default.
func NewEnricher(weather WeatherProvider, country CountryProvider, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{weather: weather, country: country, logger: logger}
}

// Enrich never fails. The country lookup needs the country code reported by
// the weather provider, so it is skipped when weather is unavailable.
func (e *Enricher) Enrich(ctx context.Context, dest domain.Destination) domain.Enriched {
	out := domain.Enriched{Destination: dest}
	if e.weather == nil {
		return out
	}

	w, err := e.weather.Current(ctx, dest.Name)
	if err != nil {
		e.logger.WarnContext(ctx, "weather lookup failed",
			"destination_id", dest.ID, "place", dest.Name, "error", err)
		return out
	}
	out.Weather = &w

	if e.country == nil || w.CountryCode == "" {
		return out
	}
	c, err := e.country.Country(ctx, w.CountryCode)
	if err != nil {
		e.logger.WarnContext(ctx, "country lookup failed",
			"destination_id", dest.ID, "iso2", w.CountryCode, "error", err)
		return out
	}
	out.Country = &c
	return out
}
