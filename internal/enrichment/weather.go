package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DefaultWeatherURL is the OpenWeatherMap 2.5 API root.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5"

// OpenWeather fetches current conditions from OpenWeatherMap.
type OpenWeather struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewOpenWeather constructs an OpenWeatherMap client.
func NewOpenWeather(opts Options) *OpenWeather {
	base := opts.BaseURL
	if base == "" {
		base = DefaultWeatherURL
	}
	return &OpenWeather{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  opts.APIKey,
		client:  opts.httpClient(),
		breaker: newBreaker("openweathermap", opts.logger()),
	}
}

type owResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Current returns the metric weather for a free-text place name.
// Without an API key it fails with domain.ErrDependency and makes no request.
func (c *OpenWeather) Current(ctx context.Context, place string) (domain.Weather, error) {
	if c.apiKey == "" {
		return domain.Weather{}, fmt.Errorf("enrichment.OpenWeather.Current: %w: api key not configured", domain.ErrDependency)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("enrichment.OpenWeather.Current: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var body owResponse
	if err := getJSON(c.breaker, c.client, req, &body); err != nil {
		return domain.Weather{}, fmt.Errorf("enrichment.OpenWeather.Current: %w", err)
	}

	w := domain.Weather{
		City:        body.Name,
		CountryCode: body.Sys.Country,
		TempC:       body.Main.Temp,
		FeelsLikeC:  body.Main.FeelsLike,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		w.Summary = body.Weather[0].Main
		w.Description = body.Weather[0].Description
	}
	return w, nil
}
