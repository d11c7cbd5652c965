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

// DefaultCountryURL is the CountryStateCity v1 API root.
const DefaultCountryURL = "https://api.countrystatecity.in/v1"

// CountryStateCity looks up country facts on countrystatecity.in.
type CountryStateCity struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewCountryStateCity constructs a CountryStateCity client.
func NewCountryStateCity(opts Options) *CountryStateCity {
	base := opts.BaseURL
	if base == "" {
		base = DefaultCountryURL
	}
	return &CountryStateCity{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  opts.APIKey,
		client:  opts.httpClient(),
		breaker: newBreaker("countrystatecity", opts.logger()),
	}
}

type cscCountry struct {
	Name      string `json:"name"`
	ISO2      string `json:"iso2"`
	ISO3      string `json:"iso3"`
	Capital   string `json:"capital"`
	Currency  string `json:"currency"`
	Native    string `json:"native"`
	Region    string `json:"region"`
	Subregion string `json:"subregion"`
	Emoji     string `json:"emoji"`
	PhoneCode string `json:"phonecode"`
}

// Country returns the country with the given ISO 3166-1 alpha-2 code.
func (c *CountryStateCity) Country(ctx context.Context, iso2 string) (domain.Country, error) {
	if c.apiKey == "" {
		return domain.Country{}, fmt.Errorf("enrichment.CountryStateCity.Country: %w: api key not configured", domain.ErrDependency)
	}
	iso2 = strings.ToUpper(strings.TrimSpace(iso2))
	if len(iso2) != 2 {
		return domain.Country{}, fmt.Errorf("enrichment.CountryStateCity.Country: %w: bad country code %q", domain.ErrValidation, iso2)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/countries/"+url.PathEscape(iso2), nil)
	if err != nil {
		return domain.Country{}, fmt.Errorf("enrichment.CountryStateCity.Country: %w", err)
	}
	req.Header.Set("X-CSCAPI-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	var body cscCountry
	if err := getJSON(c.breaker, c.client, req, &body); err != nil {
		return domain.Country{}, fmt.Errorf("enrichment.CountryStateCity.Country: %w", err)
	}
	return domain.Country(body), nil
}
