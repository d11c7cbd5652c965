package enrichment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/enrichment"
)

const owBody = `{
	"name": "Lisbon",
	"weather": [{"main": "Clear", "description": "clear sky"}],
	"main": {"temp": 24.5, "feels_like": 25.1, "humidity": 40},
	"wind": {"speed": 3.6},
	"sys": {"country": "PT"}
}`

const cscBody = `{
	"name": "Portugal", "iso2": "PT", "iso3": "PRT", "capital": "Lisbon",
	"currency": "EUR", "native": "Portugal", "region": "Europe",
	"subregion": "Southern Europe", "emoji": "🇵🇹", "phonecode": "351"
}`

func TestOpenWeather_Current(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(owBody))
	}))
	defer srv.Close()

	c := enrichment.NewOpenWeather(enrichment.Options{BaseURL: srv.URL, APIKey: "k"})
	weather, err := c.Current(context.Background(), "Lisbon, PT")

	require.NoError(t, err)
	assert.Equal(t, "/weather", got.URL.Path)
	assert.Equal(t, "Lisbon, PT", got.URL.Query().Get("q"))
	assert.Equal(t, "metric", got.URL.Query().Get("units"))
	assert.Equal(t, "k", got.URL.Query().Get("appid"))
	assert.Equal(t, domain.Weather{
		City:        "Lisbon",
		CountryCode: "PT",
		Summary:     "Clear",
		Description: "clear sky",
		TempC:       24.5,
		FeelsLikeC:  25.1,
		Humidity:    40,
		WindSpeed:   3.6,
	}, weather)
}

func TestOpenWeather_Current_MissingKey(t *testing.T) {
	c := enrichment.NewOpenWeather(enrichment.Options{BaseURL: "http://127.0.0.1:1"})

	_, err := c.Current(context.Background(), "Lisbon")

	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestOpenWeather_Current_UpstreamErrors(t *testing.T) {
	cases := map[string]struct {
		status   int
		body     string
		notFound bool
	}{
		"server error": {status: http.StatusInternalServerError, body: `{}`},
		"unknown city": {status: http.StatusNotFound, body: `{"cod":"404"}`, notFound: true},
		"bad json":     {status: http.StatusOK, body: `{`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := enrichment.NewOpenWeather(enrichment.Options{BaseURL: srv.URL, APIKey: "k"})
			_, err := c.Current(context.Background(), "Atlantis")

			require.ErrorIs(t, err, domain.ErrDependency)
			if tc.notFound {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			}
		})
	}
}

func TestOpenWeather_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := enrichment.NewOpenWeather(enrichment.Options{BaseURL: srv.URL, APIKey: "k"})
	for range 8 {
		_, err := c.Current(context.Background(), "Lisbon")
		require.ErrorIs(t, err, domain.ErrDependency)
	}

	assert.Equal(t, 5, calls)
}

func TestCountryStateCity_Country(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(cscBody))
	}))
	defer srv.Close()

	c := enrichment.NewCountryStateCity(enrichment.Options{BaseURL: srv.URL + "/", APIKey: "secret"})
	country, err := c.Country(context.Background(), "pt")

	require.NoError(t, err)
	assert.Equal(t, "/countries/PT", got.URL.Path)
	assert.Equal(t, "secret", got.Header.Get("X-CSCAPI-KEY"))
	assert.Equal(t, "Portugal", country.Name)
	assert.Equal(t, "PRT", country.ISO3)
	assert.Equal(t, "351", country.PhoneCode)
}

func TestCountryStateCity_Country_BadInput(t *testing.T) {
	c := enrichment.NewCountryStateCity(enrichment.Options{APIKey: "secret"})

	_, err := c.Country(context.Background(), "PRT")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCountryStateCity_Country_MissingKey(t *testing.T) {
	c := enrichment.NewCountryStateCity(enrichment.Options{})

	_, err := c.Country(context.Background(), "PT")

	assert.ErrorIs(t, err, domain.ErrDependency)
}
