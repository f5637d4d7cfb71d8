package datasource

import (
	"net/http"
	"strings"
)

// providerOptions holds the settings shared by every HTTP provider
type providerOptions struct {
	baseURL    string
	units      string
	httpClient *http.Client
}

// Option mutates a provider during construction
type Option func(*providerOptions)

// WithBaseURL points the provider at another host, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(o *providerOptions) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithUnits selects "standard", "metric" or "imperial" temperatures
func WithUnits(units string) Option {
	return func(o *providerOptions) {
		if units != "" {
			o.units = units
		}
	}
}

// WithHTTPClient replaces the transport used for every request
func WithHTTPClient(c *http.Client) Option {
	return func(o *providerOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func newProviderOptions(baseURL string, opts []Option) providerOptions {
	o := providerOptions{
		baseURL:    baseURL,
		units:      "imperial",
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
