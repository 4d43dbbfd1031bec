// Package artapi implements clients for the external art services: price
// prediction, authenticity classification, text-to-image generation, and the
// public art catalog.
package artapi

import (
	"net/http"
	"time"

	"artfolio/internal/config"
	"artfolio/internal/middleware"
)

// Client talks to all four external services over a shared HTTP client with
// an explicit timeout.
type Client struct {
	httpClient   *http.Client
	priceURL     string
	authURL      string
	generatorURL string
	catalogURL   string
	iiifFormat   string
}

// New builds a Client from configuration.
func New(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.HTTPTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		priceURL:     cfg.PriceAPIURL,
		authURL:      cfg.AuthAPIURL,
		generatorURL: cfg.GeneratorAPIURL,
		catalogURL:   cfg.CatalogAPIURL,
		iiifFormat:   cfg.CatalogIIIFFormat,
	}
}

// countFailure records an outbound failure for the given service label.
func countFailure(service string) {
	middleware.ExternalAPIFailures.WithLabelValues(service).Inc()
}
