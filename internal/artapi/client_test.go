package artapi

import (
	"artfolio/internal/config"
)

// newTestClient builds a Client whose four endpoints all point at the given base URL.
func newTestClient(base string) *Client {
	return New(&config.Config{
		PriceAPIURL:       base,
		AuthAPIURL:        base,
		GeneratorAPIURL:   base,
		CatalogAPIURL:     base,
		CatalogIIIFFormat: "https://images.example.com/%s/full.jpg",
		HTTPTimeoutSecs:   5,
	})
}
