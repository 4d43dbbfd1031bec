package service

import (
	"context"
	"math/rand"

	"artfolio/internal/artapi"
	"artfolio/internal/cache"
	"artfolio/internal/models"
)

const (
	inspirationMaxPage = 100
	inspirationPerPage = 5
)

// Catalog is the slice of the external API client the inspiration feed needs.
type Catalog interface {
	FetchCatalogPage(ctx context.Context, page, limit int) ([]artapi.CatalogArtwork, error)
}

// InspirationService serves the read-only pass-through feed from the public
// art catalog. Nothing is persisted locally; pages are cached in Redis.
type InspirationService struct {
	catalog Catalog
}

func NewInspirationService(catalog Catalog) *InspirationService {
	return &InspirationService{catalog: catalog}
}

// Fetch returns one random page of catalog artworks.
func (s *InspirationService) Fetch(ctx context.Context) ([]artapi.CatalogArtwork, error) {
	page := rand.Intn(inspirationMaxPage) + 1
	return s.FetchPage(ctx, page)
}

// FetchPage returns the mapped artworks for one catalog page, using a
// cache-aside lookup so repeat visits do not hammer the catalog API.
func (s *InspirationService) FetchPage(ctx context.Context, page int) ([]artapi.CatalogArtwork, error) {
	var artworks []artapi.CatalogArtwork
	err := cache.Aside(ctx, cache.InspirationKey(page), &artworks, cache.InspirationTTL, func() error {
		fetched, fetchErr := s.catalog.FetchCatalogPage(ctx, page, inspirationPerPage)
		if fetchErr != nil {
			return models.NewExternalServiceError("catalog", fetchErr)
		}
		artworks = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artworks, nil
}
