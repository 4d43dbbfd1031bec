package artapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CatalogArtwork is one mapped entry from the public art catalog.
type CatalogArtwork struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Date     string `json:"date"`
	ImageURL string `json:"image_url"`
}

type catalogResponse struct {
	Data []struct {
		Title       string `json:"title"`
		ImageID     string `json:"image_id"`
		ArtistTitle string `json:"artist_title"`
		DateDisplay string `json:"date_display"`
	} `json:"data"`
}

// FetchCatalogPage fetches one page of the public art catalog and maps each
// item to a CatalogArtwork. Items without an image identifier are skipped;
// missing artist and date fall back to placeholder labels.
func (c *Client) FetchCatalogPage(ctx context.Context, page, limit int) ([]CatalogArtwork, error) {
	endpoint := fmt.Sprintf("%s?page=%d&limit=%d&fields=id,title,image_id,artist_title,date_display",
		c.catalogURL, page, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		countFailure("catalog")
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countFailure("catalog")
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		countFailure("catalog")
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var parsed catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		countFailure("catalog")
		return nil, fmt.Errorf("catalog returned invalid JSON: %w", err)
	}

	artworks := make([]CatalogArtwork, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		if item.ImageID == "" {
			continue
		}
		artist := item.ArtistTitle
		if artist == "" {
			artist = "Unknown Artist"
		}
		date := item.DateDisplay
		if date == "" {
			date = "Unknown Date"
		}
		artworks = append(artworks, CatalogArtwork{
			Title:    item.Title,
			Artist:   artist,
			Date:     date,
			ImageURL: fmt.Sprintf(c.iiifFormat, item.ImageID),
		})
	}
	return artworks, nil
}
