package artapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GenerateImage fetches generated image bytes for the given prompt. maxBytes
// caps how much of the response is read so an oversized image cannot exhaust
// memory; exceeding it is an error.
func (c *Client) GenerateImage(ctx context.Context, prompt string, maxBytes int64) ([]byte, error) {
	endpoint := c.generatorURL + "/" + url.PathEscape(prompt)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		countFailure("generator")
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countFailure("generator")
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		countFailure("generator")
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		countFailure("generator")
		return nil, fmt.Errorf("failed to read generated image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		countFailure("generator")
		return nil, fmt.Errorf("generated image exceeds %d bytes", maxBytes)
	}
	if len(data) == 0 {
		countFailure("generator")
		return nil, fmt.Errorf("generator returned an empty image")
	}
	return data, nil
}
