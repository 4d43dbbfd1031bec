package artapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// enrichmentRequest is the shared payload for the price and authenticity services.
type enrichmentRequest struct {
	File string `json:"file"`
}

type priceResponse struct {
	PredictedPrice *float64 `json:"predicted_price"`
}

type authenticityResponse struct {
	Status string `json:"status"`
}

// PredictPrice posts the base64-encoded image to the price service and
// returns the predicted price. Any transport error, non-200 status, or
// missing predicted_price field is returned as an error; callers treat all
// of these as "no prediction available".
func (c *Client) PredictPrice(ctx context.Context, imageB64 string) (float64, error) {
	var out priceResponse
	if err := c.postEnrichment(ctx, "price", c.priceURL, imageB64, &out); err != nil {
		return 0, err
	}
	if out.PredictedPrice == nil {
		countFailure("price")
		return 0, fmt.Errorf("price service response missing predicted_price")
	}
	return *out.PredictedPrice, nil
}

// VerifyAuthenticity posts the base64-encoded image to the authenticity
// service. The result is true iff the service answered 200 with a status
// that case-insensitively equals "authentic".
func (c *Client) VerifyAuthenticity(ctx context.Context, imageB64 string) (bool, error) {
	var out authenticityResponse
	if err := c.postEnrichment(ctx, "authenticity", c.authURL, imageB64, &out); err != nil {
		return false, err
	}
	return strings.EqualFold(out.Status, "authentic"), nil
}

func (c *Client) postEnrichment(ctx context.Context, service, url, imageB64 string, out interface{}) error {
	body, err := json.Marshal(enrichmentRequest{File: imageB64})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		countFailure(service)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countFailure(service)
		return fmt.Errorf("%s service request failed: %w", service, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		countFailure(service)
		return fmt.Errorf("%s service returned status %d", service, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		countFailure(service)
		return fmt.Errorf("%s service returned invalid JSON: %w", service, err)
	}
	return nil
}
