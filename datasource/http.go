package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// getJSON performs a GET against endpoint and decodes a 200 response into v.
// Any failure is returned as a *FetchError.
func getJSON(ctx context.Context, client *http.Client, provider, endpoint string, params url.Values, v interface{}) error {
	fail := func(status int, err error) error {
		return &FetchError{Provider: provider, Endpoint: endpoint, StatusCode: status, Err: err}
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}

	// Execute request
	resp, err := client.Do(req)
	if err != nil {
		return fail(0, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	// Check for error status code
	if resp.StatusCode != http.StatusOK {
		return fail(resp.StatusCode, fmt.Errorf("API error: %s", truncateBody(body)))
	}

	// Parse response
	if err := json.Unmarshal(body, v); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to parse response: %w", err))
	}

	return nil
}
