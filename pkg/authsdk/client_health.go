package authsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks whether the auth service process is up.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/livez")
}

// GetReadiness checks whether the auth service can reach its dependencies.
// A degraded service answers 503, which surfaces here as an *APIError.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *SDKClient) probe(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
