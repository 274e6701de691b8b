package authsdk

import (
	"context"
	"net/http"
)

// GetHealth checks if the service is alive.
func (c *SDKClient) GetHealth(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service and its database are ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*ReadyResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", "", nil)
	if err != nil {
		return nil, err
	}

	var ready ReadyResponse
	if err := decodeJSON(resp, &ready, http.StatusOK); err != nil {
		return nil, err
	}

	return &ready, nil
}
