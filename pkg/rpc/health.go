package rpc

import (
	"context"

	"github.com/denelabs/walletbridge/pkg/constants"
)

// IsHealthy performs a getHealth call against a single endpoint
func (c *Client) IsHealthy(ctx context.Context, endpoint string) bool {
	ctx, cancel := context.WithTimeout(ctx, constants.HealthCheckTimeout)
	defer cancel()

	var out struct {
		Status string `json:"status"`
	}
	if err := c.callEndpoint(ctx, endpoint, "getHealth", nil, &out); err != nil {
		return false
	}
	return out.Status == "healthy"
}

// HealthyEndpoints returns the endpoints that answer getHealth, keeping their order
func (c *Client) HealthyEndpoints(ctx context.Context) []string {
	healthy := make([]string, 0, len(c.endpoints))
	for _, endpoint := range c.endpoints {
		if c.IsHealthy(ctx, endpoint) {
			healthy = append(healthy, endpoint)
		} else {
			c.log.WithField("endpoint", endpoint).Warn("endpoint unhealthy")
		}
	}
	return healthy
}
