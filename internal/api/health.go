package api

import (
	"context"
	"net/http"
)

// Health probes the backend's /health endpoint. It reports reachability
// only; callers use it to flag offline state, never to gate mutations.
func (a *API) Health(ctx context.Context) bool {
	if err := a.c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		a.c.logger.Debug("health probe failed", "error", err)
		return false
	}
	return true
}
