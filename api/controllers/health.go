package controllers

import (
	"context"
	"net/http"

	"github.com/skbags/storefront/api/responses"
	"github.com/skbags/storefront/pkg/config"
)

type connectivityProbe interface {
	Online(ctx context.Context) bool
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. An unreachable store API degrades the answer
// but stays 200: browsing keeps working off the cached catalog.
func HealthReady(cfg *config.Config, probe connectivityProbe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		status := "ready"
		storeAPI := "reachable"
		if probe == nil || !probe.Online(r.Context()) {
			status = "degraded"
			storeAPI = "unreachable"
		}
		responses.WriteSuccess(w, map[string]string{
			"status":    status,
			"store_api": storeAPI,
		})
	}
}
