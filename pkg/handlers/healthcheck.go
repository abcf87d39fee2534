package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	texttosql "github.com/robineckebracht/TextToSqlDemo/pkg"
	"github.com/robineckebracht/TextToSqlDemo/pkg/models"
)

// Health answers liveness probes without touching any dependency.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
	})
}

// Healthcheck reports readiness, failing while the inference server is
// unreachable.
func Healthcheck(cfg *texttosql.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker(
			"ollama", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Generator.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Unable to connect to the inference server: %s", err)
						return errors.New("Unable to connect to the inference server")
					}
					return nil
				},
			),
		),
	)
}
