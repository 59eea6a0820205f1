package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dfquintero/sportstore-gateway/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthPostgres "github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// NewHealthHandler wires liveness checks for everything the gateway depends
// on. The Postgres check is only registered when the cart store uses it.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.Redis.GetDSN(),
			}),
		},
		{
			Name:      "upstream",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check:     upstreamCheck(cfg.Upstream.BaseURL),
		},
	}

	if cfg.Cart.Store == "postgres" {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: healthPostgres.New(healthPostgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "sportstore-gateway",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// upstreamCheck probes the legacy backend with a cheap request; any HTTP
// response at all counts as reachable.
func upstreamCheck(baseURL string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return fmt.Errorf("building upstream health request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("upstream unreachable: %w", err)
		}

		resp.Body.Close()

		return nil
	}
}
