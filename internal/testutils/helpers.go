package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/routepg/routepg/internal/config"
)

// TestContext creates a test context with timeout
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestConfig returns a valid configuration for pipeline tests.
func TestConfig() *config.Config {
	return &config.Config{
		Network: config.NetworkConfig{Name: "routepg-test"},
		Database: config.DatabaseConfig{
			Container: "routepg-test-db",
			Name:      "routing",
			User:      "postgres",
			Password:  "secret",
			Port:      5432,
			Image:     "pgrouting/pgrouting:17-3.5-3.8",
		},
		Import: config.ImportConfig{
			Image:   "iboates/osm2pgsql:latest",
			Workdir: "/work",
			Source:  "extract.osm.pbf",
		},
		Readiness: config.ReadinessConfig{
			Attempts: 3,
			Interval: 10 * time.Millisecond,
		},
		Logging: config.LoggingConfig{Level: "info"},
	}
}
