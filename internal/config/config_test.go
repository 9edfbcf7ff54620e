package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("import.source", "extract.osm.pbf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "routepg", cfg.Network.Name)
	assert.Equal(t, "routepg-db", cfg.Database.Container)
	assert.Equal(t, "routing", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "./data", cfg.Import.Workdir)
	assert.False(t, cfg.Import.Skip)
	assert.False(t, cfg.Roads.Skip)
	assert.Equal(t, 30, cfg.Readiness.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Readiness.Interval)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("network.name", "osm-net")
	viper.Set("database.container", "osm-db")
	viper.Set("database.port", 15432)
	viper.Set("import.source", "/extracts/alps.osm.pbf")
	viper.Set("import.bbox", []float64{5.9, 45.8, 10.5, 47.8})
	viper.Set("roads.skip", true)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "osm-net", cfg.Network.Name)
	assert.Equal(t, "osm-db", cfg.Database.Container)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, []float64{5.9, 45.8, 10.5, 47.8}, cfg.Import.BBox)
	assert.True(t, cfg.Roads.Skip)
}

func TestLoad_MissingSourceFailsUnlessSkipped(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import.source")

	viper.Set("import.skip", true)
	_, err = Load()
	require.NoError(t, err)
}

func TestValidate_BBox(t *testing.T) {
	base := func() *Config {
		return &Config{
			Network:   NetworkConfig{Name: "n"},
			Database:  DatabaseConfig{Container: "c", Name: "d", User: "u", Password: "p", Port: 5432, Image: "img"},
			Import:    ImportConfig{Image: "imp", Workdir: "/w", Source: "s"},
			Readiness: ReadinessConfig{Attempts: 1, Interval: time.Second},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Import.BBox = []float64{1, 2, 3}
	assert.ErrorContains(t, cfg.Validate(), "exactly 4 values")

	cfg = base()
	cfg.Import.BBox = []float64{10.5, 45.8, 5.9, 47.8}
	assert.ErrorContains(t, cfg.Validate(), "minlon must be less than maxlon")

	cfg = base()
	cfg.Import.BBox = []float64{5.9, 47.8, 10.5, 45.8}
	assert.ErrorContains(t, cfg.Validate(), "minlat must be less than maxlat")

	cfg = base()
	cfg.Import.BBox = []float64{-190, 45.8, 10.5, 47.8}
	assert.ErrorContains(t, cfg.Validate(), "out of geographic range")

	cfg = base()
	cfg.Import.BBox = []float64{5.9, 45.8, 10.5, 47.8}
	require.NoError(t, cfg.Validate())
}

func TestValidate_WorkdirRequiredForRoads(t *testing.T) {
	cfg := &Config{
		Network:   NetworkConfig{Name: "n"},
		Database:  DatabaseConfig{Container: "c", Name: "d", User: "u", Password: "p", Port: 5432, Image: "img"},
		Import:    ImportConfig{Skip: true},
		Roads:     RoadsConfig{Skip: false},
		Readiness: ReadinessConfig{Attempts: 1, Interval: time.Second},
	}
	assert.ErrorContains(t, cfg.Validate(), "import.workdir")

	cfg.Roads.Skip = true
	require.NoError(t, cfg.Validate())
}

func TestValidate_Readiness(t *testing.T) {
	cfg := &Config{
		Network:   NetworkConfig{Name: "n"},
		Database:  DatabaseConfig{Container: "c", Name: "d", User: "u", Password: "p", Port: 5432, Image: "img"},
		Import:    ImportConfig{Skip: true},
		Roads:     RoadsConfig{Skip: true},
		Readiness: ReadinessConfig{Attempts: 0, Interval: time.Second},
	}
	assert.ErrorContains(t, cfg.Validate(), "readiness.attempts")

	cfg.Readiness.Attempts = 5
	cfg.Readiness.Interval = 0
	assert.ErrorContains(t, cfg.Validate(), "readiness.interval")
}
