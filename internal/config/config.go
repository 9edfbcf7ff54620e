package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Network   NetworkConfig   `mapstructure:"network"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Import    ImportConfig    `mapstructure:"import"`
	Roads     RoadsConfig     `mapstructure:"roads"`
	Readiness ReadinessConfig `mapstructure:"readiness"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type NetworkConfig struct {
	Name string `mapstructure:"name"`
}

type DatabaseConfig struct {
	Container string `mapstructure:"container"`
	Name      string `mapstructure:"name"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Port      int    `mapstructure:"port"`
	Image     string `mapstructure:"image"`
}

type ImportConfig struct {
	Image   string    `mapstructure:"image"`
	Workdir string    `mapstructure:"workdir"`
	Source  string    `mapstructure:"source"`
	BBox    []float64 `mapstructure:"bbox"`
	Skip    bool      `mapstructure:"skip"`
}

type RoadsConfig struct {
	Skip bool `mapstructure:"skip"`
}

type ReadinessConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Interval time.Duration `mapstructure:"interval"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	var cfg Config

	// Set defaults
	viper.SetDefault("network.name", "routepg")
	viper.SetDefault("database.container", "routepg-db")
	viper.SetDefault("database.name", "routing")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.image", "pgrouting/pgrouting:17-3.5-3.8")
	viper.SetDefault("import.image", "iboates/osm2pgsql:latest")
	viper.SetDefault("import.workdir", "./data")
	viper.SetDefault("import.source", "")
	viper.SetDefault("import.skip", false)
	viper.SetDefault("roads.skip", false)
	viper.SetDefault("readiness.attempts", 30)
	viper.SetDefault("readiness.interval", 2*time.Second)
	viper.SetDefault("logging.level", "info")

	if err := viper.UnmarshalKey("network", &cfg.Network); err != nil {
		return nil, fmt.Errorf("unable to decode network config: %w", err)
	}
	if err := viper.UnmarshalKey("database", &cfg.Database); err != nil {
		return nil, fmt.Errorf("unable to decode database config: %w", err)
	}
	if err := viper.UnmarshalKey("import", &cfg.Import); err != nil {
		return nil, fmt.Errorf("unable to decode import config: %w", err)
	}
	if err := viper.UnmarshalKey("roads", &cfg.Roads); err != nil {
		return nil, fmt.Errorf("unable to decode roads config: %w", err)
	}
	if err := viper.UnmarshalKey("readiness", &cfg.Readiness); err != nil {
		return nil, fmt.Errorf("unable to decode readiness config: %w", err)
	}
	if err := viper.UnmarshalKey("logging", &cfg.Logging); err != nil {
		return nil, fmt.Errorf("unable to decode logging config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Network.Name == "" {
		return fmt.Errorf("network.name is required")
	}
	if c.Database.Container == "" {
		return fmt.Errorf("database.container is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("database.password is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535, got %d", c.Database.Port)
	}
	if c.Database.Image == "" {
		return fmt.Errorf("database.image is required")
	}

	if !c.Import.Skip {
		if c.Import.Image == "" {
			return fmt.Errorf("import.image is required unless import.skip is set")
		}
		if c.Import.Source == "" {
			return fmt.Errorf("import.source is required unless import.skip is set")
		}
	}

	// The workdir doubles as the staging area for the roads script, so it
	// is needed whenever either step runs.
	if (!c.Import.Skip || !c.Roads.Skip) && c.Import.Workdir == "" {
		return fmt.Errorf("import.workdir is required unless both import and roads are skipped")
	}

	if err := validateBBox(c.Import.BBox); err != nil {
		return err
	}

	if c.Readiness.Attempts <= 0 {
		return fmt.Errorf("readiness.attempts must be positive, got %d", c.Readiness.Attempts)
	}
	if c.Readiness.Interval <= 0 {
		return fmt.Errorf("readiness.interval must be positive, got %s", c.Readiness.Interval)
	}

	return nil
}

// validateBBox accepts either no bounding box at all or exactly four
// ordered decimal degrees: minlon, minlat, maxlon, maxlat.
func validateBBox(bbox []float64) error {
	if len(bbox) == 0 {
		return nil
	}
	if len(bbox) != 4 {
		return fmt.Errorf("import.bbox must have exactly 4 values (minlon, minlat, maxlon, maxlat), got %d", len(bbox))
	}

	minLon, minLat, maxLon, maxLat := bbox[0], bbox[1], bbox[2], bbox[3]
	if minLon < -180 || maxLon > 180 || minLat < -90 || maxLat > 90 {
		return fmt.Errorf("import.bbox values out of geographic range")
	}
	if minLon >= maxLon {
		return fmt.Errorf("import.bbox minlon must be less than maxlon")
	}
	if minLat >= maxLat {
		return fmt.Errorf("import.bbox minlat must be less than maxlat")
	}

	return nil
}
