package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/routepg/routepg/internal/config"
	"github.com/routepg/routepg/internal/docker"
	"github.com/routepg/routepg/internal/provision"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the routing database",
	Long: `Ensure the network and database container exist and are running,
enable the required extensions, import the OSM extract and build the
routable roads table.`,
	Run: runUp,
}

func init() {
	upCmd.Flags().Bool("skip-import", false, "skip the OSM data import step")
	upCmd.Flags().Bool("skip-roads", false, "skip the roads table build step")
	cobra.CheckErr(viper.BindPFlag("import.skip", upCmd.Flags().Lookup("skip-import")))
	cobra.CheckErr(viper.BindPFlag("roads.skip", upCmd.Flags().Lookup("skip-roads")))

	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("invalid_level", cfg.Logging.Level).Msg("Invalid log level, using info")
	}

	log.Info().Str("network", cfg.Network.Name).Msg("Target network")
	log.Info().Str("container", cfg.Database.Container).Str("image", cfg.Database.Image).Msg("Target container")
	log.Info().Str("database", cfg.Database.Name).Int("port", cfg.Database.Port).Msg("Target database")

	rt, err := docker.NewRuntime()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container runtime")
	}

	if err := provision.New(cfg, rt).Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Provisioning failed")
	}

	log.Info().Msg("Provisioning complete")
}
