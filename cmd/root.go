package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/joho/godotenv/autoload"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "routepg",
	Short: "routepg - PostGIS routing database provisioner",
	Long: `routepg brings up a PostGIS/pgRouting database in a container,
imports an OpenStreetMap extract and derives a routable roads table.
Re-running it against the same configuration is safe: every step only
applies the minimal action needed to reach the desired state.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./routepg.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("routepg")
		viper.SetConfigType("toml")

		// Current directory (highest priority)
		viper.AddConfigPath(".")

		if userConfigDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(userConfigDir + "/routepg")
		}

		viper.AddConfigPath("/etc/routepg")
	}

	viper.SetEnvPrefix("routepg")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Fatal().Err(err).Str("file", cfgFile).Msg("Error reading config file")
	}
	// No config file found without --config is fine: every option has a
	// default and can come from flags or the environment.
}
