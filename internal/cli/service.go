package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wifi_locator/core-go/internal/config"
	"wifi_locator/core-go/internal/discovery"
)

// buildService turns the --config and --log-level flags into a discovery
// service. Tests replace it to inject a fake runner.
var buildService = func(cmd *cobra.Command) (*discovery.Service, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// The config file's log level targets the server; the CLI stays quiet
	// unless asked.
	level, _ := cmd.Flags().GetString("log-level")
	return discovery.New(newLogger(level), cfg.DiscoveryOptions(), nil), nil
}

// newLogger writes human-readable logs to stderr so stdout stays parseable.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to a YAML config file")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
}
