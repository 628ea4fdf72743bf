package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/config"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	tokenFlag    string
	logLevelFlag string

	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-admin",
	Short: "Content admin for the portfolio backend",
	Long: `portfolio-admin manages the portfolio catalogue (clients, projects, users,
technologies, websites, videos and creatives) against the backend API.

It can run as an HTTP server for the dashboard (serve) or be used directly
from the terminal to list collections and sync them from the systems of
record.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == cobra.ShellCompNoDescRequestCmd {
			return nil
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if logLevelFlag != "" {
			loaded.Logging.Level = logLevelFlag
		}
		settings = loaded
		setupLogger(settings.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "access token forwarded to the backend (default $ADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// setupLogger points the global logger at a console writer on stderr.
func setupLogger(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// accessToken is the --token flag, falling back to $ADMIN_TOKEN.
func accessToken() (string, error) {
	token := strings.TrimSpace(tokenFlag)
	if token == "" {
		token = strings.TrimSpace(os.Getenv("ADMIN_TOKEN"))
	}
	if token == "" {
		return "", errs.NewMissingTokenError()
	}
	return token, nil
}

// newGateway builds the backend gateway from the loaded settings.
func newGateway() (*services.Gateway, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return services.NewGateway(settings.Backend.BaseURL, services.WithTimeout(settings.Backend.Timeout)), nil
}
