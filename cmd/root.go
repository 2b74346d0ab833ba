package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reevehq/reeve-go/config"
	"github.com/reevehq/reeve-go/reeve"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *reeve.Client

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reeve",
	Short: "A CLI for the Reeve facial-recognition API",
	Long: `reeve is a CLI for the Reeve facial-recognition service. It manages
persons and their enrolled faces, runs recognition and verification
against the remote API, and handles authentication.`,
	SilenceUsage: true,
}

// SetVersion sets the version information
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the API client.
// Commands that talk to the API use it as their PreRunE.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	opts := []reeve.Option{
		reeve.WithLogger(logger),
		reeve.WithTimeout(time.Duration(cfg.Reeve.Timeout) * time.Second),
	}
	if cfg.Reeve.APIKey != "" {
		opts = append(opts, reeve.WithAPIKey(cfg.Reeve.APIKey))
	} else {
		opts = append(opts, reeve.WithCredentials(cfg.Reeve.Username, cfg.Reeve.Password))
	}

	client, err = reeve.NewClient(cfg.Reeve.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Reeve client: %w", err)
	}

	// Connect performs the startup login when only credentials are set.
	if err := client.Connect(cmd.Context()); err != nil {
		client.Close()
		return err
	}

	return nil
}

// teardownApp releases the API session.
func teardownApp(cmd *cobra.Command, args []string) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
