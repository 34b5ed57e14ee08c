package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/libreria-aurora/aurora-cli/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	apiURL     string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aurora",
	Short: "Terminal client for the Libreria Aurora bookstore",
	Long: `Terminal client for the Libreria Aurora online bookstore.

Talk to the catalog assistant, check the agent's operational status and
manage orders, returns and users against the Aurora backend API.

Quick Start:
  aurora chat                       # Open the catalog assistant
  aurora status                     # Agent operational status
  aurora auth set-token <token>     # Store your session token
  aurora admin pedidos list         # Orders console

Configuration lives in ~/.aurora/config.yaml (api_url, media_base_url,
timeout); AURORA_API_URL and friends override it.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
		// Optional .env next to the working directory.
		if err := godotenv.Load(); err == nil {
			internal.LogDebug("Loaded .env")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file location")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API base URL (overrides config)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

func loadConfig() (*internal.Config, error) {
	path := configPath
	if path == "" {
		dir, err := internal.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg, nil
}

func openSettings() (*internal.SettingsStore, error) {
	dir, err := internal.DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	store, err := internal.OpenSettings(filepath.Join(dir, "settings.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	return store, nil
}

// newClient wires config + settings into a backend client. The caller
// owns closing the returned settings store.
func newClient() (*internal.Client, *internal.SettingsStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	settings, err := openSettings()
	if err != nil {
		return nil, nil, err
	}
	return internal.NewClient(cfg, settings), settings, nil
}
