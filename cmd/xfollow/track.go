package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xfollow/pkg/auth"
	"xfollow/pkg/config"
	"xfollow/pkg/logger"
	"xfollow/pkg/snapshot"
	"xfollow/pkg/tracker"
)

var (
	// Track command flags
	storagePath string
	chartOutput string
	noOpen      bool
	noChart     bool
	trackDate   string
	apiKeyFlag  string
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Fetch current follower counts and update the history",
	Long: `Fetch follower counts for all configured accounts in one batched API
call, merge them into the historical log under today's date, and render the
chart.

Re-running on the same day overwrites that day's values instead of creating
duplicates. If the fetch fails, the history file is left untouched and no
chart is produced.`,
	Example: `  # Daily run with defaults
  xfollow track

  # Custom storage location, skip the browser window
  xfollow track --storage data/followers.csv --no-open

  # Record under an explicit date
  xfollow track --date 2024-01-01`,
	Args: cobra.NoArgs,
	Run:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().StringVarP(&storagePath, "storage", "s", "", "snapshot CSV file path")
	trackCmd.Flags().StringVarP(&chartOutput, "chart-output", "o", "", "chart HTML output path")
	trackCmd.Flags().BoolVar(&noOpen, "no-open", false, "do not open the chart in a browser")
	trackCmd.Flags().BoolVar(&noChart, "no-chart", false, "skip chart rendering")
	trackCmd.Flags().StringVar(&trackDate, "date", "", "calendar date to record under (default: today)")
	trackCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "RapidAPI key (overrides stored key)")
}

func runTrack(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()

	if noChart {
		cfg.Chart.Output = ""
	}

	if err := resolveAPIKey(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "No API key configured.")
		fmt.Fprintln(os.Stderr, "Store one with 'xfollow auth set' or export XFOLLOW_API_KEY.")
		os.Exit(1)
	}

	date := trackDate
	if date == "" {
		date = snapshot.Today()
	}

	t := tracker.New(cfg, logger.GetLogger())
	result, err := t.Run(date)
	if err != nil {
		logger.WithError(err).Error("Run failed")
		fmt.Fprintf(os.Stderr, "Failed to update follower counts: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Follower counts updated successfully for %s.\n", result.Date)
}

// loadConfigOrExit loads and validates configuration from all sources,
// initializing the global logger along the way.
func loadConfigOrExit() *config.Config {
	flags := make(map[string]interface{})
	if storagePath != "" {
		flags["storage"] = storagePath
	}
	if chartOutput != "" {
		flags["chart-output"] = chartOutput
	}
	if noOpen {
		flags["no-open"] = true
	}
	if apiKeyFlag != "" {
		flags["api-key"] = apiKeyFlag
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	return cfg
}

// resolveAPIKey fills cfg.API.Key from the key store chain when it was not
// already supplied via flag, environment or config file.
func resolveAPIKey(cfg *config.Config) error {
	if cfg.API.Key != "" {
		return nil
	}

	manager, err := auth.NewManager()
	if err != nil {
		return err
	}

	cred, err := manager.Retrieve()
	if err != nil {
		return err
	}

	cfg.API.Key = cred.Key
	return nil
}
