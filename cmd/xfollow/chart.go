package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xfollow/pkg/chart"
	"xfollow/pkg/logger"
	"xfollow/pkg/snapshot"
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the chart from the existing history without fetching",
	Long: `Render the follower time-series chart from the persisted history.

No API call is made; this only re-reads the snapshot CSV and regenerates the
HTML chart, one line per username with dates on the x-axis.`,
	Example: `  # Regenerate and open the chart
  xfollow chart

  # Write to a custom path without opening a browser
  xfollow chart --chart-output /tmp/followers.html --no-open`,
	Args: cobra.NoArgs,
	Run:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&storagePath, "storage", "s", "", "snapshot CSV file path")
	chartCmd.Flags().StringVarP(&chartOutput, "chart-output", "o", "", "chart HTML output path")
	chartCmd.Flags().BoolVar(&noOpen, "no-open", false, "do not open the chart in a browser")
}

func runChart(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()
	log := logger.GetLogger()

	store := snapshot.NewStore(cfg.Storage.Path, log)
	set, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load history: %v\n", err)
		os.Exit(1)
	}
	if set.Len() == 0 {
		fmt.Fprintln(os.Stderr, "No snapshot history to chart. Run 'xfollow track' first.")
		os.Exit(1)
	}

	renderer := chart.NewRenderer(&cfg.Chart, log)
	path, err := renderer.Render(set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render chart: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chart written to %s\n", path)
}
