package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"xfollow/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage xfollow configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as '.xfollow.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources.

The API key is masked for security.`,
	Run: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

const exampleConfig = `# xfollow configuration file

# Tracked accounts: display username -> stable external ID.
# Look up IDs with e.g. https://tweethunter.io/twitter-id-converter
accounts:
  elonmusk: "44196397"
  Tesla: "13298072"
  nvidia: "61559439"

api:
  host: twitter135.p.rapidapi.com
  base_url: https://twitter135.p.rapidapi.com
  # Prefer 'xfollow auth set' or XFOLLOW_API_KEY over putting the key here.
  # key: ""

storage:
  path: output/followers_counts.csv

chart:
  output: output/followers_chart.html
  title: Follower Counts Over Time
  open: true

logging:
  level: info
  # file: xfollow.log
`

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = ".xfollow.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(os.Stderr, "Configuration file already exists: %s\n", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write configuration file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration file created: %s\n", configPath)
	fmt.Println("\nEdit the accounts mapping, then run 'xfollow track'.")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Mask the key before printing
	if cfg.API.Key != "" {
		cfg.API.Key = maskKey(cfg.API.Key)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(string(data))
}
