package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xfollow/pkg/auth"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API key",
	Long: `Manage the RapidAPI key used for follower lookups.

The key is stored using the first available backend:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - XFOLLOW_API_KEY environment variable (read-only)

Never share your key or config files!`,
}

// authSetCmd represents the auth set command
var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key securely",
	Long: `Store the RapidAPI key in the system keychain or an encrypted file.

You will be prompted for the key; input is hidden as you type. Get a key for
the twitter135 API from rapidapi.com.`,
	Args: cobra.NoArgs,
	Run:  runAuthSet,
}

// authShowCmd represents the auth show command
var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether an API key is stored",
	Long:  `Show whether an API key is stored, with the key value masked.`,
	Args:  cobra.NoArgs,
	Run:   runAuthShow,
}

// authRemoveCmd represents the auth remove command
var authRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	Run:   runAuthRemove,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authRemoveCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize key manager: %v\n", err)
		os.Exit(1)
	}

	fmt.Print("RapidAPI key (input hidden): ")
	key, err := readPassword()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to read key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	key = strings.TrimSpace(key)
	if key == "" {
		fmt.Fprintln(os.Stderr, "API key is required")
		os.Exit(1)
	}

	if err := manager.Store(&auth.Credential{Key: key}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to store API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("API key stored.")
}

func runAuthShow(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize key manager: %v\n", err)
		os.Exit(1)
	}

	cred, err := manager.Retrieve()
	if err != nil {
		fmt.Println("No API key stored.")
		return
	}

	fmt.Printf("API key: %s (modified %s)\n", maskKey(cred.Key), cred.LastModified.Format("2006-01-02 15:04"))
}

func runAuthRemove(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize key manager: %v\n", err)
		os.Exit(1)
	}

	if err := manager.Delete(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to remove API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("API key removed.")
}

// readPassword reads a line of input without echoing it
func readPassword() (string, error) {
	data, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// maskKey shows only the first and last few characters of a key
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
