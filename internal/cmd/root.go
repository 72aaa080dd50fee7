package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Zenith-AI web front end",
	Long: `Zenith-AI front end server.

Serves the landing, auth, and chat workspace pages and proxies every
authentication and summarization operation to the Zenith backend API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
