package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/runnerhq/runnerd/pkg/client"
)

var baseURL string

var rootCmd = &cobra.Command{
	Use:   "runnerctl",
	Short: "runnerctl - Run commands and fetch files from a runnerd server",
	Long: `runnerctl talks to a runnerd remote-execution server.

It can run single commands, upload and run scripts through an interpreter,
and download files from the server's working directory.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url",
		getEnvOrDefault("RUNNERD_URL", "http://localhost:8080"), "runnerd base URL")
}

func newClient() *client.Client {
	return client.New(baseURL)
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
