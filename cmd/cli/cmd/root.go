package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	apiKey  string
)

var rootCmd = &cobra.Command{
	Use:   "devopsctl",
	Short: "devopsctl - talk to the message backend and stop the target instance",
	Long: `devopsctl is a command-line tool for the DevOps app.

It lists and sends messages through the backend API, checks backend health,
and can run the instance-stop handler locally against EC2.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", getEnvOrDefault("DEVOPSAPP_API_URL", "http://localhost:5000"), "Backend API base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("DEVOPSAPP_API_KEY"), "Backend API key")
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
