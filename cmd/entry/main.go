package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "entry",
	Short: "Add users, itineraries and hotels to the Pravaah API",
	Long: `entry is the terminal data-entry form for the Pravaah API.
It renders a collection's fields from the shared schema, submits one record
at a time, and can bulk-add the built-in sample records.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "http://localhost:5000", "base URL of the API")
	rootCmd.PersistentFlags().Duration("timeout", 0, "per-request timeout (0 means none)")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	viper.SetEnvPrefix("entry")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	setupCommands()
}

func apiURL() string {
	return viper.GetString("api_url")
}

func timeout() time.Duration {
	return viper.GetDuration("timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
