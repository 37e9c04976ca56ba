package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile  string
	zoneID      string
	payloadFile string
)

var rootCmd = &cobra.Command{
	Use:     "gavel",
	Short:   "Gavel business rule expression runtime",
	Long:    `Gavel evaluates business rule expression functions against JSON payloads with decimal64 numeric semantics.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&zoneID, "zone", "", "session time zone (IANA id, default host zone)")
	rootCmd.PersistentFlags().StringVar(&payloadFile, "payload", "", "JSON payload file (default stdin)")
}

func Execute() error {
	return rootCmd.Execute()
}
