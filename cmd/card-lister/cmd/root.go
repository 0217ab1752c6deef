// Package cmd implements the card-lister CLI commands.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "card-lister",
	Short: "List trading cards from an inventory sheet on eBay",
	Long: "card-lister reads card rows from a spreadsheet or database, uploads each\n" +
		"card's pictures, and submits one fixed-price eBay listing per row. A run\n" +
		"stops as soon as a listing is charged a nonzero fee.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().
		String("config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL for remote commands")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))
	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(itemCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(remoteCmd())
	rootCmd.AddCommand(versionCmd())
}

// initEnv lets CARD_LISTER_CONFIG, CARD_LISTER_SERVER and
// CARD_LISTER_OUTPUT stand in for the persistent flags.
func initEnv() {
	viper.SetEnvPrefix("CARD_LISTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func configPath() string {
	return viper.GetString("config")
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
