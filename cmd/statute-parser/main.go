// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the statute-parser CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the statute-parser CLI.
var rootCmd = &cobra.Command{
	Use:   "statute-parser",
	Short: "Segment Slovak statutes into structured records",
	Long: `statute-parser turns Slovak statute documents into flat records, one per
paragraph (§), each tagged with its law number, date, section (ČASŤ) and
article (Čl.).

The pipeline has three stages, each a subcommand: convert normalizes source
documents into text, parse segments the text into records, and records
indexes them in a searchable SQLite database.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./statute-parser.yaml or ~/.config/statute-parser/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("statute-parser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "statute-parser"))
		}
	}

	viper.SetEnvPrefix("STATUTE_PARSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlag ties a command flag to a config key so flags, environment and
// config file all resolve to the same setting.
func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.Flags().Lookup(flag)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(flag)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
