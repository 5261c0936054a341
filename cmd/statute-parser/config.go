// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/statute-parser/pkg/types"
)

func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Backend:     types.ConversionBackend(viper.GetString("convert.backend")),
		StatutesDir: viper.GetString("convert.statutes_dir"),
		Workers:     viper.GetInt("convert.workers"),
		Runtime:     viper.GetString("convert.runtime"),
	}
}

func parseConfig() types.ParseConfig {
	return types.ParseConfig{
		StatutesDir: viper.GetString("parse.statutes_dir"),
		Workers:     viper.GetInt("parse.workers"),
		AllowEmpty:  viper.GetBool("parse.allow_empty"),
	}
}

func recordStoreConfig() types.RecordStoreConfig {
	return types.RecordStoreConfig{
		StatutesDir: viper.GetString("records.statutes_dir"),
		MaxResults:  viper.GetInt("records.max_results"),
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the settings every stage would run with after merging
defaults, the config file, STATUTE_PARSER_* environment variables and flags.
The output is a valid config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.PipelineConfig{
			Conversion: conversionConfig(),
			Parse:      parseConfig(),
			Records:    recordStoreConfig(),
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(&cfg); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
