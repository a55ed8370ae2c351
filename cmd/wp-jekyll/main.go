// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wp-jekyll CLI, which converts a
// WordPress CSV export into Jekyll posts.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the wp-jekyll CLI.
var rootCmd = &cobra.Command{
	Use:   "wp-jekyll",
	Short: "Migrate a WordPress CSV export to Jekyll posts",
	Long: `wp-jekyll converts a WordPress export (CSV with a header row) into
Jekyll Markdown posts with YAML frontmatter.

Use migrate to generate posts, verify to check generated posts, slug to
preview the slug for a title, and ledger to inspect past runs.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wp-jekyll.yaml or ~/.config/wp-jekyll/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wp-jekyll")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wp-jekyll"))
		}
	}

	viper.SetEnvPrefix("WP_JEKYLL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
