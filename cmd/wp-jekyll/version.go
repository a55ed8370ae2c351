package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of wp-jekyll",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wp-jekyll %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
