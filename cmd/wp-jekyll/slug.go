// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wp-jekyll/internal/slug"
)

var slugCmd = &cobra.Command{
	Use:   "slug [title...]",
	Short: "Print the slug migrate would derive for a title",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), slug.Normalize(strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(slugCmd)
}
