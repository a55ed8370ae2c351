// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wp-jekyll/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [posts-dir]",
	Short: "Check generated posts for frontmatter and filename problems",
	Long: `Verify reads every post in the output directory, parses its YAML
frontmatter and checks that the permalink and date agree with the filename.
Titles or excerpts containing double quotes are written verbatim by
migrate and show up here as frontmatter parse errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("migrate.output")
	if len(args) > 0 {
		dir = args[0]
	}
	ext := viper.GetString("migrate.ext")

	report, err := verify.New().Dir(dir, ext, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("%d problem(s) in %d post(s)", len(report.Problems), report.Checked)
	}
	return nil
}
