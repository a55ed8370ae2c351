// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wp-jekyll/internal/ledger"
	"github.com/pdiddy/wp-jekyll/pkg/types"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the record of migrate runs (list, export)",
	Long: `Ledger reads the SQLite ledger that migrate writes: one entry per
exported row with its output filename or failure reason.`,
}

// --- list subcommand ---

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger entries",
	RunE:  runLedgerList,
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	l, err := ledger.Open(types.LedgerConfig{Dir: viper.GetString("ledger.dir")})
	if err != nil {
		return err
	}
	defer l.Close()

	entries, err := l.List(context.Background(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLedgerOutput(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatLedgerOutput(w io.Writer, entries []types.LedgerEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-8s  %-45s  %s\n", "Row", "Status", "File", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		file := e.Filename
		if len(file) > 45 {
			file = file[:42] + "..."
		}
		detail := e.Title
		if e.Status == types.MigrationFailed {
			detail = e.Error
		}
		fmt.Fprintf(w, "%-4d  %-8s  %-45s  %s\n", e.Row, e.Status, file, detail)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

// --- export subcommand ---

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to YAML or JSON",
	RunE:  runLedgerExport,
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	l, err := ledger.Open(types.LedgerConfig{Dir: viper.GetString("ledger.dir")})
	if err != nil {
		return err
	}
	defer l.Close()

	opts := listOptsFromFlags(cmd)
	var path string
	switch format {
	case "yaml", "":
		path, err = l.ExportYAML(context.Background(), opts)
	case "json":
		path, err = l.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) ledger.ListOptions {
	status, _ := cmd.Flags().GetString("status")
	return ledger.ListOptions{Status: types.MigrationStatus(status)}
}

func init() {
	ledgerCmd.PersistentFlags().String("status", "", "filter by status: migrated or failed")

	ledgerListCmd.Flags().Bool("json", false, "output entries as JSON")
	ledgerExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)

	rootCmd.AddCommand(ledgerCmd)
}
