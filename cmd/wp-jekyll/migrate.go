// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wp-jekyll/internal/ledger"
	"github.com/pdiddy/wp-jekyll/internal/migrate"
	"github.com/pdiddy/wp-jekyll/pkg/types"
)

const (
	defaultOutputDir      = "_posts"
	defaultLedgerDir      = ".wp-jekyll"
	defaultCommentsWindow = 90
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [export.csv]",
	Short: "Convert a WordPress CSV export into Jekyll posts",
	Long: `Migrate reads a WordPress CSV export (columns Title, Date, Content,
Excerpt, Image Path, Slug, Categories), clears the output directory and
writes one <date>-<slug>.md post per row. Rows that fail, for example
because their Date is not YYYY-MM-DD, are reported and skipped; the other
rows are still written.

Each run is recorded in a SQLite ledger unless --no-ledger is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().String("output", defaultOutputDir, "directory for generated posts (cleared before each run)")
	migrateCmd.Flags().String("ext", migrate.DefaultExtension, "post file extension")
	migrateCmd.Flags().String("layout", "post", "Jekyll layout written to each post")
	migrateCmd.Flags().Int("comments-window", defaultCommentsWindow, "close comments on posts older than this many days")
	migrateCmd.Flags().Bool("keep-output", false, "do not clear the output directory first")
	migrateCmd.Flags().String("ledger-dir", defaultLedgerDir, "directory for the migration ledger")
	migrateCmd.Flags().Bool("no-ledger", false, "do not record this run in the ledger")

	bindFlag("migrate.output", migrateCmd, "output")
	bindFlag("migrate.ext", migrateCmd, "ext")
	bindFlag("migrate.layout", migrateCmd, "layout")
	bindFlag("migrate.comments_window", migrateCmd, "comments-window")
	bindFlag("migrate.keep_output", migrateCmd, "keep-output")
	bindFlag("ledger.dir", migrateCmd, "ledger-dir")

	rootCmd.AddCommand(migrateCmd)
}

// bindFlag ties a config key to a command flag so the flag overrides the
// config file and WP_JEKYLL_* environment.
func bindFlag(key string, cmd *cobra.Command, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// migrationConfig assembles the run settings from flags, config file and
// environment. A positional argument overrides migrate.input.
func migrationConfig(args []string) (types.MigrationConfig, error) {
	cfg := types.MigrationConfig{
		Input:              viper.GetString("migrate.input"),
		OutputDir:          viper.GetString("migrate.output"),
		KeepOutput:         viper.GetBool("migrate.keep_output"),
		Extension:          viper.GetString("migrate.ext"),
		Layout:             viper.GetString("migrate.layout"),
	}
	if viper.IsSet("migrate.comments_window") {
		days := viper.GetInt("migrate.comments_window")
		cfg.CommentsWindowDays = &days
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if viper.IsSet("migrate.image_rewrites") {
		rewrites := []types.ImageRewrite{}
		if err := viper.UnmarshalKey("migrate.image_rewrites", &rewrites); err != nil {
			return cfg, fmt.Errorf("reading migrate.image_rewrites: %w", err)
		}
		cfg.ImageRewrites = rewrites
	}
	return cfg, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := migrationConfig(args)
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return fmt.Errorf("provide the CSV export path as an argument or set migrate.input")
	}

	records, err := migrate.ReadFile(cfg.Input)
	if err != nil {
		return err
	}

	if cfg.KeepOutput {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	} else if err := migrate.PrepareOutput(cfg.OutputDir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No posts found.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var rec migrate.Recorder
	noLedger, _ := cmd.Flags().GetBool("no-ledger")
	if !noLedger {
		l, err := ledger.Open(types.LedgerConfig{Dir: viper.GetString("ledger.dir")})
		if err != nil {
			return err
		}
		defer l.Close()
		if !cfg.KeepOutput {
			if err := l.Reset(ctx); err != nil {
				return err
			}
		}
		rec = l
	}

	m := migrate.New(cfg, rec)
	result, err := m.Migrate(ctx, records, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Markdown files have been created in the '%s' folder.\n", cfg.OutputDir)

	if result.HasFailures() {
		return fmt.Errorf("%d row(s) failed migration", result.Failed)
	}
	return nil
}
