package cmd

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/dbreset/internal/config"
	"github.com/Lumos-Labs-HQ/dbreset/internal/database"
	"github.com/Lumos-Labs-HQ/dbreset/internal/database/common"
	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Truncate all tables, seed them and resync sequences",
	Long: `
Reset the database to a clean, seeded state. This will:

1. Discover the tables of the configured schema
2. Narrow them with --skip (an allow-list unless --exclude is given)
3. Truncate them in one cascading statement
4. Run the seed SQL
5. Resync every table's <table>_id_seq sequence (unless --no-sequences)

⚠️  WARNING: Truncation is not rolled back if seeding fails.

Examples:
  dbreset reset --seed db/seed.sql
  dbreset reset --skip orders,orders_items --seed db/seeds/
  dbreset reset --skip schema_migrations --exclude --force
  dbreset reset --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		seed, err := cfg.ReadSeed()
		if err != nil {
			return err
		}

		opts, err := cfg.ResetOptions()
		if err != nil {
			return err
		}
		opts.SeedSQL = seed

		log, closer, err := newResetLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()
		opts.Logger = log

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		conn, err := database.Open(ctx, cfg.Database.Provider, cfg.Database.Driver, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		plan, err := resetdb.Plan(ctx, conn, opts)
		if err != nil {
			return fmt.Errorf("failed to discover tables: %w", err)
		}
		printPlan(cfg, plan, seed)

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			color.Cyan("🔍 Dry run, nothing was changed")
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		if !askUserConfirmation(force, "Are you sure you want to reset the database?") {
			fmt.Println("Database reset cancelled")
			return nil
		}

		result, err := resetdb.Reset(ctx, conn, opts)
		if err != nil {
			return err
		}

		color.Green("✅ Database reset complete")
		if result.Command != "" {
			fmt.Printf("🌱 Seed: %s\n", result.Command)
		} else if len(seed) > 0 {
			fmt.Printf("🌱 Seed: %d row(s) affected\n", result.RowsAffected)
		}
		return nil
	},
}

func printPlan(cfg *config.Config, plan *resetdb.TablePlan, seed []byte) {
	fmt.Printf("🎯 Database: %s (schema %s)\n", cfg.Database.Provider, cfg.Database.Schema)
	if len(plan.Tables) == 0 {
		color.Yellow("⚠️  No tables selected, nothing will be truncated")
	} else {
		fmt.Printf("🗑️  Tables to truncate (%d of %d): %s\n", len(plan.Tables), len(plan.Discovered), strings.Join(plan.Tables, ", "))
		for _, stmt := range plan.Truncate {
			fmt.Printf("   %s\n", stmt)
		}
	}

	if len(seed) == 0 {
		fmt.Println("🌱 No seed configured")
	} else {
		fmt.Printf("🌱 Seed: %d statement(s)\n", len(common.ParseSQLStatements(string(seed))))
	}
	if cfg.Reset.ResetSequences {
		fmt.Printf("🔢 Sequences resynced on column %q\n", cfg.Reset.IDColumn)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(resetCmd)

	addFilterFlags(resetCmd)
	resetCmd.Flags().StringSlice("seed", nil, "Seed SQL files or directories of .sql files")
	resetCmd.Flags().Bool("no-sequences", false, "Don't resync identifier sequences")
	resetCmd.Flags().Int("concurrency", 0, "Maximum parallel sequence resyncs (0 = unlimited)")
	resetCmd.Flags().Bool("dry-run", false, "Show what would be reset without changing anything")
}
