package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/dbreset/internal/database"
	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables a reset would truncate",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts, err := cfg.ResetOptions()
		if err != nil {
			return err
		}
		opts.Logger = resetdb.NopLogger

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

		selected := make(map[string]bool, len(plan.Tables))
		for _, t := range plan.Tables {
			selected[t] = true
		}

		for _, t := range plan.Discovered {
			if selected[t] {
				color.Green("  ✓ %s", t)
			} else {
				color.White("  - %s", t)
			}
		}
		fmt.Printf("\n%d of %d table(s) selected\n", len(plan.Tables), len(plan.Discovered))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	addFilterFlags(tablesCmd)
}
