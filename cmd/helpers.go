package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/dbreset/internal/config"
	"github.com/Lumos-Labs-HQ/dbreset/internal/logger"
	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/spf13/cobra"
)

// loadConfig reads the config and applies the reset flags shared by the
// subcommands on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("skip") {
		cfg.Reset.SkipTables, _ = flags.GetStringSlice("skip")
	}
	if exclude, _ := flags.GetBool("exclude"); exclude {
		cfg.Reset.FilterMode = string(resetdb.FilterExclude)
	}
	if flags.Changed("schema") {
		cfg.Database.Schema, _ = flags.GetString("schema")
	}
	if flags.Changed("seed") {
		cfg.Reset.SeedPaths, _ = flags.GetStringSlice("seed")
		cfg.Reset.SeedSQL = ""
	}
	if noSeq, _ := flags.GetBool("no-sequences"); noSeq {
		cfg.Reset.ResetSequences = false
	}
	if flags.Changed("concurrency") {
		cfg.Reset.Concurrency, _ = flags.GetInt("concurrency")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("skip", nil, "Tables to restrict the reset to (see --exclude)")
	cmd.Flags().Bool("exclude", false, "Treat --skip as tables to leave untouched instead of the only tables to reset")
	cmd.Flags().String("schema", "", "Schema to reset (default public)")
}

func newResetLogger(cfg *config.Config) (resetdb.Logger, io.Closer, error) {
	zl, closer, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger.NewAdapter(zl.With().Str("component", "reset").Logger()), closer, nil
}

func askUserConfirmation(force bool, message string) bool {
	if force {
		return true
	}

	fmt.Printf("🤔 %s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
