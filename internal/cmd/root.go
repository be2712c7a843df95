package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Digital-Shane/adr/internal/config"
	"github.com/Digital-Shane/adr/internal/log"
	"github.com/Digital-Shane/adr/internal/tui/livetable"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	dir          string
	pageSize     int
	legacyPaging bool
	noLog        bool
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "adr",
		Short: "Browse architecture decision records",
		Long: `adr lists the architecture decision records of a project in a paged,
keyboard driven table.

Records are markdown files in the Nygard layout ("# N. Title", "Date:" and a
"## Status" section) or files with TOML front matter between "+++" lines.`,
		SilenceUsage: true,
	}

	// Global flags for all commands
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", "", "Directory holding the decision records")
	rootCmd.PersistentFlags().IntVar(&opts.pageSize, "page-size", 0, "Rows per page")
	rootCmd.PersistentFlags().BoolVar(&opts.legacyPaging, "legacy-paging", false, "Use legacy page arithmetic (trailing empty page on exact multiples)")
	rootCmd.PersistentFlags().BoolVar(&opts.noLog, "no-log", false, "Do not write a journal session")

	rootCmd.AddCommand(
		newListCmd(opts),
		newJournalCmd(opts),
		newConfigCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// settings loads the config file and applies the flags that were set.
func (o *rootOptions) settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = o.dir
	}
	if flags.Changed("page-size") {
		cfg.PageSize = o.pageSize
	}
	if flags.Changed("legacy-paging") {
		mode := livetable.PagingStrict
		if o.legacyPaging {
			mode = livetable.PagingLegacy
		}
		cfg.Paging = mode.String()
	}
	if o.noLog {
		cfg.EnableLogging = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// startJournal opens a journal session for the running command. The returned
// func closes it and reports write failures on stderr.
func startJournal(cmd *cobra.Command, cfg *config.Config, args []string) func() {
	log.Initialize(cfg.EnableLogging, cfg.LogRetentionDays)
	if err := log.StartSession(cmd.Name(), args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to start journal: %v\n", err)
	}
	return func() {
		if err := log.EndSession(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to write journal: %v\n", err)
		}
	}
}
