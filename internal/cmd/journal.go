package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Digital-Shane/adr/internal/config"
	"github.com/Digital-Shane/adr/internal/log"
	"github.com/Digital-Shane/adr/internal/tui/livetable"

	"github.com/spf13/cobra"
)

type journalOptions struct {
	*rootOptions
	limit int
	plain bool
}

func newJournalCmd(root *rootOptions) *cobra.Command {
	opts := &journalOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent list sessions",
		Long: `Display the journal of recent sessions: which records were loaded and
what was selected. Enter prints the operations of the highlighted session.`,
		Args: cobra.NoArgs,
		RunE: opts.run,
	}

	cmd.Flags().IntVar(&opts.limit, "limit", 50, "Maximum number of sessions to show (0 for all)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print the sessions without the interactive table")
	return cmd
}

func (o *journalOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.settings(cmd)
	if err != nil {
		return err
	}

	summaries, err := log.GetSessionSummaries(o.limit)
	if err != nil {
		return fmt.Errorf("failed to read journal sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No journal sessions found.")
		return nil
	}

	if o.plain {
		for _, s := range summaries {
			fmt.Fprintln(out, strings.Join(sessionFields(s), "  "))
		}
		return nil
	}

	_, err = runTable(cmd.Context(), journalTable(cfg, summaries, out), cmd.ErrOrStderr())
	return err
}

// journalTable lists sessions newest first. Enter prints the operations of
// the chosen session to out.
func journalTable(cfg *config.Config, summaries []log.SessionSummary, out io.Writer) *livetable.Builder[log.SessionSummary] {
	return newTable[log.SessionSummary](cfg).
		WithHeader("Journal").
		WithColumns("When", "Command", "Ops", "Outcome").
		WithDataPicker(sessionFields).
		WithDataSource(summaries).
		WithEnterInstruction("show session {id}", func(s log.SessionSummary) string {
			return s.Session.Metadata.SessionID
		}).
		WithSelectionAction(func(s log.SessionSummary) {
			printSession(out, s)
		})
}

func printSession(w io.Writer, s log.SessionSummary) {
	meta := s.Session.Metadata
	fmt.Fprintf(w, "Session:  %s\n", meta.SessionID)
	fmt.Fprintf(w, "Command:  %s\n", strings.Join(meta.CommandArgs, " "))
	fmt.Fprintf(w, "Dir:      %s\n", meta.WorkingDir)
	fmt.Fprintf(w, "File:     %s\n", s.FilePath)
	for _, op := range s.Session.Operations {
		line := fmt.Sprintf("  %s  %-6s %s %s", op.Timestamp.Format("15:04:05"), op.Type, op.Detail, op.Path)
		if op.Error != "" {
			line += " (" + op.Error + ")"
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func sessionFields(s log.SessionSummary) []string {
	meta := s.Session.Metadata
	return []string{
		s.Icon + " " + s.RelativeTime,
		strings.Join(meta.CommandArgs, " "),
		strconv.Itoa(meta.TotalOps),
		s.Outcome(),
	}
}
