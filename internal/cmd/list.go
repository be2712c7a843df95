package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Digital-Shane/adr/internal/adr"
	"github.com/Digital-Shane/adr/internal/config"
	"github.com/Digital-Shane/adr/internal/log"
	"github.com/Digital-Shane/adr/internal/tui/livetable"
	"github.com/Digital-Shane/adr/internal/tui/theme"

	"github.com/spf13/cobra"
)

type listOptions struct {
	*rootOptions
	status string
	plain  bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through the decision records",
		Long: `List the decision records in a paged table.

Enter prints the path of the highlighted record, so $EDITOR "$(adr list)" opens
it. The bound keys shown under the table view, describe, trace or open the
record instead. Any other key exits without output.`,
		Args: cobra.NoArgs,
		RunE: opts.run,
	}

	cmd.Flags().StringVar(&opts.status, "status", "", "Only show records with this status")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print the records without the interactive table")
	return cmd
}

// openInEditor launches the editor on path.
var openInEditor = func(path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "code"
	}
	c := exec.Command(editor, path)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

func (o *listOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.settings(cmd)
	if err != nil {
		return err
	}
	defer startJournal(cmd, cfg, args)()

	records, err := adr.Load(cmd.Context(), cfg.Dir, cfg.LoadWorkers)
	log.LogLoad(cfg.Dir, len(records), err)
	if err != nil {
		if len(records) == 0 {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	records = adr.Filter(records, o.status)
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No decision records found in %s\n", cfg.Dir)
		return nil
	}

	if o.plain {
		printRecords(out, records)
		return nil
	}

	b := recordTable(cfg, theme.Default(), records, out, cmd.ErrOrStderr())
	res, err := runTable(cmd.Context(), b, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if res.Cancelled {
		log.LogCancel()
	}
	return nil
}

// recordTable builds the interactive record table. Output of the resolved
// action goes to out.
func recordTable(cfg *config.Config, th theme.Theme, records []adr.Record, out, errOut io.Writer) *livetable.Builder[adr.Record] {
	logAction := func(r adr.Record, key rune, desc string, err error) {
		log.LogAction(key, desc, r.Path, err)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}

	return newTable[adr.Record](cfg).
		WithHeader(fmt.Sprintf("%s Decision records in %s", th.Icon("journal"), cfg.Dir)).
		WithColumns("#", "Title", "Status", "Date").
		WithDataPicker(func(r adr.Record) []string {
			return []string{strconv.Itoa(r.Number), r.Title, statusCell(th, r.Status), r.Date}
		}).
		WithDataSource(records).
		WithEnterInstruction("print the path of ADR {id}", adr.Record.ID).
		WithSelectionAction(func(r adr.Record) {
			log.LogSelect(r.Path)
			fmt.Fprintln(out, r.Path)
		}).
		WithMultipleActions(
			livetable.NewKeyAction('v', "view the record", func(r adr.Record) {
				data, err := os.ReadFile(r.Path)
				if err == nil {
					fmt.Fprint(out, string(data))
				}
				logAction(r, 'v', "view", err)
			}),
			livetable.NewKeyAction('i', "describe the record", func(r adr.Record) {
				fmt.Fprint(out, describe(r))
				logAction(r, 'i', "describe", nil)
			}),
			livetable.NewKeyAction('s', "trace the supersede chain", func(r adr.Record) {
				related := adr.Related(records, r)
				if len(related) == 0 {
					fmt.Fprintf(out, "%s is not linked to any other record\n", r)
				}
				for _, rel := range related {
					fmt.Fprintf(out, "%s (%s)\n", rel, rel.Status)
				}
				logAction(r, 's', "supersede chain", nil)
			}),
			livetable.NewKeyAction('o', "open in the editor", func(r adr.Record) {
				err := openInEditor(r.Path)
				if err != nil {
					err = fmt.Errorf("failed to open %s: %w", r.Path, err)
				}
				logAction(r, 'o', "open", err)
			}),
		)
}

func statusCell(th theme.Theme, status string) string {
	icon := th.Icon(status)
	if icon == "" {
		icon = th.Icon("unknown")
	}
	return icon + " " + th.Wrap(status, theme.StatusCategory(status))
}

func describe(r adr.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number:        %d\n", r.Number)
	fmt.Fprintf(&b, "Title:         %s\n", r.Title)
	fmt.Fprintf(&b, "Status:        %s\n", r.Status)
	if r.Date != "" {
		fmt.Fprintf(&b, "Date:          %s\n", r.Date)
	}
	fmt.Fprintf(&b, "Path:          %s\n", r.Path)
	if len(r.Supersedes) > 0 {
		fmt.Fprintf(&b, "Supersedes:    %s\n", joinNumbers(r.Supersedes))
	}
	if len(r.SupersededBy) > 0 {
		fmt.Fprintf(&b, "Superseded by: %s\n", joinNumbers(r.SupersededBy))
	}
	return b.String()
}

func joinNumbers(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func printRecords(w io.Writer, records []adr.Record) {
	for _, r := range records {
		fmt.Fprintf(w, "%4d  %-12s  %-10s  %s\n", r.Number, r.Status, r.Date, r.Title)
	}
}
