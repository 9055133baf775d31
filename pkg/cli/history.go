package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/genrun-dev/genrun/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent directive runs from the journal",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("journal", "", "Journal database to read")
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	historyCmd.MarkFlagRequired("journal")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("journal")
	limit, _ := cmd.Flags().GetInt("limit")

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "journal is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMODULE\tPOS\tCOMMAND\tEXIT\tDURATION")
	for _, e := range entries {
		status := fmt.Sprintf("%d", e.ExitCode)
		if e.DryRun {
			status = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%d:%d\t%s\t%s\t%dms\n",
			e.Time.Format("2006-01-02 15:04:05"),
			e.Module, e.Line, e.Character, e.Command, status, e.DurationMS)
	}
	return w.Flush()
}
