package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"streamfetch/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect the download report",
	}

	reportCmd.AddCommand(newReportSummaryCommand(ctx))

	return reportCmd
}

func newReportSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize download outcomes by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows, err := report.ReadRows(cfg.Paths.ReportFile)
			if err != nil {
				return fmt.Errorf("read report: %w", err)
			}
			counts := report.Summarize(rows)

			if ctx.JSONMode() {
				payload := map[string]any{"total": len(rows)}
				for status, count := range counts {
					payload[string(status)] = count
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "Download report: empty")
				return nil
			}

			fmt.Fprintf(out, "Download report: %d entries\n", len(rows))
			tableRows := make([][]string, 0, len(counts))
			for _, status := range report.Statuses() {
				if count, ok := counts[status]; ok {
					tableRows = append(tableRows, []string{statusLabel(status), strconv.Itoa(count)})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Status", "Count"},
				tableRows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

// statusLabel renders a report status for humans, e.g. NOT_FOUND becomes
// "Not Found".
func statusLabel(status report.Status) string {
	words := strings.ReplaceAll(strings.ToLower(string(status)), "_", " ")
	return cases.Title(language.Und).String(words)
}
