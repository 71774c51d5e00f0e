package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cmms/bridge/internal/application/syncapp"
)

// printReport writes a run report to w in the requested format.
func printReport(w io.Writer, format string, report *syncapp.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "%s run %s: processed=%d succeeded=%d failed=%d\n",
		strings.ToLower(report.Direction.String()),
		report.RunID,
		report.Processed,
		report.Succeeded,
		report.Failed,
	)
	for kind, count := range report.CountByKind() {
		fmt.Fprintf(w, "  %s: %d\n", kind, count)
	}
	for _, recErr := range report.Errors {
		ref := recErr.OrderNumber
		if ref == "" {
			ref = recErr.Source
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", recErr.Kind, ref, recErr.Message)
	}
	return nil
}

// printRuns writes persisted run records to w in the requested format.
func printRuns(w io.Writer, format string, runs []*syncapp.RunRecord) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "no recorded runs")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(w, "%s  %-8s  processed=%-4d succeeded=%-4d failed=%-4d",
			run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			strings.ToLower(run.Direction),
			run.Processed,
			run.Succeeded,
			run.Failed,
		)
		if run.FatalError != "" {
			fmt.Fprintf(w, "  fatal=%q", run.FatalError)
		}
		fmt.Fprintln(w)
	}
	return nil
}
