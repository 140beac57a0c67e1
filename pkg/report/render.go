package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

var outcomeSymbols = map[Outcome]string{
	OutcomeSucceeded:        "✅",
	OutcomeSkipped:          "⏭️",
	OutcomePartialFailure:   "⚠️",
	OutcomeTimedOut:         "⌛",
	OutcomeCancelled:        "🛑",
	OutcomeSubmissionFailed: "📮",
}

func symbol(o Outcome) string {
	if s, ok := outcomeSymbols[o]; ok {
		return s
	}
	return "❌"
}

// 🖨️ Render writes a human readable table followed by the summary line
func Render(w io.Writer, r *Report) error {
	data := pterm.TableData{{"", "Component", "Path", "Outcome", "Job", "Diagnostic"}}
	for _, rec := range r.Records {
		name := rec.ComponentName
		if name == "" {
			name = rec.ComponentID
		}
		data = append(data, []string{symbol(rec.Outcome), name, rec.Path, string(rec.Outcome), rec.JobID, rec.Diagnostic})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering report table: %w", err)
	}
	if _, err := fmt.Fprintln(w, table); err != nil {
		return errors.Errorf("writing report: %w", err)
	}

	outcomes := make([]string, 0)
	for o, n := range r.Counts() {
		outcomes = append(outcomes, fmt.Sprintf("%s=%d", o, n))
	}
	sort.Strings(outcomes)

	var line string
	switch r.Severity {
	case SeverityInfo:
		line = color.New(color.FgGreen).Sprintf("✅ %s", r.Message)
	case SeverityWarning:
		line = color.New(color.FgYellow).Sprintf("⚠️  %s", r.Message)
	default:
		line = color.New(color.FgRed).Sprintf("❌ %s", r.Message)
	}
	if _, err := fmt.Fprintf(w, "\n%s %s\n", line, color.New(color.Faint).Sprint(outcomes)); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}

// 📤 JSON writes the report as indented JSON
func JSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Errorf("encoding report: %w", err)
	}
	return nil
}
