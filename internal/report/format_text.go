package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// TextOptions controls text rendering.
type TextOptions struct {
	Color bool
}

// FormatText returns a human-readable string representation of the report.
// Each finding is on its own line with location, rule ID, severity and
// message, in emission order. A summary line is appended at the end.
func FormatText(r *Report, opts TextOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s\n", r.File)

	for _, f := range r.Findings {
		writeFinding(&b, f, opts)
	}

	fmt.Fprintf(&b, "\n%d errors, %d warnings, %d weak warnings\n",
		r.Summary.ErrorCount, r.Summary.WarningCount, r.Summary.WeakWarningCount)
	return b.String()
}

func writeFinding(b *strings.Builder, f Finding, opts TextOptions) {
	sev := severityColor(f.Severity)
	if opts.Color {
		sev.EnableColor()
	} else {
		sev.DisableColor()
	}
	fmt.Fprintf(b, "  %s: [%s] %s: %s\n", f.Location, f.Rule, sev.Sprint(f.Severity), f.Message)
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityError:
		return color.New(color.FgRed, color.Bold)
	case SeverityErrorOrWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}
