// Package report defines types for validation findings and the report
// structure used to collect and present validation results.
package report

import "fmt"

// Severity indicates how confident a finding is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityErrorOrWarning
	SeverityWeakWarning
)

// String returns "error", "error_or_warning" or "weak_warning".
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityErrorOrWarning:
		return "error_or_warning"
	case SeverityWeakWarning:
		return "weak_warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity is the inverse of Severity.String.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SeverityError, nil
	case "error_or_warning":
		return SeverityErrorOrWarning, nil
	case "weak_warning":
		return SeverityWeakWarning, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output uses the string form.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON round-tripping.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Location identifies where in a source file a finding occurred.
type Location struct {
	File      string `json:"file"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`

	// Pointer is a JSON pointer into the input document, set for findings
	// about the document itself rather than the Python source.
	Pointer string `json:"pointer,omitempty"`
}

// String renders the location as file:line:column, or file#pointer for
// document locations.
func (l Location) String() string {
	switch {
	case l.Line == 0 && l.Pointer != "":
		return l.File + "#" + l.Pointer
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// Finding represents a single validation result.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// NewFinding creates a Finding with the given parameters.
func NewFinding(rule string, severity Severity, message string, loc Location) Finding {
	return Finding{
		Rule:     rule,
		Severity: severity,
		Message:  message,
		Location: loc,
	}
}

// NewError creates an error-severity Finding.
func NewError(rule string, message string, loc Location) Finding {
	return NewFinding(rule, SeverityError, message, loc)
}

// Summary holds aggregate counts for a report.
type Summary struct {
	ErrorCount       int `json:"error_count"`
	WarningCount     int `json:"warning_count"`
	WeakWarningCount int `json:"weak_warning_count"`
}

// Report collects all findings for a single file in emission order.
type Report struct {
	File        string    `json:"file"`
	SchemaValid bool      `json:"schema_valid"`
	Findings    []Finding `json:"findings"`
	Summary     Summary   `json:"summary"`
}

// NewReport creates a Report for the given file with an empty finding slice.
func NewReport(file string) *Report {
	return &Report{
		File:     file,
		Findings: []Finding{},
	}
}

// AddFinding appends a finding and updates the summary counts.
func (r *Report) AddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
	switch f.Severity {
	case SeverityError:
		r.Summary.ErrorCount++
	case SeverityErrorOrWarning:
		r.Summary.WarningCount++
	case SeverityWeakWarning:
		r.Summary.WeakWarningCount++
	}
}

// HasErrors returns true if the report contains any error-severity findings.
func (r *Report) HasErrors() bool {
	return r.Summary.ErrorCount > 0
}

// HasWarnings returns true if the report contains any warning of either kind.
func (r *Report) HasWarnings() bool {
	return r.Summary.WarningCount > 0 || r.Summary.WeakWarningCount > 0
}

// FindingsWithRule returns the findings reported under rule, in order.
func (r *Report) FindingsWithRule(rule string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}
