package semantic

import (
	"slices"

	"github.com/foundry-zero/dccheck/internal/report"
)

// FilterSink forwards findings to Sink, dropping those of rules outside
// Enabled and remapping severities per Severity. An empty Enabled keeps
// every rule. Rule evaluation itself is unaffected.
type FilterSink struct {
	Sink     Sink
	Enabled  []int
	Severity map[string]report.Severity
}

// AddFinding implements Sink.
func (s *FilterSink) AddFinding(f report.Finding) {
	if len(s.Enabled) > 0 {
		r, ok := LookupRule(f.Rule)
		if ok && !slices.Contains(s.Enabled, r.Number) {
			return
		}
	}
	if sev, ok := s.Severity[f.Rule]; ok {
		f.Severity = sev
	}
	s.Sink.AddFinding(f)
}
