package semantic

import (
	"fmt"

	"github.com/foundry-zero/dccheck/internal/report"
)

// Rule describes one check of the catalogue.
type Rule struct {
	Number   int
	ID       string
	Summary  string
	Severity report.Severity
}

var (
	RuleEqOrder          = newRule(1, "'eq' must be true when 'order' is true", report.SeverityError)
	RuleFieldOrder       = newRule(2, "fields without defaults must precede fields with defaults", report.SeverityError)
	RulePostInitParams   = newRule(3, "'__post_init__' takes the init-only fields in order", report.SeverityError)
	RulePostInitNoInit   = newRule(4, "'__post_init__' is unreachable with init=False", report.SeverityWeakWarning)
	RuleMutableDefault   = newRule(5, "mutable built-in container as field default", report.SeverityError)
	RuleDefaultFactory   = newRule(6, "both 'default' and 'default_factory' given", report.SeverityError)
	RuleUnusedInitVar    = newRule(7, "init-only field without '__post_init__'", report.SeverityWeakWarning)
	RuleFrozenWrite      = newRule(8, "attribute write on a frozen dataclass instance", report.SeverityError)
	RuleInitVarRead      = newRule(9, "attribute read of an init-only field", report.SeverityErrorOrWarning)
	RuleOrdering         = newRule(10, "ordering operator between dataclass instances", report.SeverityError)
	RuleHelperArgument   = newRule(11, "dataclasses helper called on a non-dataclass", report.SeverityError)
	RuleNamedTupleFields = newRule(12, "NamedTuple fields without defaults must precede fields with defaults", report.SeverityError)
)

// Rules is the full catalogue, ordered by rule number.
var Rules = []Rule{
	RuleEqOrder,
	RuleFieldOrder,
	RulePostInitParams,
	RulePostInitNoInit,
	RuleMutableDefault,
	RuleDefaultFactory,
	RuleUnusedInitVar,
	RuleFrozenWrite,
	RuleInitVarRead,
	RuleOrdering,
	RuleHelperArgument,
	RuleNamedTupleFields,
}

func newRule(n int, summary string, sev report.Severity) Rule {
	return Rule{Number: n, ID: RuleID(n), Summary: summary, Severity: sev}
}

// RuleID formats a rule number as its finding ID, e.g. 3 -> "DC-03".
func RuleID(n int) string {
	return fmt.Sprintf("DC-%02d", n)
}

// LookupRule returns the rule with the given ID.
func LookupRule(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
