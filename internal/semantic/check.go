package semantic

import "github.com/foundry-zero/dccheck/internal/ast"

// RuleSet builds the visitor of one group of rules for a file.
type RuleSet func(ctx *Context) Visitor

// RuleSets lists every rule group in the order its callbacks run at a node.
var RuleSets = []RuleSet{DataclassRules, AccessRules, HelperCallRules, NamedTupleRules}

// Check runs every rule over mod in a single traversal. Findings for a node
// are emitted before those of its children.
func Check(mod *ast.Module, ctx *Context) {
	visitors := make([]Visitor, 0, len(RuleSets))
	for _, rs := range RuleSets {
		visitors = append(visitors, rs(ctx))
	}
	Walk(mod, Merge(visitors...))
}
