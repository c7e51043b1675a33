package semantic

import "testing"

func TestRuleCatalogue(t *testing.T) {
	if len(Rules) != 12 {
		t.Fatalf("expected 12 rules, got %d", len(Rules))
	}
	for i, r := range Rules {
		if r.Number != i+1 {
			t.Errorf("Rules[%d].Number = %d, want %d", i, r.Number, i+1)
		}
		if r.ID != RuleID(r.Number) {
			t.Errorf("Rules[%d].ID = %q, want %q", i, r.ID, RuleID(r.Number))
		}
		if r.Summary == "" {
			t.Errorf("%s has no summary", r.ID)
		}
	}
}

func TestRuleID(t *testing.T) {
	if got := RuleID(3); got != "DC-03" {
		t.Errorf("RuleID(3) = %q, want DC-03", got)
	}
	if got := RuleID(12); got != "DC-12" {
		t.Errorf("RuleID(12) = %q, want DC-12", got)
	}
}

func TestLookupRule(t *testing.T) {
	r, ok := LookupRule("DC-08")
	if !ok || r != RuleFrozenWrite {
		t.Errorf("LookupRule(DC-08) = %v, %v", r, ok)
	}
	if _, ok := LookupRule("DC-99"); ok {
		t.Error("LookupRule(DC-99) should fail")
	}
}
