package ledger

import (
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// Rule maps transaction descriptions matching a glob to a category label.
type Rule struct {
	Priority uint
	Match    string
	Label    string
}

// RuleLabel returns the label of the first rule that matches description.
// Rules are tried in ascending priority, rules with the same priority in the
// given order. Matching ignores case and "*" is the only wildcard.
func RuleLabel(rules []Rule, description string) (string, bool) {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		switch {
		case a.Priority < b.Priority:
			return -1
		case a.Priority > b.Priority:
			return 1
		default:
			return 0
		}
	})

	subject := fold(description)
	for _, r := range sorted {
		if r.Match != "" && glob.Glob(fold(r.Match), subject) {
			return r.Label, true
		}
	}

	return "", false
}
