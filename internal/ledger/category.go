package ledger

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// NewCategory describes a category that has to be created before a
// transaction can reference it.
type NewCategory struct {
	Name string
	Type TransactionType
}

// Resolution is the outcome of ResolveCategory. Exactly one of
// CategoryID and Create is set.
type Resolution struct {
	CategoryID uuid.UUID
	Create     *NewCategory
}

// Found reports whether the label matched an existing category.
func (r Resolution) Found() bool {
	return r.Create == nil
}

// ResolveCategory maps a free-text label to an existing category.
//
// Surrounding whitespace of the label is ignored. Labels are compared
// case-insensitively and the first category in the given order wins. When
// nothing matches, the resolution asks for an EXPENSE category named like
// the trimmed label. No ID is ever generated
// here, that is up to whoever persists the new category.
func ResolveCategory(label string, categories []Category) (Resolution, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Resolution{}, ErrCategoryRequired
	}

	folded := fold(label)
	for _, c := range categories {
		if fold(c.Name) == folded {
			return Resolution{CategoryID: c.ID}, nil
		}
	}

	return Resolution{Create: &NewCategory{Name: label, Type: Expense}}, nil
}

// fold returns the case folded form of s.
//
// A cases.Caser is stateful, so a new one is used for every call.
func fold(s string) string {
	return cases.Fold().String(s)
}
