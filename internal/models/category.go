package models

import (
	"strings"

	"github.com/finance-tracker/backend/internal/ledger"
	"gorm.io/gorm"
)

// Category classifies transactions.
type Category struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Type ledger.TransactionType
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if c.Type == "" {
		c.Type = ledger.Expense
	}

	if !c.Type.Valid() {
		return ledger.ErrInvalidType
	}

	return nil
}

func (c Category) Ledger() ledger.Category {
	return ledger.Category{
		ID:   c.ID,
		Name: c.Name,
		Type: c.Type,
	}
}

// CategoryRule assigns a category label to expenses that were entered
// without one, based on their description.
type CategoryRule struct {
	DefaultModel
	Priority uint
	Match    string
	Label    string
}

func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Label = strings.TrimSpace(r.Label)

	if r.Match == "" {
		return ErrCategoryRuleMatchEmpty
	}

	if r.Label == "" {
		return ErrCategoryRuleLabelEmpty
	}

	return nil
}

func (r CategoryRule) Ledger() ledger.Rule {
	return ledger.Rule{
		Priority: r.Priority,
		Match:    r.Match,
		Label:    r.Label,
	}
}
