package models

import (
	"strings"

	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a set of users that share expenses.
type Group struct {
	DefaultModel
	Name        string
	Description string
	CreatedByID uuid.UUID
	CreatedBy   User   `json:"-"`
	Members     []User `gorm:"many2many:group_members;"`
}

func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return ErrGroupNameEmpty
	}

	return nil
}

// Ledger returns the group with its member IDs. Members must be preloaded.
func (g Group) Ledger() ledger.Group {
	members := make([]uuid.UUID, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, m.ID)
	}

	return ledger.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     members,
	}
}

// LedgerMembers returns the members of the group in the order they were
// loaded. Members must be preloaded.
func (g Group) LedgerMembers() []ledger.Member {
	members := make([]ledger.Member, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, m.Ledger())
	}

	return members
}
