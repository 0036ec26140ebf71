package models

import (
	"strings"

	"github.com/finance-tracker/backend/internal/ledger"
	"gorm.io/gorm"
)

// User is a person that can pay for expenses and be a group member.
type User struct {
	DefaultModel
	Name  string
	Email string `gorm:"uniqueIndex"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Name == "" {
		return ErrUserNameEmpty
	}

	if u.Email == "" {
		return ErrUserEmailEmpty
	}

	return nil
}

// Ledger returns the user as a group member.
func (u User) Ledger() ledger.Member {
	return ledger.Member{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
