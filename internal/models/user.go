package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is the identity scope for all other resources. Every entity
// access is checked against the owning user.
type User struct {
	DefaultModel
	Name string `json:"name" example:"Maya"` // Display name of the user
}

// BeforeSave trims whitespace and validates the name.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return ErrNameMissing
	}

	return nil
}

// AfterCreate creates the zero balance for the user. gorm runs hooks
// inside the creating transaction, so a user can never exist without
// its balance row.
func (u *User) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&Balance{UserID: u.ID}).Error
}
