package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pot is a named sub-allocation of a user's savings. Its total is money
// conceptually withdrawn from the balance, moved back and forth only by
// the transfer engine.
type Pot struct {
	DefaultModel
	UserID uuid.UUID       `json:"-" gorm:"uniqueIndex:pot_user_name"`
	User   User            `json:"-"`
	Name   string          `json:"name" gorm:"uniqueIndex:pot_user_name" example:"New Laptop"` // Name of the pot, unique per user
	Target decimal.Decimal `json:"target" gorm:"type:DECIMAL(20,8)" example:"1500"`            // Aspirational ceiling, not enforced as a cap
	Total  decimal.Decimal `json:"total" gorm:"type:DECIMAL(20,8)" example:"320.50"`           // Money currently in the pot
	Theme  string          `json:"theme" example:"#277C78"`                                    // Display color
}

// BeforeSave trims whitespace and validates the pot.
//
// The total may exceed the target, the target is not a hard cap. A
// negative total however can never occur through the transfer engine,
// so it is rejected here.
func (p *Pot) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Theme = strings.TrimSpace(p.Theme)

	if p.Name == "" {
		return ErrNameMissing
	}

	if !p.Target.IsPositive() {
		return ErrTargetNotPositive
	}

	if p.Total.IsNegative() {
		return ErrInsufficientPotFunds
	}

	return nil
}

// Percentage returns how much of the target has been saved, rounded to
// two decimal places.
func (p Pot) Percentage() decimal.Decimal {
	if p.Target.IsZero() {
		return decimal.Zero
	}

	return p.Total.Div(p.Target).Mul(decimal.NewFromInt(100)).Round(2)
}
