package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balance is the cash position of a user. There is exactly one row per
// user. It is mutated only by the pot transfer engine and by direct
// balance edits, never by transaction bookkeeping.
type Balance struct {
	DefaultModel
	UserID   uuid.UUID       `json:"-" gorm:"uniqueIndex"`
	User     User            `json:"-"`
	Current  decimal.Decimal `json:"current" gorm:"type:DECIMAL(20,8)"`  // Money currently available
	Income   decimal.Decimal `json:"income" gorm:"type:DECIMAL(20,8)"`   // Income of the current period
	Expenses decimal.Decimal `json:"expenses" gorm:"type:DECIMAL(20,8)"` // Expenses of the current period
}

// UserBalance returns the balance row of a user.
func UserBalance(db *gorm.DB, userID uuid.UUID) (Balance, error) {
	var balance Balance
	err := db.Where(&Balance{UserID: userID}).First(&balance).Error
	return balance, err
}
