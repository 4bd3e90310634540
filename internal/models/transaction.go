package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single ledger entry. The amount is signed: negative
// amounts are expenses, positive amounts are income. Transactions are
// immutable once created.
type Transaction struct {
	DefaultModel
	UserID    uuid.UUID       `json:"-" gorm:"index"`
	User      User            `json:"-"`
	Name      string          `json:"name" example:"Bravo Zen Spa"`          // The payee or source of the transaction
	Category  string          `json:"category" example:"Personal Care"`      // Category used for budget aggregation
	Date      time.Time       `json:"date" example:"2024-08-19T14:23:11Z"`   // Time of the transaction
	Amount    decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`      // Signed amount, negative = expense
	Avatar    string          `json:"avatar" example:"bravo-zen-spa.jpg"`    // Image shown next to the transaction
	Recurring bool            `json:"recurring" example:"true"`              // Is this part of a recurring bill?
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - trims whitespace from string fields
//   - validates that the payee name is set
//   - sets the timezone for the Date to UTC
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)
	t.Avatar = strings.TrimSpace(t.Avatar)

	if t.Name == "" {
		return ErrNameMissing
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
