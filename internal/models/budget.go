package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a monthly spending ceiling for one category. At most one
// budget exists per user and category, enforced by the schema.
type Budget struct {
	DefaultModel
	UserID   uuid.UUID       `json:"-" gorm:"uniqueIndex:budget_user_category"`
	User     User            `json:"-"`
	Category string          `json:"category" gorm:"uniqueIndex:budget_user_category" example:"Entertainment"` // The category the ceiling applies to
	Maximum  decimal.Decimal `json:"maximum" gorm:"type:DECIMAL(20,8)" example:"50"`                           // Monthly spending ceiling
	Theme    string          `json:"theme" example:"#82C9D7"`                                                  // Display color
}

// BeforeSave trims whitespace and validates the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)
	b.Theme = strings.TrimSpace(b.Theme)

	if b.Category == "" {
		return ErrCategoryMissing
	}

	if !b.Maximum.IsPositive() {
		return ErrMaximumNotPositive
	}

	return nil
}

// Spent returns the money spent in the budget's category during the
// given month, as a positive number. Only expense transactions count,
// income in the category does not reduce the spend.
//
// A category without any transactions yields zero, never an error.
func (b Budget) Spent(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var transactions []Transaction

	err := db.
		Where(&Transaction{UserID: b.UserID, Category: b.Category}).
		Where("transactions.amount < 0").
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, t := range transactions {
		if month.Contains(t.Date) {
			sum = sum.Add(t.Amount.Abs())
		}
	}

	return sum, nil
}

// LatestTransactions returns the most recent transactions of any sign
// in the budget's category, newest first. Transactions on the same date
// keep their insertion order.
func (b Budget) LatestTransactions(db *gorm.DB, limit int) ([]Transaction, error) {
	transactions := make([]Transaction, 0)

	err := db.
		Where(&Transaction{UserID: b.UserID, Category: b.Category}).
		Order(TimeSort(db, "transactions.date") + " DESC, " + TimeSort(db, "transactions.created_at") + " ASC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
