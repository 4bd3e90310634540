package models

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The transfer engine moves money between a user's balance and their
// pots. Every operation runs in a single database transaction: either
// both rows are updated or neither is, and no concurrent request can
// observe an intermediate state.

// transactionError translates failures to begin or commit the database
// transaction. Those happen outside of any statement, so the gorm
// callbacks never see them.
func transactionError(err error) error {
	if infrastructureError(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// lockForUpdate takes row locks for a read, so that concurrent transfers
// serialize on the rows they are about to update. Without the locks, two
// transactions under READ COMMITTED could both pass the funds check and
// overdraw the balance. sqlite does not speak FOR UPDATE and does not
// need it, all access goes through a single connection there, see Connect.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return tx
}

// AddToPot moves money from the balance into a pot.
//
// The amount must be positive and must not exceed the current balance.
// On success the updated pot and balance are returned.
func AddToPot(db *gorm.DB, userID, potID uuid.UUID, amount decimal.Decimal) (Pot, Balance, error) {
	var pot Pot
	var balance Balance

	if !amount.IsPositive() {
		return pot, balance, ErrAmountNotPositive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).Where(&Pot{UserID: userID}).First(&pot, "id = ?", potID).Error
		if err != nil {
			return err
		}

		balance, err = UserBalance(lockForUpdate(tx), userID)
		if err != nil {
			return err
		}

		if amount.GreaterThan(balance.Current) {
			return ErrInsufficientBalance
		}

		balance.Current = balance.Current.Sub(amount)
		err = tx.Model(&balance).Update("current", balance.Current).Error
		if err != nil {
			return err
		}

		pot.Total = pot.Total.Add(amount)
		return tx.Model(&pot).Update("total", pot.Total).Error
	})
	if err != nil {
		return Pot{}, Balance{}, transactionError(err)
	}

	return pot, balance, nil
}

// WithdrawFromPot moves money from a pot back to the balance.
//
// The amount must be positive and must not exceed the money in the pot.
func WithdrawFromPot(db *gorm.DB, userID, potID uuid.UUID, amount decimal.Decimal) (Pot, Balance, error) {
	var pot Pot
	var balance Balance

	if !amount.IsPositive() {
		return pot, balance, ErrAmountNotPositive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).Where(&Pot{UserID: userID}).First(&pot, "id = ?", potID).Error
		if err != nil {
			return err
		}

		if amount.GreaterThan(pot.Total) {
			return ErrInsufficientPotFunds
		}

		pot.Total = pot.Total.Sub(amount)
		err = tx.Model(&pot).Update("total", pot.Total).Error
		if err != nil {
			return err
		}

		balance, err = UserBalance(lockForUpdate(tx), userID)
		if err != nil {
			return err
		}

		balance.Current = balance.Current.Add(amount)
		return tx.Model(&balance).Update("current", balance.Current).Error
	})
	if err != nil {
		return Pot{}, Balance{}, transactionError(err)
	}

	return pot, balance, nil
}

// DeletePot removes a pot and refunds its total to the balance.
//
// Refund and deletion happen in the same database transaction, so a
// concurrent read can never see the pot gone without the balance
// reflecting the refund. The refunded amount and the new balance are
// returned.
func DeletePot(db *gorm.DB, userID, potID uuid.UUID) (decimal.Decimal, Balance, error) {
	var pot Pot
	var balance Balance

	err := db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).Where(&Pot{UserID: userID}).First(&pot, "id = ?", potID).Error
		if err != nil {
			return err
		}

		balance, err = UserBalance(lockForUpdate(tx), userID)
		if err != nil {
			return err
		}

		balance.Current = balance.Current.Add(pot.Total)
		err = tx.Model(&balance).Update("current", balance.Current).Error
		if err != nil {
			return err
		}

		return tx.Delete(&pot).Error
	})
	if err != nil {
		return decimal.Zero, Balance{}, transactionError(err)
	}

	return pot.Total, balance, nil
}
