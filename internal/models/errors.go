package models

import (
	"errors"
)

// General errors. ErrGeneral covers every infrastructure failure where
// we cannot give the user a more helpful message; callers may retry
// these, all other errors are final.
var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Transfer engine errors
var (
	ErrAmountNotPositive    = errors.New("the amount must be positive")
	ErrInsufficientBalance  = errors.New("the amount exceeds the current balance")
	ErrInsufficientPotFunds = errors.New("the amount exceeds the money in the pot")
)

// Validation errors
var (
	ErrNameMissing        = errors.New("the name must be set")
	ErrCategoryMissing    = errors.New("the category must be set")
	ErrTargetNotPositive  = errors.New("the target must be positive")
	ErrMaximumNotPositive = errors.New("the maximum must be positive")
)

// Uniqueness violations, translated from UNIQUE constraint errors
// by the createUpdateCallback
var (
	ErrPotNameExists        = errors.New("a pot with this name already exists")
	ErrBudgetCategoryExists = errors.New("a budget for this category already exists")
	ErrBalanceExists        = errors.New("a balance already exists for this user")
)
