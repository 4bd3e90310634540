// Package recurring derives recurring bills from the transaction
// ledger. A bill is recognized by its repeating payee name and
// classified as paid, upcoming or due soon relative to an explicit
// reference date, never an implicit "now".
package recurring

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DueSoonDays is the size of the "due soon" window. A bill is due soon
// when it is unpaid and due within this many days of the reference date.
const DueSoonDays = 5

// Bill is one recurring payment obligation, derived from all recurring
// transactions with the same payee name.
type Bill struct {
	Name         string          `json:"name" example:"Elevate Education"`          // The payee
	Avatar       string          `json:"avatar" example:"elevate-education.jpg"`    // Image of the most recent payment
	Category     string          `json:"category" example:"Bills"`                  // Category of the most recent payment
	Amount       decimal.Decimal `json:"amount" example:"-250"`                     // Amount of the most recent payment
	LastDate     time.Time       `json:"lastDate" example:"2024-08-04T00:00:00Z"`   // Date of the most recent payment
	NextDueDate  time.Time       `json:"nextDueDate" example:"2024-09-04T00:00:00Z"` // When the next payment is expected
	DaysUntilDue int             `json:"daysUntilDue" example:"16"`                 // Days between the reference date and the next due date
	IsPaid       bool            `json:"isPaid" example:"true"`                     // Was the bill paid within the reference month?
	IsDueSoon    bool            `json:"isDueSoon" example:"false"`                 // Is the bill unpaid and due within the next few days?
}

// Summary sums the absolute amounts of all bills per classification
// bucket.
type Summary struct {
	Paid     decimal.Decimal `json:"paid" example:"190"`    // Total of bills paid in the reference month
	Upcoming decimal.Decimal `json:"upcoming" example:"194.98"` // Total of bills not yet paid
	DueSoon  decimal.Decimal `json:"dueSoon" example:"59.98"`   // Total of unpaid bills inside the due soon window
}

// Classify groups recurring transactions by payee name and derives one
// bill per payee.
//
// The next due date is the last payment date advanced by exactly one
// calendar month. When the target month is shorter than the day of
// month of the last payment, the date clamps to the last day of that
// month, so a payment on January 31st is next due on February 29th in a
// leap year.
//
// The reference date determines both the reporting month for the paid
// check and the distance used for the due soon window.
func Classify(transactions []models.Transaction, reference time.Time) []Bill {
	period := types.MonthOf(reference.In(time.UTC))

	// Group by payee, keeping first-seen order of the groups
	names := make([]string, 0)
	groups := make(map[string][]models.Transaction)
	for _, t := range transactions {
		if !t.Recurring {
			continue
		}

		if _, ok := groups[t.Name]; !ok {
			names = append(names, t.Name)
		}
		groups[t.Name] = append(groups[t.Name], t)
	}

	bills := make([]Bill, 0, len(names))
	for _, name := range names {
		group := groups[name]

		latest := group[0]
		paid := false
		for _, t := range group {
			if t.Date.After(latest.Date) {
				latest = t
			}

			if period.Contains(t.Date) {
				paid = true
			}
		}

		nextDue := nextDueDate(latest.Date)
		days := daysBetween(reference.In(time.UTC), nextDue)

		bills = append(bills, Bill{
			Name:         name,
			Avatar:       latest.Avatar,
			Category:     latest.Category,
			Amount:       latest.Amount,
			LastDate:     latest.Date,
			NextDueDate:  nextDue,
			DaysUntilDue: days,
			IsPaid:       paid,
			IsDueSoon:    !paid && days >= 0 && days <= DueSoonDays,
		})
	}

	return bills
}

// nextDueDate advances a payment date by one calendar month, clamping
// the day of month to the length of the target month.
func nextDueDate(last time.Time) time.Time {
	month := types.MonthOf(last.In(time.UTC)).AddDate(0, 1)
	return month.Day(last.In(time.UTC).Day())
}

// daysBetween returns the number of full or partial days from the
// reference date to the due date, rounded up.
func daysBetween(reference, due time.Time) int {
	return int(math.Ceil(due.Sub(reference).Hours() / 24))
}

// Summarize adds up the absolute amounts of the bills per bucket. An
// empty bill list produces a zero-valued summary.
func Summarize(bills []Bill) Summary {
	summary := Summary{
		Paid:     decimal.Zero,
		Upcoming: decimal.Zero,
		DueSoon:  decimal.Zero,
	}

	for _, bill := range bills {
		amount := bill.Amount.Abs()

		if bill.IsPaid {
			summary.Paid = summary.Paid.Add(amount)
		} else {
			summary.Upcoming = summary.Upcoming.Add(amount)
		}

		if bill.IsDueSoon {
			summary.DueSoon = summary.DueSoon.Add(amount)
		}
	}

	return summary
}

// Search filters bills by a case-insensitive substring match on the
// payee name. An empty search term keeps all bills.
func Search(bills []Bill, term string) []Bill {
	if term == "" {
		return bills
	}

	term = strings.ToLower(term)

	matches := make([]Bill, 0, len(bills))
	for _, bill := range bills {
		if strings.Contains(strings.ToLower(bill.Name), term) {
			matches = append(matches, bill)
		}
	}

	return matches
}

// SortKey determines the order of a bill list.
type SortKey string

const (
	SortLatest  SortKey = "latest"  // Most recent payment first
	SortOldest  SortKey = "oldest"  // Oldest payment first
	SortNameAZ  SortKey = "a-z"     // Payee name ascending
	SortNameZA  SortKey = "z-a"     // Payee name descending
	SortHighest SortKey = "highest" // Largest absolute amount first
	SortLowest  SortKey = "lowest"  // Smallest absolute amount first
)

// Valid reports whether the sort key is known.
func (k SortKey) Valid() bool {
	switch k {
	case SortLatest, SortOldest, SortNameAZ, SortNameZA, SortHighest, SortLowest:
		return true
	}

	return false
}

// Sort orders the bills by the given key. The sort is stable, bills
// that compare equal keep their previous order.
func Sort(bills []Bill, key SortKey) {
	switch key {
	case SortLatest:
		slices.SortStableFunc(bills, func(a, b Bill) int {
			return b.LastDate.Compare(a.LastDate)
		})
	case SortOldest:
		slices.SortStableFunc(bills, func(a, b Bill) int {
			return a.LastDate.Compare(b.LastDate)
		})
	case SortNameAZ:
		slices.SortStableFunc(bills, func(a, b Bill) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortNameZA:
		slices.SortStableFunc(bills, func(a, b Bill) int {
			return strings.Compare(strings.ToLower(b.Name), strings.ToLower(a.Name))
		})
	case SortHighest:
		slices.SortStableFunc(bills, func(a, b Bill) int {
			return b.Amount.Abs().Cmp(a.Amount.Abs())
		})
	case SortLowest:
		slices.SortStableFunc(bills, func(a, b Bill) int {
			return a.Amount.Abs().Cmp(b.Amount.Abs())
		})
	}
}
