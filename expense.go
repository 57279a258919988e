package rupiq

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory is a typed string for classifying expenses.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "Food & Groceries"
	CategoryAccommodation ExpenseCategory = "Accommodation"
	CategoryTransport     ExpenseCategory = "Transportation"
	CategoryUtilities     ExpenseCategory = "Utilities"
	CategoryHealthcare    ExpenseCategory = "Healthcare"
	CategoryEntertainment ExpenseCategory = "Entertainment"
	CategoryShopping      ExpenseCategory = "Shopping"
	CategoryEducation     ExpenseCategory = "Education"
	CategoryDebtRepayment ExpenseCategory = "Debt Repayment"
	CategoryPersonalCare  ExpenseCategory = "Personal Care"
	CategoryOtherExpense  ExpenseCategory = "Other"
)

// ExpenseCategories lists all known categories, in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood, CategoryAccommodation, CategoryTransport, CategoryUtilities,
	CategoryHealthcare, CategoryEntertainment, CategoryShopping,
	CategoryEducation, CategoryDebtRepayment, CategoryPersonalCare,
	CategoryOtherExpense,
}

// ParseExpenseCategory matches a string against the known categories,
// case-insensitively.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	for _, c := range ExpenseCategories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category %q", s)
}

// ExpenseType distinguishes recurring fixed costs from variable spending.
type ExpenseType string

const (
	Fixed    ExpenseType = "Fixed"
	Variable ExpenseType = "Variable"
)

// ParseExpenseType matches a string against the two expense types.
func ParseExpenseType(s string) (ExpenseType, error) {
	switch {
	case strings.EqualFold(s, string(Fixed)):
		return Fixed, nil
	case strings.EqualFold(s, string(Variable)):
		return Variable, nil
	default:
		return "", fmt.Errorf("unknown expense type %q, want %q or %q", s, Fixed, Variable)
	}
}

// SplitDetail is one friend's share of the original total of a split bill.
type SplitDetail struct {
	FriendName string
	Amount     Money
}

// Expense is one expense record.
//
// When IsSplit is true, Amount holds the owner's own share (not the bill
// total) and OriginalTotalAmount holds the pre-split grand total. Every
// mutation touching the split fields must be followed by a ledger
// synchronization (see Ledger.SyncExpense).
type Expense struct {
	ID                  string
	Date                Date
	Category            ExpenseCategory
	Type                ExpenseType
	Amount              Money
	Description         string
	IsSplit             bool
	SplitDetails        []SplitDetail
	OriginalTotalAmount Money // zero unless IsSplit
}

// NewExpense creates a plain (unsplit) expense record with a fresh id.
func NewExpense(day Date, category ExpenseCategory, typ ExpenseType, description string, amount Money) (Expense, error) {
	if !amount.IsPositive() {
		return Expense{}, fmt.Errorf("expense amount must be positive, got %s", amount)
	}
	return Expense{
		ID:          uuid.NewString(),
		Date:        day,
		Category:    category,
		Type:        typ,
		Amount:      amount,
		Description: description,
	}, nil
}

// NewSplitExpense creates a split expense record from the total bill amount
// and the friends' shares of it. It performs the form-level validation that
// must pass before any state is mutated:
//
//   - the total bill amount must be positive,
//   - every split participant must have a name,
//   - no friend's share may be negative,
//   - the friends' shares may not exceed the total (tolerance 0.01).
//
// The owner's own share is derived as total − Σ friends' shares, floored at
// zero; a derivation below −0.01 is rejected rather than stored. Detail
// rows that are entirely blank (no name, zero amount) are dropped.
func NewSplitExpense(day Date, category ExpenseCategory, typ ExpenseType, description string, total Money, details []SplitDetail) (Expense, error) {
	if !total.IsPositive() {
		return Expense{}, fmt.Errorf("total expense amount must be positive, got %s", total)
	}

	kept := make([]SplitDetail, 0, len(details))
	for _, d := range details {
		if strings.TrimSpace(d.FriendName) == "" && d.Amount.IsZero() {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == 0 {
		return Expense{}, errors.New("a split expense needs at least one friend and their share")
	}

	friendsShares := M(0, total.Currency())
	for _, d := range kept {
		if strings.TrimSpace(d.FriendName) == "" {
			return Expense{}, errors.New("every split participant must have a name")
		}
		if d.Amount.IsNegative() {
			return Expense{}, fmt.Errorf("split amount for %s cannot be negative", d.FriendName)
		}
		friendsShares = friendsShares.Add(d.Amount)
	}

	if friendsShares.Sub(total).value.GreaterThan(shareTolerance) {
		return Expense{}, fmt.Errorf("sum of friends' shares (%s) cannot exceed the total expense amount (%s)", friendsShares, total)
	}

	myShare := total.Sub(friendsShares)
	if myShare.value.LessThan(shareTolerance.Neg()) {
		return Expense{}, fmt.Errorf("your calculated share (%s) is negative; adjust the total or the friends' shares", myShare)
	}
	if myShare.IsNegative() {
		myShare = M(0, total.Currency())
	}

	return Expense{
		ID:                  uuid.NewString(),
		Date:                day,
		Category:            category,
		Type:                typ,
		Amount:              myShare,
		Description:         description,
		IsSplit:             true,
		SplitDetails:        kept,
		OriginalTotalAmount: total,
	}, nil
}

// MarshalJSON implements the json.Marshaler interface for Expense.
func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("date", e.Date)
	w.Append("category", e.Category)
	w.Append("type", e.Type)
	w.Optional("currency", e.Amount.Currency())
	w.Append("amount", e.Amount.value.Round(2))
	w.Optional("description", e.Description)
	w.Optional("isSplit", e.IsSplit)
	if e.IsSplit {
		details := make([]json.RawMessage, 0, len(e.SplitDetails))
		for _, d := range e.SplitDetails {
			var dw jsonObjectWriter
			dw.Append("friendName", d.FriendName)
			dw.Append("amount", d.Amount.value.Round(2))
			raw, err := dw.MarshalJSON()
			if err != nil {
				return nil, err
			}
			details = append(details, raw)
		}
		w.Append("splitDetails", details)
		w.Append("originalTotalAmount", e.OriginalTotalAmount.value.Round(2))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Expense.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID           string          `json:"id"`
		Date         Date            `json:"date"`
		Category     ExpenseCategory `json:"category"`
		Type         ExpenseType     `json:"type"`
		Currency     string          `json:"currency"`
		Amount       decimal.Decimal `json:"amount"`
		Description  string          `json:"description"`
		IsSplit      bool            `json:"isSplit"`
		SplitDetails []struct {
			FriendName string          `json:"friendName"`
			Amount     decimal.Decimal `json:"amount"`
		} `json:"splitDetails"`
		OriginalTotalAmount decimal.Decimal `json:"originalTotalAmount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	e.ID = temp.ID
	e.Date = temp.Date
	e.Category = temp.Category
	e.Type = temp.Type
	e.Amount = M(temp.Amount, temp.Currency)
	e.Description = temp.Description
	e.IsSplit = temp.IsSplit
	e.SplitDetails = e.SplitDetails[:0]
	for _, d := range temp.SplitDetails {
		e.SplitDetails = append(e.SplitDetails, SplitDetail{FriendName: d.FriendName, Amount: M(d.Amount, temp.Currency)})
	}
	if temp.IsSplit {
		e.OriginalTotalAmount = M(temp.OriginalTotalAmount, temp.Currency)
	}
	return nil
}

var _ json.Marshaler = Expense{}
var _ json.Unmarshaler = (*Expense)(nil)
