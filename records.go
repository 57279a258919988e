package rupiq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// This file holds the out-of-core record types: incomes, investments,
// financial goals, to-do tasks, the daily budget and the user's debts.
// They are consumed read-only by the AI suggestion agent and managed by
// their own subcommands.

// IncomeCategory is a typed string for classifying income records.
type IncomeCategory string

const (
	IncomeSalary     IncomeCategory = "Salary"
	IncomeRental     IncomeCategory = "Rental Income"
	IncomeBusiness   IncomeCategory = "Business Profit"
	IncomeInvestment IncomeCategory = "Investment Returns"
	IncomeFreelance  IncomeCategory = "Freelance"
	IncomeOther      IncomeCategory = "Other"
)

// IncomeCategories lists all known income categories, in display order.
var IncomeCategories = []IncomeCategory{
	IncomeSalary, IncomeRental, IncomeBusiness, IncomeInvestment,
	IncomeFreelance, IncomeOther,
}

// ParseIncomeCategory matches a string against the known income categories.
func ParseIncomeCategory(s string) (IncomeCategory, error) {
	for _, c := range IncomeCategories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown income category %q", s)
}

// Income is one income record.
type Income struct {
	ID          string
	Date        Date
	Category    IncomeCategory
	Amount      Money
	Description string
}

// NewIncome creates an income record with a fresh id.
func NewIncome(day Date, category IncomeCategory, description string, amount Money) (Income, error) {
	if !amount.IsPositive() {
		return Income{}, fmt.Errorf("income amount must be positive, got %s", amount)
	}
	return Income{ID: uuid.NewString(), Date: day, Category: category, Amount: amount, Description: description}, nil
}

func (r Income) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("date", r.Date)
	w.Append("category", r.Category)
	w.Optional("currency", r.Amount.Currency())
	w.Append("amount", r.Amount.value.Round(2))
	w.Optional("description", r.Description)
	return w.MarshalJSON()
}

func (r *Income) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Category    IncomeCategory  `json:"category"`
		Currency    string          `json:"currency"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*r = Income{ID: temp.ID, Date: temp.Date, Category: temp.Category,
		Amount: M(temp.Amount, temp.Currency), Description: temp.Description}
	return nil
}

// InvestmentType is a typed string for classifying investments.
type InvestmentType string

const (
	InvestStocks      InvestmentType = "Stocks"
	InvestMutualFunds InvestmentType = "Mutual Funds (SIP)"
	InvestFD          InvestmentType = "Fixed Deposit (FD)"
	InvestCrypto      InvestmentType = "Cryptocurrency"
	InvestP2P         InvestmentType = "P2P Lending"
	InvestRealEstate  InvestmentType = "Real Estate"
	InvestGold        InvestmentType = "Gold"
	InvestOther       InvestmentType = "Other"
)

// InvestmentTypes lists all known investment types, in display order.
var InvestmentTypes = []InvestmentType{
	InvestStocks, InvestMutualFunds, InvestFD, InvestCrypto, InvestP2P,
	InvestRealEstate, InvestGold, InvestOther,
}

// ParseInvestmentType matches a string against the known investment types.
func ParseInvestmentType(s string) (InvestmentType, error) {
	for _, t := range InvestmentTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown investment type %q", s)
}

// Investment is one investment record. CurrentValue is user-entered; there
// is no price feed.
type Investment struct {
	ID             string
	Date           Date
	Type           InvestmentType
	Name           string // e.g. stock ticker, fund name
	AmountInvested Money
	CurrentValue   Money
	Platform       string
}

// NewInvestment creates an investment record with a fresh id.
func NewInvestment(day Date, typ InvestmentType, name string, invested, current Money, platform string) (Investment, error) {
	if name == "" {
		return Investment{}, fmt.Errorf("investment name is missing")
	}
	if !invested.IsPositive() {
		return Investment{}, fmt.Errorf("invested amount must be positive, got %s", invested)
	}
	if current.IsNegative() {
		return Investment{}, fmt.Errorf("current value cannot be negative, got %s", current)
	}
	return Investment{ID: uuid.NewString(), Date: day, Type: typ, Name: name,
		AmountInvested: invested, CurrentValue: current, Platform: platform}, nil
}

func (r Investment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("date", r.Date)
	w.Append("type", r.Type)
	w.Append("name", r.Name)
	w.Optional("currency", r.AmountInvested.Currency())
	w.Append("amountInvested", r.AmountInvested.value.Round(2))
	w.Append("currentValue", r.CurrentValue.value.Round(2))
	w.Optional("platform", r.Platform)
	return w.MarshalJSON()
}

func (r *Investment) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID             string          `json:"id"`
		Date           Date            `json:"date"`
		Type           InvestmentType  `json:"type"`
		Name           string          `json:"name"`
		Currency       string          `json:"currency"`
		AmountInvested decimal.Decimal `json:"amountInvested"`
		CurrentValue   decimal.Decimal `json:"currentValue"`
		Platform       string          `json:"platform"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*r = Investment{ID: temp.ID, Date: temp.Date, Type: temp.Type, Name: temp.Name,
		AmountInvested: M(temp.AmountInvested, temp.Currency),
		CurrentValue:   M(temp.CurrentValue, temp.Currency), Platform: temp.Platform}
	return nil
}

// Goal is a financial goal with a target amount and date.
type Goal struct {
	ID            string
	Name          string
	TargetAmount  Money
	CurrentAmount Money
	TargetDate    Date
	Description   string
}

// NewGoal creates a goal with a fresh id.
func NewGoal(name string, target, current Money, targetDate Date, description string) (Goal, error) {
	if name == "" {
		return Goal{}, fmt.Errorf("goal name is missing")
	}
	if !target.IsPositive() {
		return Goal{}, fmt.Errorf("goal target must be positive, got %s", target)
	}
	if current.IsNegative() {
		return Goal{}, fmt.Errorf("saved amount cannot be negative, got %s", current)
	}
	return Goal{ID: uuid.NewString(), Name: name, TargetAmount: target,
		CurrentAmount: current, TargetDate: targetDate, Description: description}, nil
}

// Remaining returns the amount still to be saved, floored at zero.
func (g Goal) Remaining() Money {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return M(0, g.TargetAmount.Currency())
	}
	return r
}

func (g Goal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", g.ID)
	w.Append("name", g.Name)
	w.Optional("currency", g.TargetAmount.Currency())
	w.Append("targetAmount", g.TargetAmount.value.Round(2))
	w.Append("currentAmount", g.CurrentAmount.value.Round(2))
	w.Append("targetDate", g.TargetDate)
	w.Optional("description", g.Description)
	return w.MarshalJSON()
}

func (g *Goal) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Currency      string          `json:"currency"`
		TargetAmount  decimal.Decimal `json:"targetAmount"`
		CurrentAmount decimal.Decimal `json:"currentAmount"`
		TargetDate    Date            `json:"targetDate"`
		Description   string          `json:"description"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*g = Goal{ID: temp.ID, Name: temp.Name,
		TargetAmount:  M(temp.TargetAmount, temp.Currency),
		CurrentAmount: M(temp.CurrentAmount, temp.Currency),
		TargetDate:    temp.TargetDate, Description: temp.Description}
	return nil
}

// Task is one to-do item.
type Task struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Done    bool   `json:"isCompleted"`
	DueDate Date   `json:"dueDate,omitzero"`
}

// NewTask creates a task with a fresh id.
func NewTask(text string, due Date) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, fmt.Errorf("task text is missing")
	}
	return Task{ID: uuid.NewString(), Text: text, DueDate: due}, nil
}

// DailyBudget is the owner's self-imposed cap on variable spending per day.
type DailyBudget struct {
	Amount Money
}

func (b DailyBudget) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", b.Amount.Currency())
	w.Append("amount", b.Amount.value.Round(2))
	return w.MarshalJSON()
}

func (b *DailyBudget) UnmarshalJSON(data []byte) error {
	var temp struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	b.Amount = M(temp.Amount, temp.Currency)
	return nil
}

// UserDebts is the owner's total outstanding debt, a single figure.
type UserDebts struct {
	TotalDebt Money
}

func (d UserDebts) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", d.TotalDebt.Currency())
	w.Append("totalDebt", d.TotalDebt.value.Round(2))
	return w.MarshalJSON()
}

func (d *UserDebts) UnmarshalJSON(data []byte) error {
	var temp struct {
		Currency  string          `json:"currency"`
		TotalDebt decimal.Decimal `json:"totalDebt"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	d.TotalDebt = M(temp.TotalDebt, temp.Currency)
	return nil
}

// Settings are the application-level preferences.
type Settings struct {
	Currency string `json:"currency"`
}

// DefaultCurrency is used when the settings key is absent.
const DefaultCurrency = "INR"
