package rupiq

import (
	"testing"

	"github.com/shopspring/decimal"
)

func august() Date { return NewDate(2025, 8, 15) }

func sampleIncomes() []Income {
	return []Income{
		{ID: "i1", Date: NewDate(2025, 8, 1), Category: IncomeSalary, Amount: inr(50000)},
		{ID: "i2", Date: NewDate(2025, 8, 20), Category: IncomeFreelance, Amount: inr(10000)},
		{ID: "i3", Date: NewDate(2025, 7, 1), Category: IncomeSalary, Amount: inr(50000)},
	}
}

func sampleExpenses() []Expense {
	return []Expense{
		{ID: "e1", Date: NewDate(2025, 8, 2), Category: CategoryFood, Type: Variable, Amount: inr(3000)},
		{ID: "e2", Date: NewDate(2025, 8, 5), Category: CategoryAccommodation, Type: Fixed, Amount: inr(15000)},
		{ID: "e3", Date: NewDate(2025, 8, 15), Category: CategoryFood, Type: Variable, Amount: inr(2000)},
		{ID: "e4", Date: NewDate(2025, 7, 10), Category: CategoryShopping, Type: Variable, Amount: inr(4000)},
	}
}

func TestMonthlyFigures(t *testing.T) {
	if got := MonthlyIncome(sampleIncomes(), august()); !got.Equal(inr(60000)) {
		t.Errorf("monthly income: got %s, want 60000", got)
	}
	if got := MonthlyExpenses(sampleExpenses(), august()); !got.Equal(inr(20000)) {
		t.Errorf("monthly expenses: got %s, want 20000", got)
	}
}

func TestSpentOn(t *testing.T) {
	expenses := sampleExpenses()
	// Only the variable expense of the day counts against the budget.
	expenses = append(expenses, Expense{ID: "e5", Date: NewDate(2025, 8, 15), Category: CategoryUtilities, Type: Fixed, Amount: inr(999)})
	if got := SpentOn(expenses, NewDate(2025, 8, 15)); !got.Equal(inr(2000)) {
		t.Errorf("spent on the day: got %s, want 2000", got)
	}
}

func TestSavingsRate(t *testing.T) {
	got := SavingsRate(inr(60000), inr(20000))
	if want := decimal.NewFromFloat(66.7); !got.Round(1).Equal(want) {
		t.Errorf("savings rate: got %s, want %s", got.Round(1), want)
	}
	if !SavingsRate(inr(0), inr(100)).IsZero() {
		t.Error("savings rate without income is not zero")
	}
}

func TestDebtToIncome(t *testing.T) {
	got := DebtToIncome(inr(30000), inr(60000))
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("debt-to-income: got %s, want 50", got)
	}
	if !DebtToIncome(inr(30000), inr(0)).IsZero() {
		t.Error("debt-to-income without income is not zero")
	}
}

func TestNetWorth(t *testing.T) {
	investments := []Investment{
		{ID: "v1", CurrentValue: inr(100000)},
		{ID: "v2", CurrentValue: inr(25000)},
	}
	got := NetWorth(investments, inr(40000), inr(30000))
	if !got.Equal(inr(135000)) {
		t.Errorf("net worth: got %s, want 135000", got)
	}
}

func TestByCategory(t *testing.T) {
	rows := ByCategory(sampleExpenses(), august())
	if len(rows) != 2 {
		t.Fatalf("got %d categories, want 2", len(rows))
	}
	// Sorted by total, biggest first.
	if rows[0].Category != CategoryAccommodation || !rows[0].Total.Equal(inr(15000)) {
		t.Errorf("top category: got %s %s", rows[0].Category, rows[0].Total)
	}
	if rows[1].Category != CategoryFood || !rows[1].Total.Equal(inr(5000)) {
		t.Errorf("second category: got %s %s", rows[1].Category, rows[1].Total)
	}
}

func TestTrend(t *testing.T) {
	investments := []Investment{
		{ID: "v1", Date: NewDate(2025, 7, 5), AmountInvested: inr(5000), CurrentValue: inr(5100)},
	}
	figures := Trend(sampleIncomes(), sampleExpenses(), investments, august(), 3)
	if len(figures) != 3 {
		t.Fatalf("got %d months, want 3", len(figures))
	}
	// Oldest first, ending with the requested month.
	if figures[0].Month != NewDate(2025, 6, 1) {
		t.Errorf("first month: got %s, want 2025-06-01", figures[0].Month)
	}
	if figures[2].Month != NewDate(2025, 8, 1) {
		t.Errorf("last month: got %s, want 2025-08-01", figures[2].Month)
	}
	if !figures[1].Savings.Equal(inr(46000)) {
		t.Errorf("July savings: got %s, want 46000", figures[1].Savings)
	}
	if !figures[2].Income.Equal(inr(60000)) {
		t.Errorf("August income: got %s, want 60000", figures[2].Income)
	}
	if !figures[1].Invested.Equal(inr(5000)) {
		t.Errorf("July invested: got %s, want 5000", figures[1].Invested)
	}
}
