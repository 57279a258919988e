package rupiq

import (
	"sort"

	"github.com/shopspring/decimal"
)

// This file derives the figures shown by the summary command: monthly
// income and spending, savings rate, net worth, debt ratio and category
// breakdowns. Everything here is a pure function of the record slices.

var oneHundred = decimal.NewFromInt(100)

// MonthlyIncome sums the income records falling in the month of the given
// date.
func MonthlyIncome(incomes []Income, in Date) Money {
	var total Money
	for _, r := range incomes {
		if r.Date.SameMonth(in) {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// MonthlyExpenses sums the expense records falling in the month of the given
// date. Split expenses count only the owner's own share, which is what the
// Amount field holds.
func MonthlyExpenses(expenses []Expense, in Date) Money {
	var total Money
	for _, e := range expenses {
		if e.Date.SameMonth(in) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// SpentOn sums the variable expenses recorded on the given day, the figure
// compared against the daily budget.
func SpentOn(expenses []Expense, day Date) Money {
	var total Money
	for _, e := range expenses {
		if e.Date == day && e.Type == Variable {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// SavingsRate returns (income − expenses) / income as a percentage. A month
// with no income has no meaningful rate and returns zero.
func SavingsRate(income, expenses Money) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).value.Div(income.value).Mul(oneHundred)
}

// DebtToIncome returns total debt / monthly income as a percentage, zero
// when there is no income.
func DebtToIncome(debt, income Money) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return debt.value.Div(income.value).Mul(oneHundred)
}

// NetWorth aggregates the current value of all investments plus the month's
// net savings, minus the recorded total debt.
func NetWorth(investments []Investment, savings, debt Money) Money {
	total := savings
	for _, v := range investments {
		total = total.Add(v.CurrentValue)
	}
	return total.Sub(debt)
}

// CategoryTotal is one row of a per-category spending breakdown.
type CategoryTotal struct {
	Category ExpenseCategory
	Total    Money
}

// ByCategory aggregates the month's expenses per category, sorted by total
// descending so the biggest spending bucket comes first.
func ByCategory(expenses []Expense, in Date) []CategoryTotal {
	byCat := make(map[ExpenseCategory]int)
	var rows []CategoryTotal
	for _, e := range expenses {
		if !e.Date.SameMonth(in) {
			continue
		}
		if i, ok := byCat[e.Category]; ok {
			rows[i].Total = rows[i].Total.Add(e.Amount)
			continue
		}
		byCat[e.Category] = len(rows)
		rows = append(rows, CategoryTotal{Category: e.Category, Total: e.Amount})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// MonthlyInvested sums the amounts invested in the month of the given date.
func MonthlyInvested(investments []Investment, in Date) Money {
	var total Money
	for _, v := range investments {
		if v.Date.SameMonth(in) {
			total = total.Add(v.AmountInvested)
		}
	}
	return total
}

// MonthFigures are one month's headline numbers in a trend series.
type MonthFigures struct {
	Month    Date // first day of the month
	Income   Money
	Expenses Money
	Savings  Money
	Invested Money
}

// Trend computes the last n months of income, spending and investing,
// oldest first, ending with the month of the given date.
func Trend(incomes []Income, expenses []Expense, investments []Investment, until Date, n int) []MonthFigures {
	figures := make([]MonthFigures, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := until.StartOfMonth().AddMonth(-i)
		in := MonthlyIncome(incomes, month)
		out := MonthlyExpenses(expenses, month)
		figures = append(figures, MonthFigures{
			Month:    month,
			Income:   in,
			Expenses: out,
			Savings:  in.Sub(out),
			Invested: MonthlyInvested(investments, month),
		})
	}
	return figures
}
