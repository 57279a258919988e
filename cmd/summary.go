package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rupiq/rupiq"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date   string
	months int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the monthly financial summary" }
func (*summaryCmd) Usage() string {
	return `rq summary [-d <date>] [-months <n>]

  Displays the month's income, spending, savings rate, net worth,
  category breakdown and an n-month trend.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rupiq.Today().String(), "Month to summarize. See 'rq topic dates' for formats.")
	f.IntVar(&c.months, "months", 6, "Number of months in the trend table.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := rupiq.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}

	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	expenses, err := t.Expenses()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	incomes, err := t.Incomes()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	investments, err := t.Investments()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	debts, err := t.UserDebts()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	income := rupiq.MonthlyIncome(incomes, on)
	spent := rupiq.MonthlyExpenses(expenses, on)
	savings := income.Sub(spent)

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary for %s\n\n", on.Format("January 2006"))
	fmt.Fprintf(&b, "- Income: %s\n", income)
	fmt.Fprintf(&b, "- Expenses: %s\n", spent)
	fmt.Fprintf(&b, "- Savings: %s (%s%% of income)\n", savings.SignedString(), rupiq.SavingsRate(income, spent).Round(1))
	fmt.Fprintf(&b, "- Net worth: %s\n", rupiq.NetWorth(investments, savings, debts.TotalDebt))
	if !debts.TotalDebt.IsZero() {
		fmt.Fprintf(&b, "- Debt-to-income: %s%%\n", rupiq.DebtToIncome(debts.TotalDebt, income).Round(1))
	}

	if cats := rupiq.ByCategory(expenses, on); len(cats) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "## By category")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Category | Spent |")
		fmt.Fprintln(&b, "|---|--:|")
		for _, ct := range cats {
			fmt.Fprintf(&b, "| %s | %s |\n", ct.Category, ct.Total)
		}
	}

	if c.months > 1 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "## Trend")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Month | Income | Expenses | Savings | Invested |")
		fmt.Fprintln(&b, "|---|--:|--:|--:|--:|")
		for _, m := range rupiq.Trend(incomes, expenses, investments, on, c.months) {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				m.Month.Format("Jan 2006"), m.Income, m.Expenses, m.Savings.SignedString(), m.Invested)
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
