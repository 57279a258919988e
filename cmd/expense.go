package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/rupiq/rupiq"
)

// shareFlag is a repeatable -with flag holding "name:amount" pairs.
type shareFlag []struct {
	name   string
	amount float64
}

func (s *shareFlag) String() string {
	parts := make([]string, 0, len(*s))
	for _, d := range *s {
		parts = append(parts, fmt.Sprintf("%s:%v", d.name, d.amount))
	}
	return strings.Join(parts, ",")
}

func (s *shareFlag) Set(value string) error {
	name, amountStr, found := strings.Cut(value, ":")
	if !found {
		return fmt.Errorf("want name:amount, got %q", value)
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return fmt.Errorf("invalid amount in %q: %w", value, err)
	}
	*s = append(*s, struct {
		name   string
		amount float64
	}{strings.TrimSpace(name), amount})
	return nil
}

type expenseCmd struct {
	date     string
	category string
	typ      string
	amount   float64
	split    bool
	with     shareFlag
	id       string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "add or update an expense, or list them" }
func (*expenseCmd) Usage() string {
	return `rq expense [-d <date>] [-c <category>] [-t <type>] -a <amount> [-split -with <name:amount>...] [-id <id>] [description...]

  Adds an expense. With -split, -a is the total bill and each -with flag
  is one friend's share of it; your own share is derived. With -id, the
  existing expense is updated in place. Without -a, lists the month's
  expenses.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rupiq.Today().String(), "Date of the expense. See 'rq topic dates' for formats.")
	f.StringVar(&c.category, "c", string(rupiq.CategoryOtherExpense), "Expense category.")
	f.StringVar(&c.typ, "t", string(rupiq.Variable), "Expense type: Fixed or Variable.")
	f.Float64Var(&c.amount, "a", 0, "Amount. With -split, the total bill amount.")
	f.BoolVar(&c.split, "split", false, "Split the bill with friends.")
	f.Var(&c.with, "with", "A friend's share as name:amount. Repeatable, requires -split.")
	f.StringVar(&c.id, "id", "", "Id of an existing expense to update.")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	on, err := rupiq.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}

	if c.amount == 0 && c.id == "" {
		return listExpenses(t, on)
	}

	category, err := rupiq.ParseExpenseCategory(c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	typ, err := rupiq.ParseExpenseType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	amount, err := money(t, c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	description := strings.Join(f.Args(), " ")

	var e rupiq.Expense
	if c.split {
		details := make([]rupiq.SplitDetail, 0, len(c.with))
		for _, w := range c.with {
			details = append(details, rupiq.SplitDetail{FriendName: w.name, Amount: rupiq.M(w.amount, amount.Currency())})
		}
		e, err = rupiq.NewSplitExpense(on, category, typ, description, amount, details)
	} else {
		if len(c.with) > 0 {
			fmt.Fprintln(os.Stderr, "Error: -with requires -split.")
			return subcommands.ExitUsageError
		}
		e, err = rupiq.NewExpense(on, category, typ, description, amount)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	if c.id != "" {
		// Update in place under the existing id.
		expenses, err := t.Expenses()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		found := false
		for _, x := range expenses {
			if x.ID == c.id {
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: no expense with id %q\n", c.id)
			return subcommands.ExitFailure
		}
		e.ID = c.id
	}

	if err := t.PutExpense(e); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if e.IsSplit {
		fmt.Printf("Recorded split expense %s: your share %s of %s total.\n", e.ID, e.Amount, e.OriginalTotalAmount)
	} else {
		fmt.Printf("Recorded expense %s: %s.\n", e.ID, e.Amount)
	}
	return subcommands.ExitSuccess
}

func listExpenses(t *rupiq.Tracker, in rupiq.Date) subcommands.ExitStatus {
	expenses, err := t.Expenses()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Expenses in %s\n\n", in.Format("January 2006"))
	fmt.Fprintln(&b, "| Date | Category | Type | Amount | Description | Id |")
	fmt.Fprintln(&b, "|---|---|---|--:|---|---|")
	for _, e := range expenses {
		if !e.Date.SameMonth(in) {
			continue
		}
		description := e.Description
		if e.IsSplit {
			description += fmt.Sprintf(" (split, %s total)", e.OriginalTotalAmount)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", e.Date, e.Category, e.Type, e.Amount, description, e.ID)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", rupiq.MonthlyExpenses(expenses, in))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete an expense and its shared ledger trace" }
func (*rmCmd) Usage() string {
	return `rq rm <expense-id>...

  Deletes expenses by id. Any split event mirrored from the expense is
  removed from the shared ledger as well.
`
}

func (*rmCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected at least one expense id.")
		return subcommands.ExitUsageError
	}
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	for _, id := range f.Args() {
		if err := t.DeleteExpense(id); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted expense %s.\n", id)
	}
	return subcommands.ExitSuccess
}
