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

// This file holds the subcommands for the simple record collections:
// incomes, investments, goals, to-dos, the daily budget and the debt
// figure. Each lists with no arguments and adds otherwise.

type incomeCmd struct {
	date     string
	category string
	amount   float64
	rm       string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "add, list or delete income records" }
func (*incomeCmd) Usage() string {
	return `rq income [-d <date>] [-c <category>] -a <amount> [description...]
rq income -rm <id>

  Adds an income record, or lists the month's records when -a is absent.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rupiq.Today().String(), "Date of the income.")
	f.StringVar(&c.category, "c", string(rupiq.IncomeSalary), "Income category.")
	f.Float64Var(&c.amount, "a", 0, "Amount received.")
	f.StringVar(&c.rm, "rm", "", "Id of an income record to delete.")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	incomes, err := t.Incomes()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.rm != "" {
		kept, removed := removeByID(incomes, c.rm, func(r rupiq.Income) string { return r.ID })
		if !removed {
			fmt.Fprintf(os.Stderr, "Error: no income with id %q\n", c.rm)
			return subcommands.ExitFailure
		}
		if err := t.SaveIncomes(kept); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted income %s.\n", c.rm)
		return subcommands.ExitSuccess
	}

	on, err := rupiq.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}

	if c.amount == 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "# Income in %s\n\n", on.Format("January 2006"))
		fmt.Fprintln(&b, "| Date | Category | Amount | Description | Id |")
		fmt.Fprintln(&b, "|---|---|--:|---|---|")
		for _, r := range incomes {
			if r.Date.SameMonth(on) {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", r.Date, r.Category, r.Amount, r.Description, r.ID)
			}
		}
		fmt.Fprintf(&b, "\nTotal: %s\n", rupiq.MonthlyIncome(incomes, on))
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	category, err := rupiq.ParseIncomeCategory(c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	amount, err := money(t, c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	r, err := rupiq.NewIncome(on, category, strings.Join(f.Args(), " "), amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := t.SaveIncomes(append(incomes, r)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded income %s: %s.\n", r.ID, r.Amount)
	return subcommands.ExitSuccess
}

type investCmd struct {
	date     string
	typ      string
	name     string
	amount   float64
	value    float64
	platform string
	rm       string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "add, list or delete investments" }
func (*investCmd) Usage() string {
	return `rq invest [-d <date>] [-t <type>] -n <name> -a <amount> [-v <current value>] [-platform <name>]
rq invest -rm <id>

  Adds an investment, or lists them all when -a is absent. The current
  value defaults to the invested amount; update it by re-adding with -rm
  and a fresh record, or track it with -v.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rupiq.Today().String(), "Date of the investment.")
	f.StringVar(&c.typ, "t", string(rupiq.InvestOther), "Investment type.")
	f.StringVar(&c.name, "n", "", "Name of the investment (ticker, fund, ...).")
	f.Float64Var(&c.amount, "a", 0, "Amount invested.")
	f.Float64Var(&c.value, "v", 0, "Current value. Defaults to the invested amount.")
	f.StringVar(&c.platform, "platform", "", "Platform holding the investment.")
	f.StringVar(&c.rm, "rm", "", "Id of an investment to delete.")
}

func (c *investCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	investments, err := t.Investments()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.rm != "" {
		kept, removed := removeByID(investments, c.rm, func(r rupiq.Investment) string { return r.ID })
		if !removed {
			fmt.Fprintf(os.Stderr, "Error: no investment with id %q\n", c.rm)
			return subcommands.ExitFailure
		}
		if err := t.SaveInvestments(kept); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted investment %s.\n", c.rm)
		return subcommands.ExitSuccess
	}

	if c.amount == 0 {
		var b strings.Builder
		fmt.Fprintln(&b, "# Investments")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Date | Type | Name | Invested | Current | Platform | Id |")
		fmt.Fprintln(&b, "|---|---|---|--:|--:|---|---|")
		for _, r := range investments {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				r.Date, r.Type, r.Name, r.AmountInvested, r.CurrentValue, r.Platform, r.ID)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	on, err := rupiq.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	typ, err := rupiq.ParseInvestmentType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	invested, err := money(t, c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	current := invested
	if c.value > 0 {
		current = rupiq.M(c.value, invested.Currency())
	}
	r, err := rupiq.NewInvestment(on, typ, c.name, invested, current, c.platform)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := t.SaveInvestments(append(investments, r)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded investment %s: %s in %s.\n", r.ID, r.AmountInvested, r.Name)
	return subcommands.ExitSuccess
}

type goalCmd struct {
	name   string
	target float64
	saved  float64
	date   string
	rm     string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "add, list or delete financial goals" }
func (*goalCmd) Usage() string {
	return `rq goal -n <name> -target <amount> [-saved <amount>] [-by <date>] [description...]
rq goal -rm <id>

  Adds a financial goal, or lists them all when -target is absent.
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the goal.")
	f.Float64Var(&c.target, "target", 0, "Target amount to reach.")
	f.Float64Var(&c.saved, "saved", 0, "Amount already saved toward the goal.")
	f.StringVar(&c.date, "by", "", "Target date.")
	f.StringVar(&c.rm, "rm", "", "Id of a goal to delete.")
}

func (c *goalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	goals, err := t.Goals()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.rm != "" {
		kept, removed := removeByID(goals, c.rm, func(g rupiq.Goal) string { return g.ID })
		if !removed {
			fmt.Fprintf(os.Stderr, "Error: no goal with id %q\n", c.rm)
			return subcommands.ExitFailure
		}
		if err := t.SaveGoals(kept); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted goal %s.\n", c.rm)
		return subcommands.ExitSuccess
	}

	if c.target == 0 {
		var b strings.Builder
		fmt.Fprintln(&b, "# Goals")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Name | Saved | Target | Remaining | By | Id |")
		fmt.Fprintln(&b, "|---|--:|--:|--:|---|---|")
		for _, g := range goals {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				g.Name, g.CurrentAmount, g.TargetAmount, g.Remaining(), g.TargetDate, g.ID)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	var by rupiq.Date
	if c.date != "" {
		by, err = rupiq.ParseDate(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error parsing date:", err)
			return subcommands.ExitUsageError
		}
	}
	target, err := money(t, c.target)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	g, err := rupiq.NewGoal(c.name, target, rupiq.M(c.saved, target.Currency()), by, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := t.SaveGoals(append(goals, g)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded goal %s: %s by %s.\n", g.ID, g.TargetAmount, g.TargetDate)
	return subcommands.ExitSuccess
}

type todoCmd struct {
	due  string
	done string
	rm   string
}

func (*todoCmd) Name() string     { return "todo" }
func (*todoCmd) Synopsis() string { return "manage the financial to-do list" }
func (*todoCmd) Usage() string {
	return `rq todo [-due <date>] [text...]
rq todo -done <id>
rq todo -rm <id>

  Adds a to-do item, marks one done, deletes one, or lists them all.
`
}

func (c *todoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.due, "due", "", "Due date of the task.")
	f.StringVar(&c.done, "done", "", "Id of a task to mark completed.")
	f.StringVar(&c.rm, "rm", "", "Id of a task to delete.")
}

func (c *todoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	tasks, err := t.Tasks()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.done != "":
		found := false
		for i := range tasks {
			if tasks[i].ID == c.done {
				tasks[i].Done = true
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: no task with id %q\n", c.done)
			return subcommands.ExitFailure
		}
		if err := t.SaveTasks(tasks); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Task %s done.\n", c.done)

	case c.rm != "":
		kept, removed := removeByID(tasks, c.rm, func(x rupiq.Task) string { return x.ID })
		if !removed {
			fmt.Fprintf(os.Stderr, "Error: no task with id %q\n", c.rm)
			return subcommands.ExitFailure
		}
		if err := t.SaveTasks(kept); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted task %s.\n", c.rm)

	case f.NArg() > 0:
		var due rupiq.Date
		if c.due != "" {
			due, err = rupiq.ParseDate(c.due)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error parsing date:", err)
				return subcommands.ExitUsageError
			}
		}
		task, err := rupiq.NewTask(strings.Join(f.Args(), " "), due)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		if err := t.SaveTasks(append(tasks, task)); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Recorded task %s.\n", task.ID)

	default:
		var b strings.Builder
		fmt.Fprintln(&b, "# To-do")
		fmt.Fprintln(&b)
		for _, task := range tasks {
			mark := " "
			if task.Done {
				mark = "x"
			}
			line := fmt.Sprintf("- [%s] %s", mark, task.Text)
			if !task.DueDate.IsZero() {
				line += fmt.Sprintf(" (due %s)", task.DueDate)
			}
			fmt.Fprintf(&b, "%s `%s`\n", line, task.ID)
		}
		printMarkdown(b.String())
	}
	return subcommands.ExitSuccess
}

type budgetCmd struct {
	amount float64
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set or show the daily spending budget" }
func (*budgetCmd) Usage() string {
	return `rq budget [-a <amount>]

  Sets the daily variable-spending budget, or shows today's usage.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Daily budget amount.")
}

func (c *budgetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.amount > 0 {
		amount, err := money(t, c.amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if err := t.SaveDailyBudget(rupiq.DailyBudget{Amount: amount}); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Daily budget set to %s.\n", amount)
		return subcommands.ExitSuccess
	}

	budget, err := t.DailyBudget()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if budget.Amount.IsZero() {
		fmt.Println("No daily budget set. Use 'rq budget -a <amount>'.")
		return subcommands.ExitSuccess
	}
	expenses, err := t.Expenses()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	spent := rupiq.SpentOn(expenses, rupiq.Today())
	fmt.Printf("Spent today %s of %s budget (%s left).\n", spent, budget.Amount, budget.Amount.Sub(spent))
	return subcommands.ExitSuccess
}

type debtCmd struct {
	amount float64
	set    bool
}

func (*debtCmd) Name() string     { return "debt" }
func (*debtCmd) Synopsis() string { return "set or show the total outstanding debt" }
func (*debtCmd) Usage() string {
	return `rq debt [-set -a <amount>]

  Sets the recorded total debt, or shows it.
`
}

func (c *debtCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Total outstanding debt.")
	f.BoolVar(&c.set, "set", false, "Record the -a amount. Allows setting the debt to zero.")
}

func (c *debtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.set || c.amount > 0 {
		amount, err := money(t, c.amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if amount.IsNegative() {
			fmt.Fprintln(os.Stderr, "Error: debt cannot be negative.")
			return subcommands.ExitUsageError
		}
		if err := t.SaveUserDebts(rupiq.UserDebts{TotalDebt: amount}); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Total debt set to %s.\n", amount)
		return subcommands.ExitSuccess
	}

	debts, err := t.UserDebts()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Total debt: %s.\n", debts.TotalDebt)
	return subcommands.ExitSuccess
}

// removeByID filters out the element with the given id.
func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	for i, x := range list {
		if idOf(x) == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
