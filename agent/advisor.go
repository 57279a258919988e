package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rupiq/rupiq"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// NewAdvisor creates the financial advisor persona over the given tracker.
// The advisor answers through function tools that read the live records, so
// it never works from stale figures.
func NewAdvisor(t *rupiq.Tracker) *Expert {
	lib := []Function{profileFunc(t), balancesFunc(t)}
	return &Expert{
		Name:        "Advisor",
		Description: "A personal finance advisor with access to the user's records.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a pragmatic personal finance advisor. The user tracks their
				income, expenses, investments, financial goals, debts and shared
				expenses with friends in this application.

				Use the Profile tool to read the user's current financial snapshot
				and the SplitBalances tool to read who owes whom among friends.
				Ground every figure you mention in tool output; never invent
				numbers. Keep advice short, concrete and actionable. Amounts are
				in the user's configured currency.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Suggestions asks the advisor for a one-shot review of the user's finances:
// three specific improvements grounded in the current records.
func Suggestions(ctx context.Context, client *genai.Client, t *rupiq.Tracker) (string, error) {
	advisor := NewAdvisor(t)
	if err := advisor.Start(ctx, client); err != nil {
		return "", err
	}
	content, err := advisor.Ask(ctx, &genai.Part{Text: `
		Review my current financial situation and give me exactly three
		specific, actionable suggestions to improve it. Number them.
	`})
	if err != nil {
		return "", err
	}
	return content.Parts[0].Text, nil
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func profileFunc(t *rupiq.Tracker) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Profile",
			Description: `Profile returns the user's current financial snapshot: this month's
			income and expenses, savings rate, net worth, debt, daily budget usage,
			spending by category, investments and goal progress.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown summary of the user's finances.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, err := Profile(t)
			if err != nil {
				return errResponse(id, "Profile", err)
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     "Profile",
				Response: map[string]any{"output": p},
			}
		},
	}
}

func balancesFunc(t *rupiq.Tracker) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "SplitBalances",
			Description: `SplitBalances returns the outstanding balances of the shared-expense
			ledger: per friend, who owes whom and how much.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown list of unsettled friend balances.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ledger, err := t.Ledger()
			if err != nil {
				return errResponse(id, "SplitBalances", err)
			}
			balances := ledger.Balances()
			if len(balances) == 0 {
				return &genai.FunctionResponse{
					ID:       id,
					Name:     "SplitBalances",
					Response: map[string]any{"output": "All balances are settled."},
				}
			}
			var b strings.Builder
			for _, fb := range balances {
				if fb.Balance.IsPositive() {
					fmt.Fprintf(&b, "- The user owes %s %s\n", fb.Name, fb.Balance)
				} else {
					fmt.Fprintf(&b, "- %s owes the user %s\n", fb.Name, fb.Balance.Abs())
				}
			}
			return &genai.FunctionResponse{
				ID:       id,
				Name:     "SplitBalances",
				Response: map[string]any{"output": b.String()},
			}
		},
	}
}

// Profile renders the user's financial snapshot as markdown.
func Profile(t *rupiq.Tracker) (string, error) {
	expenses, err := t.Expenses()
	if err != nil {
		return "", err
	}
	incomes, err := t.Incomes()
	if err != nil {
		return "", err
	}
	investments, err := t.Investments()
	if err != nil {
		return "", err
	}
	goals, err := t.Goals()
	if err != nil {
		return "", err
	}
	debts, err := t.UserDebts()
	if err != nil {
		return "", err
	}
	budget, err := t.DailyBudget()
	if err != nil {
		return "", err
	}

	today := rupiq.Today()
	income := rupiq.MonthlyIncome(incomes, today)
	spent := rupiq.MonthlyExpenses(expenses, today)
	savings := income.Sub(spent)

	var b strings.Builder
	fmt.Fprintf(&b, "# Financial profile as of %s\n\n", today)
	fmt.Fprintf(&b, "- Monthly income: %s\n", income)
	fmt.Fprintf(&b, "- Monthly expenses: %s\n", spent)
	fmt.Fprintf(&b, "- Savings rate: %s%%\n", rupiq.SavingsRate(income, spent).Round(1))
	fmt.Fprintf(&b, "- Net worth: %s\n", rupiq.NetWorth(investments, savings, debts.TotalDebt))
	fmt.Fprintf(&b, "- Total debt: %s (debt-to-income %s%%)\n", debts.TotalDebt, rupiq.DebtToIncome(debts.TotalDebt, income).Round(1))
	if !budget.Amount.IsZero() {
		fmt.Fprintf(&b, "- Daily budget: %s, spent today: %s\n", budget.Amount, rupiq.SpentOn(expenses, today))
	}

	if cats := rupiq.ByCategory(expenses, today); len(cats) > 0 {
		fmt.Fprintf(&b, "\n## Spending by category this month\n\n")
		for _, c := range cats {
			fmt.Fprintf(&b, "- %s: %s\n", c.Category, c.Total)
		}
	}

	if len(investments) > 0 {
		fmt.Fprintf(&b, "\n## Investments\n\n")
		for _, v := range investments {
			fmt.Fprintf(&b, "- %s (%s): invested %s, now worth %s\n", v.Name, v.Type, v.AmountInvested, v.CurrentValue)
		}
	}

	if len(goals) > 0 {
		fmt.Fprintf(&b, "\n## Goals\n\n")
		for _, g := range goals {
			fmt.Fprintf(&b, "- %s: %s of %s by %s\n", g.Name, g.CurrentAmount, g.TargetAmount, g.TargetDate)
		}
	}

	return b.String(), nil
}
