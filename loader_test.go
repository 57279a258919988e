package rupiq

import (
	"testing"

	"github.com/rupiq/rupiq/kv"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewTracker(store)
}

func TestSettingsDefault(t *testing.T) {
	tr := newTestTracker(t)
	cur, err := tr.Currency()
	if err != nil {
		t.Fatal(err)
	}
	if cur != DefaultCurrency {
		t.Errorf("got currency %q, want the default %q", cur, DefaultCurrency)
	}

	if err := tr.SaveSettings(Settings{Currency: "EUR"}); err != nil {
		t.Fatal(err)
	}
	cur, err = tr.Currency()
	if err != nil {
		t.Fatal(err)
	}
	if cur != "EUR" {
		t.Errorf("got currency %q, want EUR", cur)
	}
}

func TestPutExpenseSyncsLedger(t *testing.T) {
	tr := newTestTracker(t)
	e := splitLunch(t)
	if err := tr.PutExpense(e); err != nil {
		t.Fatal(err)
	}

	expenses, err := tr.Expenses()
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 1 || expenses[0].ID != e.ID {
		t.Fatalf("got %d expenses", len(expenses))
	}

	ledger, err := tr.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 1 {
		t.Fatalf("got %d events, want the mirrored one", ledger.Len())
	}
	for _, ev := range ledger.Events() {
		if ev.Origin.ExpenseID != e.ID {
			t.Errorf("event mirrors %q, want %q", ev.Origin.ExpenseID, e.ID)
		}
	}
}

func TestPutExpenseUpdatesInPlace(t *testing.T) {
	tr := newTestTracker(t)
	e := splitLunch(t)
	if err := tr.PutExpense(e); err != nil {
		t.Fatal(err)
	}

	e.Description = "team lunch"
	if err := tr.PutExpense(e); err != nil {
		t.Fatal(err)
	}

	expenses, err := tr.Expenses()
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses after update, want 1", len(expenses))
	}
	if expenses[0].Description != "team lunch" {
		t.Errorf("got description %q", expenses[0].Description)
	}

	ledger, err := tr.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 1 {
		t.Errorf("got %d events after update, want 1", ledger.Len())
	}
}

func TestDeleteExpenseCascades(t *testing.T) {
	tr := newTestTracker(t)
	e := splitLunch(t)
	if err := tr.PutExpense(e); err != nil {
		t.Fatal(err)
	}

	if err := tr.DeleteExpense(e.ID); err != nil {
		t.Fatal(err)
	}

	expenses, err := tr.Expenses()
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 0 {
		t.Errorf("got %d expenses after delete, want 0", len(expenses))
	}
	ledger, err := tr.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 0 {
		t.Errorf("mirrored event survived the expense delete")
	}
}

func TestDeleteExpenseCleansLeftoverEvent(t *testing.T) {
	// The expense record is already gone but its event remains, as after
	// an interrupted delete. Deleting by id still removes the event.
	tr := newTestTracker(t)
	e := splitLunch(t)
	ledger, err := tr.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	ledger.SyncExpense(e)
	if err := tr.SaveLedger(ledger); err != nil {
		t.Fatal(err)
	}

	if err := tr.DeleteExpense(e.ID); err != nil {
		t.Fatal(err)
	}
	ledger, err = tr.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 0 {
		t.Errorf("leftover event survived")
	}
}

func TestDeleteExpenseUnknown(t *testing.T) {
	tr := newTestTracker(t)
	if err := tr.DeleteExpense("nope"); err == nil {
		t.Error("DeleteExpense accepted an unknown id")
	}
}

func TestRecordsRoundTripThroughStore(t *testing.T) {
	tr := newTestTracker(t)

	income, err := NewIncome(NewDate(2025, 8, 1), IncomeSalary, "salary", inr(50000))
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.SaveIncomes([]Income{income}); err != nil {
		t.Fatal(err)
	}
	incomes, err := tr.Incomes()
	if err != nil {
		t.Fatal(err)
	}
	if len(incomes) != 1 || !incomes[0].Amount.Equal(income.Amount) || incomes[0].Category != IncomeSalary {
		t.Errorf("income round trip mismatch: %+v", incomes)
	}

	goal, err := NewGoal("emergency fund", inr(100000), inr(25000), NewDate(2026, 6, 1), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.SaveGoals([]Goal{goal}); err != nil {
		t.Fatal(err)
	}
	goals, err := tr.Goals()
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 || !goals[0].Remaining().Equal(inr(75000)) {
		t.Errorf("goal round trip mismatch: %+v", goals)
	}

	if err := tr.SaveDailyBudget(DailyBudget{Amount: inr(500)}); err != nil {
		t.Fatal(err)
	}
	budget, err := tr.DailyBudget()
	if err != nil {
		t.Fatal(err)
	}
	if !budget.Amount.Equal(inr(500)) {
		t.Errorf("budget round trip mismatch: %s", budget.Amount)
	}
}
