package rupiq

import (
	"fmt"

	"github.com/rupiq/rupiq/kv"
)

// Store keys for the persisted collections. Each key holds one JSON
// document, independent of the others.
const (
	KeyExpenses    = "expenses"
	KeySplitEvents = "splitEvents"
	KeyIncomes     = "incomes"
	KeyInvestments = "investments"
	KeyGoals       = "financialGoals"
	KeyTasks       = "todoTasks"
	KeyDailyBudget = "dailyBudget"
	KeyUserDebts   = "userDebts"
	KeySettings    = "settings"
)

// Tracker is the application state layered over a kv.Store. Each accessor
// reads the backing store; each mutator writes it back. Writes touching
// both the expenses and the ledger are two separate Set calls, so a crash
// in between can leave the ledger one step behind its expenses. The events
// command reports such leftovers.
type Tracker struct {
	store kv.Store
}

// NewTracker creates a tracker over the given store.
func NewTracker(store kv.Store) *Tracker {
	return &Tracker{store: store}
}

// Store exposes the underlying store, for subscriptions.
func (t *Tracker) Store() kv.Store { return t.store }

// Settings reads the application settings, defaulting the currency when
// the key is absent or empty.
func (t *Tracker) Settings() (Settings, error) {
	var s Settings
	if _, err := t.store.Get(KeySettings, &s); err != nil {
		return Settings{}, err
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	return s, nil
}

// SaveSettings persists the application settings.
func (t *Tracker) SaveSettings(s Settings) error { return t.store.Set(KeySettings, s) }

// Currency returns the configured display currency.
func (t *Tracker) Currency() (string, error) {
	s, err := t.Settings()
	if err != nil {
		return "", err
	}
	return s.Currency, nil
}

// Expenses reads the expense collection, empty when the key is absent.
func (t *Tracker) Expenses() ([]Expense, error) {
	var expenses []Expense
	if _, err := t.store.Get(KeyExpenses, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// SaveExpenses persists the expense collection.
func (t *Tracker) SaveExpenses(expenses []Expense) error {
	return t.store.Set(KeyExpenses, expenses)
}

// Ledger reads the split event collection.
func (t *Tracker) Ledger() (*Ledger, error) {
	var events []SplitEvent
	if _, err := t.store.Get(KeySplitEvents, &events); err != nil {
		return nil, err
	}
	return NewLedger(events...), nil
}

// SaveLedger persists the split event collection.
func (t *Tracker) SaveLedger(l *Ledger) error {
	return t.store.Set(KeySplitEvents, l.Slice())
}

// PutExpense inserts or updates an expense and synchronizes the ledger
// with it in the same operation, keeping derived events consistent with
// their source. Updates replace the record in place, preserving position.
func (t *Tracker) PutExpense(e Expense) error {
	expenses, err := t.Expenses()
	if err != nil {
		return err
	}

	found := false
	for i, x := range expenses {
		if x.ID == e.ID {
			expenses[i] = e
			found = true
			break
		}
	}
	if !found {
		expenses = append(expenses, e)
	}

	ledger, err := t.Ledger()
	if err != nil {
		return err
	}
	ledger.SyncExpense(e)

	if err := t.SaveExpenses(expenses); err != nil {
		return err
	}
	return t.SaveLedger(ledger)
}

// DeleteExpense removes an expense by id and cascades the removal of its
// derived split event, whatever split state the record is in. The cascade
// runs even when the expense record itself is missing, to clean up after
// an interrupted earlier delete.
func (t *Tracker) DeleteExpense(id string) error {
	expenses, err := t.Expenses()
	if err != nil {
		return err
	}

	found := false
	for i, x := range expenses {
		if x.ID == id {
			expenses = append(expenses[:i], expenses[i+1:]...)
			found = true
			break
		}
	}

	ledger, err := t.Ledger()
	if err != nil {
		return err
	}
	removed := ledger.RemoveExpenseEvent(id)

	if !found && !removed {
		return fmt.Errorf("no expense with id %q", id)
	}

	if found {
		if err := t.SaveExpenses(expenses); err != nil {
			return err
		}
	}
	if removed {
		return t.SaveLedger(ledger)
	}
	return nil
}

// Incomes reads the income collection.
func (t *Tracker) Incomes() ([]Income, error) {
	var incomes []Income
	if _, err := t.store.Get(KeyIncomes, &incomes); err != nil {
		return nil, err
	}
	return incomes, nil
}

// SaveIncomes persists the income collection.
func (t *Tracker) SaveIncomes(incomes []Income) error {
	return t.store.Set(KeyIncomes, incomes)
}

// Investments reads the investment collection.
func (t *Tracker) Investments() ([]Investment, error) {
	var investments []Investment
	if _, err := t.store.Get(KeyInvestments, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

// SaveInvestments persists the investment collection.
func (t *Tracker) SaveInvestments(investments []Investment) error {
	return t.store.Set(KeyInvestments, investments)
}

// Goals reads the financial goal collection.
func (t *Tracker) Goals() ([]Goal, error) {
	var goals []Goal
	if _, err := t.store.Get(KeyGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// SaveGoals persists the financial goal collection.
func (t *Tracker) SaveGoals(goals []Goal) error {
	return t.store.Set(KeyGoals, goals)
}

// Tasks reads the to-do collection.
func (t *Tracker) Tasks() ([]Task, error) {
	var tasks []Task
	if _, err := t.store.Get(KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks persists the to-do collection.
func (t *Tracker) SaveTasks(tasks []Task) error {
	return t.store.Set(KeyTasks, tasks)
}

// DailyBudget reads the daily spending budget, zero when unset.
func (t *Tracker) DailyBudget() (DailyBudget, error) {
	var b DailyBudget
	if _, err := t.store.Get(KeyDailyBudget, &b); err != nil {
		return DailyBudget{}, err
	}
	return b, nil
}

// SaveDailyBudget persists the daily spending budget.
func (t *Tracker) SaveDailyBudget(b DailyBudget) error {
	return t.store.Set(KeyDailyBudget, b)
}

// UserDebts reads the recorded total debt, zero when unset.
func (t *Tracker) UserDebts() (UserDebts, error) {
	var d UserDebts
	if _, err := t.store.Get(KeyUserDebts, &d); err != nil {
		return UserDebts{}, err
	}
	return d, nil
}

// SaveUserDebts persists the recorded total debt.
func (t *Tracker) SaveUserDebts(d UserDebts) error {
	return t.store.Set(KeyUserDebts, d)
}

// ExpenseIDs returns the set of expense ids, for orphan detection.
func (t *Tracker) ExpenseIDs() (map[string]bool, error) {
	expenses, err := t.Expenses()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(expenses))
	for _, e := range expenses {
		ids[e.ID] = true
	}
	return ids, nil
}
