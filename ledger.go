package rupiq

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// Ledger holds the ordered collection of split events.
//
// Events keep their insertion order; synchronized events are replaced in
// place so the history reads stably across expense edits.
type Ledger struct {
	events []SplitEvent
}

// NewLedger creates a ledger over the given events.
func NewLedger(events ...SplitEvent) *Ledger {
	return &Ledger{events: events}
}

// Len returns the number of events in the ledger.
func (l *Ledger) Len() int { return len(l.events) }

// Events returns an iterator over the events in collection order. Events
// matching any of the given filters are yielded; no filter means all.
func (l *Ledger) Events(filters ...func(SplitEvent) bool) iter.Seq2[int, SplitEvent] {
	return func(yield func(int, SplitEvent) bool) {
		for i, e := range l.events {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(e) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// Slice returns a copy of the event collection.
func (l *Ledger) Slice() []SplitEvent {
	out := make([]SplitEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Event returns the event with the given id.
func (l *Ledger) Event(id string) (SplitEvent, bool) {
	for _, e := range l.events {
		if e.ID == id {
			return e, true
		}
	}
	return SplitEvent{}, false
}

// Append appends events to the ledger.
func (l *Ledger) Append(events ...SplitEvent) {
	l.events = append(l.events, events...)
}

// Update replaces the event with the same id, preserving its position.
// Settlement events are terminal and cannot be updated.
func (l *Ledger) Update(ev SplitEvent) error {
	for i, e := range l.events {
		if e.ID != ev.ID {
			continue
		}
		if e.IsSettlement() {
			return fmt.Errorf("settlement %q cannot be edited", e.ID)
		}
		l.events[i] = ev
		return nil
	}
	return fmt.Errorf("no event with id %q", ev.ID)
}

// Remove deletes the event with the given id. Synchronized events cannot be
// removed this way: they are derived state, owned by their source expense.
func (l *Ledger) Remove(id string) error {
	for i, e := range l.events {
		if e.ID != id {
			continue
		}
		if e.IsSynced() {
			return fmt.Errorf("event %q mirrors expense %q, delete the expense instead", id, e.Origin.ExpenseID)
		}
		l.events = append(l.events[:i], l.events[i+1:]...)
		return nil
	}
	return fmt.Errorf("no event with id %q", id)
}

// Balances computes the per-friend net balances over the whole ledger.
func (l *Ledger) Balances() []FriendBalance {
	return Balances(l.events)
}

// Settle constructs the settlement event for the given friend balance and
// appends it to the ledger. The new event is returned for display.
func (l *Ledger) Settle(friend FriendBalance, on Date) SplitEvent {
	ev := NewSettlement(friend, on)
	l.events = append(l.events, ev)
	return ev
}

// SyncExpense maintains the event derived from a split expense record. It
// must be called after every create or update of an expense.
//
// When the expense is split, the derived event models the owner as having
// fronted the entire original bill: the owner's participant carries the
// owner's own share and a payment of the full original total, and each
// split detail becomes a friend participant who has paid nothing yet. An
// existing derived event is replaced in place (idempotently); otherwise the
// new event is appended.
//
// When the expense is not split (or has no split details), any derived
// event is removed: the expense is no longer shared, so no ledger trace
// remains.
func (l *Ledger) SyncExpense(e Expense) {
	if !e.IsSplit || len(e.SplitDetails) == 0 {
		l.RemoveExpenseEvent(e.ID)
		return
	}
	originalTotal := e.OriginalTotalAmount

	participants := make([]Participant, 0, 1+len(e.SplitDetails))
	participants = append(participants, NewOwnerParticipant(e.Amount, originalTotal))
	for _, d := range e.SplitDetails {
		participants = append(participants, NewParticipant(d.FriendName, d.Amount, M(0, originalTotal.Currency())))
	}

	description := e.Description
	if description == "" {
		description = string(e.Category)
	}

	ev := SplitEvent{
		ID:           uuid.NewString(),
		Origin:       ExpenseOrigin(e.ID),
		Description:  fmt.Sprintf("Expense: %s", description),
		Date:         e.Date,
		TotalAmount:  originalTotal,
		PaidBy:       OwnerName,
		Participants: participants,
	}

	for i, existing := range l.events {
		if existing.IsSynced() && existing.Origin.ExpenseID == e.ID {
			ev.ID = existing.ID // keep the stable id across re-syncs
			l.events[i] = ev
			return
		}
	}
	l.events = append(l.events, ev)
}

// RemoveExpenseEvent unconditionally removes the event derived from the
// given expense id. It must be invoked whenever the source expense is
// deleted, whatever its last known split state: only the id is needed, so
// it covers the case where the expense record itself is already gone.
// Removing an absent event is a no-op.
func (l *Ledger) RemoveExpenseEvent(expenseID string) bool {
	for i, e := range l.events {
		if e.IsSynced() && e.Origin.ExpenseID == expenseID {
			l.events = append(l.events[:i], l.events[i+1:]...)
			return true
		}
	}
	return false
}

// Orphans returns the synchronized events whose source expense id is not in
// the given set. Such events can only exist if an expense was deleted
// without the ledger cascade; they are reported as a diagnostic, not
// repaired.
func (l *Ledger) Orphans(expenseIDs map[string]bool) []SplitEvent {
	var orphans []SplitEvent
	for _, e := range l.events {
		if e.IsSynced() && !expenseIDs[e.Origin.ExpenseID] {
			orphans = append(orphans, e)
		}
	}
	return orphans
}

// ByOrigin returns a predicate that filters events by origin kind.
func ByOrigin(kind OriginKind) func(SplitEvent) bool {
	return func(e SplitEvent) bool { return e.Origin.Kind == kind }
}
