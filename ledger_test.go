package rupiq

import (
	"testing"
)

// splitLunch builds a split expense: a 600 bill with alice and bob owing
// 200 each, leaving the owner's share at 200.
func splitLunch(t *testing.T) Expense {
	t.Helper()
	e, err := NewSplitExpense(NewDate(2025, 8, 12), CategoryFood, Variable, "lunch", inr(600), []SplitDetail{
		{FriendName: "alice", Amount: inr(200)},
		{FriendName: "bob", Amount: inr(200)},
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestSyncExpenseCreates(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)

	if l.Len() != 1 {
		t.Fatalf("got %d events, want 1", l.Len())
	}
	var ev SplitEvent
	for _, x := range l.Events() {
		ev = x
	}
	if !ev.IsSynced() || ev.Origin.ExpenseID != e.ID {
		t.Errorf("got origin %+v, want expense origin for %s", ev.Origin, e.ID)
	}
	if !ev.TotalAmount.Equal(inr(600)) {
		t.Errorf("got total %s, want the original bill 600", ev.TotalAmount)
	}
	if err := ev.Validate(); err != nil {
		t.Errorf("synced event does not validate: %v", err)
	}

	// The owner fronted the whole bill.
	owner, ok := ev.Owner()
	if !ok {
		t.Fatal("synced event has no owner participant")
	}
	if !owner.Paid.Equal(inr(600)) || !owner.Share.Equal(inr(200)) {
		t.Errorf("owner got share %s paid %s, want 200 and 600", owner.Share, owner.Paid)
	}
	for _, p := range ev.Participants {
		if !p.Owner && !p.Paid.IsZero() {
			t.Errorf("friend %s paid %s, want 0", p.Name, p.Paid)
		}
	}
}

func TestSyncExpenseUpsertsInPlace(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)

	manual, err := NewSplitEvent(NewDate(2025, 8, 13), "drinks", "alice", inr(100),
		NewParticipant("alice", inr(50), inr(100)),
		NewOwnerParticipant(inr(50), inr(0)),
	)
	if err != nil {
		t.Fatal(err)
	}
	l.Append(manual)

	firstID := ""
	for _, x := range l.Events(ByOrigin(OriginExpense)) {
		firstID = x.ID
	}

	// Re-sync after editing the expense: same slot, same event id.
	e.Description = "team lunch"
	l.SyncExpense(e)

	if l.Len() != 2 {
		t.Fatalf("got %d events after re-sync, want 2", l.Len())
	}
	for i, x := range l.Events() {
		if i == 0 {
			if !x.IsSynced() {
				t.Error("synced event lost its position on re-sync")
			}
			if x.ID != firstID {
				t.Errorf("synced event id changed from %s to %s", firstID, x.ID)
			}
			if x.Description != "Expense: team lunch" {
				t.Errorf("got description %q after re-sync", x.Description)
			}
		}
	}
}

func TestSyncExpenseIdempotent(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)
	l.SyncExpense(e)
	l.SyncExpense(e)
	if l.Len() != 1 {
		t.Errorf("got %d events after repeated syncs, want 1", l.Len())
	}
}

func TestSyncExpenseRemovesWhenUnsplit(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)

	// The user turns the split off: the mirrored event must go.
	e.IsSplit = false
	e.SplitDetails = nil
	l.SyncExpense(e)
	if l.Len() != 0 {
		t.Errorf("got %d events after un-splitting, want 0", l.Len())
	}
}

func TestRemoveExpenseEvent(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)

	if !l.RemoveExpenseEvent(e.ID) {
		t.Error("RemoveExpenseEvent found nothing to remove")
	}
	if l.Len() != 0 {
		t.Errorf("got %d events after removal, want 0", l.Len())
	}
	// Idempotent on a second call.
	if l.RemoveExpenseEvent(e.ID) {
		t.Error("second RemoveExpenseEvent reported a removal")
	}
}

func TestRemoveGuardsSyncedEvents(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)

	var id string
	for _, x := range l.Events() {
		id = x.ID
	}
	if err := l.Remove(id); err == nil {
		t.Error("Remove deleted a synced event directly")
	}
}

func TestUpdateGuardsSettlements(t *testing.T) {
	l := NewLedger()
	ev := l.Settle(FriendBalance{Name: "alice", Balance: inr(-100)}, Today())
	ev.Description = "tampered"
	if err := l.Update(ev); err == nil {
		t.Error("Update accepted an edit to a settlement")
	}
}

func TestOrphans(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)

	if orphans := l.Orphans(map[string]bool{e.ID: true}); len(orphans) != 0 {
		t.Errorf("got %d orphans with the expense present, want 0", len(orphans))
	}
	orphans := l.Orphans(map[string]bool{})
	if len(orphans) != 1 {
		t.Fatalf("got %d orphans with the expense gone, want 1", len(orphans))
	}
	if orphans[0].Origin.ExpenseID != e.ID {
		t.Errorf("orphan points at %q, want %q", orphans[0].Origin.ExpenseID, e.ID)
	}
}

func TestEventsFilter(t *testing.T) {
	l := NewLedger()
	e := splitLunch(t)
	l.SyncExpense(e)
	l.Settle(FriendBalance{Name: "alice", Balance: inr(-200)}, Today())

	count := 0
	for range l.Events(ByOrigin(OriginSettlement)) {
		count++
	}
	if count != 1 {
		t.Errorf("got %d settlement events, want 1", count)
	}
	count = 0
	for range l.Events() {
		count++
	}
	if count != 2 {
		t.Errorf("got %d events unfiltered, want 2", count)
	}
}
