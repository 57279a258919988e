package rupiq

import (
	"encoding/json"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := func() SplitEvent {
		return SplitEvent{
			ID:          "ev",
			Origin:      ManualOrigin(),
			Date:        NewDate(2025, 8, 1),
			TotalAmount: inr(100),
			PaidBy:      OwnerName,
			Participants: []Participant{
				NewOwnerParticipant(inr(60), inr(100)),
				NewParticipant("alice", inr(40), inr(0)),
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*SplitEvent)
		wantErr bool
	}{
		{"valid", func(e *SplitEvent) {}, false},
		{"zero total", func(e *SplitEvent) { e.TotalAmount = inr(0) }, true},
		{"negative total", func(e *SplitEvent) { e.TotalAmount = inr(-5) }, true},
		{"no participants", func(e *SplitEvent) { e.Participants = nil }, true},
		{"unnamed participant", func(e *SplitEvent) { e.Participants[1].Name = "" }, true},
		{"two owners", func(e *SplitEvent) { e.Participants[1].Owner = true }, true},
		{"shares drift beyond tolerance", func(e *SplitEvent) { e.Participants[1].Share = inr(40.02) }, true},
		{"shares drift within tolerance", func(e *SplitEvent) { e.Participants[1].Share = inr(40.005) }, false},
		{"paids drift beyond tolerance", func(e *SplitEvent) { e.Participants[0].Paid = inr(99.98) }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := valid()
			tc.mutate(&e)
			err := e.Validate()
			if tc.wantErr && err == nil {
				t.Error("Validate accepted an invalid event")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate rejected a valid event: %v", err)
			}
		})
	}
}

func TestSplitEventJSONRoundTrip(t *testing.T) {
	ev := dinner()
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var got SplitEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ev) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, ev)
	}
}

func TestSplitEventDecodeLegacy(t *testing.T) {
	// Data written by the original application: provenance in the id
	// prefix, the owner found by the magic name "me".
	tests := []struct {
		name       string
		id         string
		wantKind   OriginKind
		wantExpens string
	}{
		{"expense prefix", "expense-abc123", OriginExpense, "abc123"},
		{"settlement prefix", "settlement-1723456", OriginSettlement, ""},
		{"plain id", "1723456-xyz", OriginManual, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{
				"id": "` + tc.id + `",
				"description": "legacy",
				"date": "2025-08-10",
				"currency": "INR",
				"totalAmount": 900,
				"paidBy": "Me",
				"participants": [
					{"name": "Me", "share": 300, "paid": 900},
					{"name": "alice", "share": 300, "paid": 0},
					{"name": "bob", "share": 300, "paid": 0}
				]
			}`
			var ev SplitEvent
			if err := json.Unmarshal([]byte(raw), &ev); err != nil {
				t.Fatal(err)
			}
			if ev.Origin.Kind != tc.wantKind {
				t.Errorf("got origin kind %q, want %q", ev.Origin.Kind, tc.wantKind)
			}
			if ev.Origin.ExpenseID != tc.wantExpens {
				t.Errorf("got expense id %q, want %q", ev.Origin.ExpenseID, tc.wantExpens)
			}
			owner, ok := ev.Owner()
			if !ok {
				t.Fatal("legacy owner participant not recognized")
			}
			if !owner.Paid.Equal(inr(900)) {
				t.Errorf("owner paid %s, want 900", owner.Paid)
			}
			if cur := ev.TotalAmount.Currency(); cur != "INR" {
				t.Errorf("got currency %q, want INR", cur)
			}
		})
	}
}

func TestSplitEventDecodeLegacyOwnerCasing(t *testing.T) {
	for _, name := range []string{"me", "Me", "ME"} {
		raw := `{
			"id": "x", "date": "2025-08-10", "currency": "INR", "totalAmount": 10,
			"participants": [{"name": "` + name + `", "share": 10, "paid": 10}]
		}`
		var ev SplitEvent
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			t.Fatal(err)
		}
		if _, ok := ev.Owner(); !ok {
			t.Errorf("owner named %q not recognized", name)
		}
	}
}

func TestNewSplitEventValidates(t *testing.T) {
	_, err := NewSplitEvent(Today(), "bad", OwnerName, inr(100),
		NewParticipant("alice", inr(10), inr(100)),
	)
	if err == nil {
		t.Error("NewSplitEvent accepted shares not summing to the total")
	}

	ev, err := NewSplitEvent(Today(), "ok", OwnerName, inr(100),
		NewOwnerParticipant(inr(50), inr(100)),
		NewParticipant("alice", inr(50), inr(0)),
	)
	if err != nil {
		t.Fatalf("NewSplitEvent rejected a valid event: %v", err)
	}
	if ev.Origin.Kind != OriginManual {
		t.Errorf("got origin %q, want manual", ev.Origin.Kind)
	}
	if ev.ID == "" {
		t.Error("NewSplitEvent assigned no id")
	}
}
