package rupiq

import (
	"encoding/json"
	"testing"
)

func TestNewSplitExpense(t *testing.T) {
	day := NewDate(2025, 8, 12)
	tests := []struct {
		name      string
		total     float64
		details   []SplitDetail
		wantErr   bool
		wantShare float64
	}{
		{
			name:      "owner keeps the remainder",
			total:     600,
			details:   []SplitDetail{{"alice", inr(200)}, {"bob", inr(200)}},
			wantShare: 200,
		},
		{
			name:      "friends take the whole bill",
			total:     600,
			details:   []SplitDetail{{"alice", inr(300)}, {"bob", inr(300)}},
			wantShare: 0,
		},
		{
			name:      "rounding drift within tolerance floors at zero",
			total:     100,
			details:   []SplitDetail{{"alice", inr(50)}, {"bob", inr(50.005)}},
			wantShare: 0,
		},
		{
			name:    "shares exceed the total",
			total:   100,
			details: []SplitDetail{{"alice", inr(60)}, {"bob", inr(60)}},
			wantErr: true,
		},
		{
			name:    "zero total",
			total:   0,
			details: []SplitDetail{{"alice", inr(0)}},
			wantErr: true,
		},
		{
			name:    "negative share",
			total:   100,
			details: []SplitDetail{{"alice", inr(-10)}},
			wantErr: true,
		},
		{
			name:    "unnamed participant with an amount",
			total:   100,
			details: []SplitDetail{{"", inr(50)}},
			wantErr: true,
		},
		{
			name:    "no details at all",
			total:   100,
			details: nil,
			wantErr: true,
		},
		{
			name:    "only blank rows",
			total:   100,
			details: []SplitDetail{{"", inr(0)}, {"  ", inr(0)}},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewSplitExpense(day, CategoryFood, Variable, "lunch", inr(tc.total), tc.details)
			if tc.wantErr {
				if err == nil {
					t.Error("NewSplitExpense accepted invalid input")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSplitExpense rejected valid input: %v", err)
			}
			if !e.Amount.Equal(inr(tc.wantShare)) {
				t.Errorf("owner share: got %s, want %v", e.Amount, tc.wantShare)
			}
			if !e.IsSplit {
				t.Error("expense is not marked split")
			}
			if !e.OriginalTotalAmount.Equal(inr(tc.total)) {
				t.Errorf("original total: got %s, want %v", e.OriginalTotalAmount, tc.total)
			}
		})
	}
}

func TestNewSplitExpenseDropsBlankRows(t *testing.T) {
	e, err := NewSplitExpense(NewDate(2025, 8, 12), CategoryFood, Variable, "lunch", inr(100),
		[]SplitDetail{{"alice", inr(40)}, {"", inr(0)}})
	if err != nil {
		t.Fatal(err)
	}
	if len(e.SplitDetails) != 1 {
		t.Errorf("got %d details, want the blank row dropped", len(e.SplitDetails))
	}
}

func TestNewExpense(t *testing.T) {
	if _, err := NewExpense(Today(), CategoryFood, Variable, "coffee", inr(0)); err == nil {
		t.Error("NewExpense accepted a zero amount")
	}
	e, err := NewExpense(Today(), CategoryTransport, Fixed, "bus pass", inr(1500))
	if err != nil {
		t.Fatal(err)
	}
	if e.IsSplit || len(e.SplitDetails) != 0 {
		t.Error("plain expense carries split state")
	}
	if e.ID == "" {
		t.Error("NewExpense assigned no id")
	}
}

func TestExpenseJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		e    func(t *testing.T) Expense
	}{
		{"plain", func(t *testing.T) Expense {
			e, err := NewExpense(NewDate(2025, 8, 12), CategoryFood, Variable, "coffee", inr(40))
			if err != nil {
				t.Fatal(err)
			}
			return e
		}},
		{"split", func(t *testing.T) Expense { return splitLunch(t) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.e(t)
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatal(err)
			}
			var got Expense
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}
			if got.ID != want.ID || got.Date != want.Date || got.Category != want.Category ||
				got.Type != want.Type || !got.Amount.Equal(want.Amount) ||
				got.IsSplit != want.IsSplit || len(got.SplitDetails) != len(want.SplitDetails) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
			for i := range want.SplitDetails {
				if got.SplitDetails[i].FriendName != want.SplitDetails[i].FriendName ||
					!got.SplitDetails[i].Amount.Equal(want.SplitDetails[i].Amount) {
					t.Errorf("detail %d mismatch: got %+v, want %+v", i, got.SplitDetails[i], want.SplitDetails[i])
				}
			}
			if want.IsSplit && !got.OriginalTotalAmount.Equal(want.OriginalTotalAmount) {
				t.Errorf("original total: got %s, want %s", got.OriginalTotalAmount, want.OriginalTotalAmount)
			}
		})
	}
}

func TestParseExpenseCategory(t *testing.T) {
	if c, err := ParseExpenseCategory("food & groceries"); err != nil || c != CategoryFood {
		t.Errorf("got %q, %v", c, err)
	}
	if _, err := ParseExpenseCategory("gambling"); err == nil {
		t.Error("ParseExpenseCategory accepted an unknown category")
	}
}

func TestParseExpenseType(t *testing.T) {
	if typ, err := ParseExpenseType("fixed"); err != nil || typ != Fixed {
		t.Errorf("got %q, %v", typ, err)
	}
	if _, err := ParseExpenseType("sometimes"); err == nil {
		t.Error("ParseExpenseType accepted an unknown type")
	}
}
