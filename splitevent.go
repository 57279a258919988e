package rupiq

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OriginKind is a typed string identifying how a split event came to exist.
type OriginKind string

// Origin kinds of a split event.
const (
	// OriginManual marks an event entered directly by the user.
	OriginManual OriginKind = "manual"
	// OriginExpense marks an event derived from a split expense record.
	// It is system-managed: re-saving the source expense overwrites it.
	OriginExpense OriginKind = "expense"
	// OriginSettlement marks a system-generated balance-clearing event.
	// Settlements are terminal: never edited once created.
	OriginSettlement OriginKind = "settlement"
)

// Origin records the provenance of a split event as an explicit tagged
// value instead of an id naming scheme.
type Origin struct {
	Kind      OriginKind `json:"kind"`
	ExpenseID string     `json:"expenseId,omitempty"` // set only when Kind is OriginExpense
}

// ManualOrigin returns the origin of a user-entered event.
func ManualOrigin() Origin { return Origin{Kind: OriginManual} }

// ExpenseOrigin returns the origin of an event synchronized from the
// expense with the given id.
func ExpenseOrigin(expenseID string) Origin {
	return Origin{Kind: OriginExpense, ExpenseID: expenseID}
}

// SettlementOrigin returns the origin of a settlement event.
func SettlementOrigin() Origin { return Origin{Kind: OriginSettlement} }

// Participant is one person's stake in a split event. Share is the amount
// this person is responsible for out of the event's total; Paid is the
// amount this person actually contributed toward it.
type Participant struct {
	Name  string
	Owner bool // true for the ledger owner; at most one per event
	Share Money
	Paid  Money
}

// NewParticipant creates a friend participant.
func NewParticipant(name string, share, paid Money) Participant {
	return Participant{Name: name, Share: share, Paid: paid}
}

// NewOwnerParticipant creates the ledger owner's participant.
func NewOwnerParticipant(share, paid Money) Participant {
	return Participant{Name: OwnerName, Owner: true, Share: share, Paid: paid}
}

// OwnerName is the display name used for the ledger owner's participant.
// Ownership itself is carried by the Owner flag, not by this string.
const OwnerName = "Me"

// SplitEvent represents one shared financial event: a purchase split among
// several people, or a settlement payment between two of them.
type SplitEvent struct {
	ID           string
	Origin       Origin
	Description  string
	Date         Date
	TotalAmount  Money
	PaidBy       string // informational label, not used in balance computation
	Participants []Participant
}

// shareTolerance is the acceptable drift between a sum of shares (or paids)
// and the event total when validating a new event.
var shareTolerance = decimal.NewFromFloat(0.01)

// NewSplitEvent creates a manual split event with a fresh id. The
// participants are validated against the event total.
func NewSplitEvent(day Date, description, paidBy string, total Money, participants ...Participant) (SplitEvent, error) {
	e := SplitEvent{
		ID:           uuid.NewString(),
		Origin:       ManualOrigin(),
		Description:  description,
		Date:         day,
		TotalAmount:  total,
		PaidBy:       paidBy,
		Participants: participants,
	}
	if err := e.Validate(); err != nil {
		return SplitEvent{}, err
	}
	return e, nil
}

// Validate checks the creation-time invariants of an event: a positive
// total, at least one participant, at most one owner, and shares and paids
// that each sum to the total within tolerance. Events already in the
// collection are not re-validated.
func (e SplitEvent) Validate() error {
	if !e.TotalAmount.IsPositive() {
		return fmt.Errorf("split event total must be positive, got %s", e.TotalAmount)
	}
	if len(e.Participants) == 0 {
		return errors.New("split event must have at least one participant")
	}
	var owners int
	shares, paids := M(0, e.TotalAmount.Currency()), M(0, e.TotalAmount.Currency())
	for _, p := range e.Participants {
		if p.Name == "" {
			return errors.New("split event participant name is missing")
		}
		if p.Owner {
			owners++
		}
		shares = shares.Add(p.Share)
		paids = paids.Add(p.Paid)
	}
	if owners > 1 {
		return fmt.Errorf("split event has %d owner participants, want at most 1", owners)
	}
	if d := shares.Sub(e.TotalAmount); d.value.Abs().GreaterThan(shareTolerance) {
		return fmt.Errorf("participant shares sum to %s, want event total %s", shares, e.TotalAmount)
	}
	if d := paids.Sub(e.TotalAmount); d.value.Abs().GreaterThan(shareTolerance) {
		return fmt.Errorf("participant payments sum to %s, want event total %s", paids, e.TotalAmount)
	}
	return nil
}

// Owner returns the owner participant of the event, if any.
func (e SplitEvent) Owner() (Participant, bool) {
	for _, p := range e.Participants {
		if p.Owner {
			return p, true
		}
	}
	return Participant{}, false
}

// IsSynced reports whether the event mirrors a split expense record.
func (e SplitEvent) IsSynced() bool { return e.Origin.Kind == OriginExpense }

// IsSettlement reports whether the event is a system-generated settlement.
func (e SplitEvent) IsSettlement() bool { return e.Origin.Kind == OriginSettlement }

func (e SplitEvent) Equal(other SplitEvent) bool {
	if e.ID != other.ID || e.Origin != other.Origin || e.Description != other.Description ||
		e.Date != other.Date || !e.TotalAmount.Equal(other.TotalAmount) || e.PaidBy != other.PaidBy ||
		len(e.Participants) != len(other.Participants) {
		return false
	}
	for i, p := range e.Participants {
		o := other.Participants[i]
		if p.Name != o.Name || p.Owner != o.Owner || !p.Share.Equal(o.Share) || !p.Paid.Equal(o.Paid) {
			return false
		}
	}
	return true
}

// MarshalJSON implements the json.Marshaler interface for SplitEvent.
// Amounts are written as plain numbers; the currency is carried once at the
// event level.
func (e SplitEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("origin", e.Origin)
	w.Append("description", e.Description)
	w.Append("date", e.Date)
	w.Optional("currency", e.TotalAmount.Currency())
	w.Append("totalAmount", e.TotalAmount.value.Round(2))
	w.Optional("paidBy", e.PaidBy)

	parts := make([]json.RawMessage, 0, len(e.Participants))
	for _, p := range e.Participants {
		var pw jsonObjectWriter
		pw.Append("name", p.Name)
		pw.Optional("owner", p.Owner)
		pw.Append("share", p.Share.value.Round(2))
		pw.Append("paid", p.Paid.value.Round(2))
		raw, err := pw.MarshalJSON()
		if err != nil {
			return nil, err
		}
		parts = append(parts, raw)
	}
	w.Append("participants", parts)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for SplitEvent.
// It understands both the current format (explicit origin and owner flag)
// and data written by the original application, where provenance was
// encoded in "expense-"/"settlement-" id prefixes and the owner was the
// participant named "me" (any casing).
func (e *SplitEvent) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID           string          `json:"id"`
		Origin       *Origin         `json:"origin"`
		Description  string          `json:"description"`
		Date         Date            `json:"date"`
		Currency     string          `json:"currency"`
		TotalAmount  decimal.Decimal `json:"totalAmount"`
		PaidBy       string          `json:"paidBy"`
		Participants []struct {
			Name  string          `json:"name"`
			Owner bool            `json:"owner"`
			Share decimal.Decimal `json:"share"`
			Paid  decimal.Decimal `json:"paid"`
		} `json:"participants"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	e.ID = temp.ID
	e.Description = temp.Description
	e.Date = temp.Date
	e.TotalAmount = M(temp.TotalAmount, temp.Currency)
	e.PaidBy = temp.PaidBy

	if temp.Origin != nil {
		e.Origin = *temp.Origin
	} else {
		e.Origin = legacyOrigin(temp.ID)
	}

	e.Participants = e.Participants[:0]
	for _, p := range temp.Participants {
		e.Participants = append(e.Participants, Participant{
			Name: p.Name,
			// Legacy data has no owner flag; fall back to the magic name.
			Owner: p.Owner || strings.EqualFold(p.Name, "me"),
			Share: M(p.Share, temp.Currency),
			Paid:  M(p.Paid, temp.Currency),
		})
	}
	return nil
}

// legacyOrigin translates the original application's id prefixes into an
// explicit Origin.
func legacyOrigin(id string) Origin {
	switch {
	case strings.HasPrefix(id, "expense-"):
		return ExpenseOrigin(strings.TrimPrefix(id, "expense-"))
	case strings.HasPrefix(id, "settlement-"):
		return SettlementOrigin()
	default:
		return ManualOrigin()
	}
}

var _ json.Marshaler = SplitEvent{}
var _ json.Unmarshaler = (*SplitEvent)(nil)
