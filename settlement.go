package rupiq

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// This file implements the settlement engine: computing per-friend net
// balances from the split event collection, and constructing the event that
// clears one friend's balance.

// FriendBalance is the derived (never persisted) net position of one friend
// across all split events.
//
// Sign convention: a positive balance means the friend paid more than their
// share, so the ledger owner owes the friend; a negative balance means the
// friend owes the ledger owner.
type FriendBalance struct {
	Name    string
	Balance Money // Σ paid − Σ share over all events
}

// settledTolerance is the band around zero within which a balance is
// considered settled and dropped from results.
var settledTolerance = decimal.NewFromFloat(0.005)

// Settled reports whether the balance is close enough to zero to be
// considered cleared.
func (fb FriendBalance) Settled() bool {
	return fb.Balance.value.Abs().LessThanOrEqual(settledTolerance)
}

// Balances computes the net balance of every friend appearing in the given
// events. Owner participants are excluded from the aggregation; friends are
// grouped by exact name and returned in order of first appearance. Friends
// whose balance is within the settled tolerance are dropped.
func Balances(events []SplitEvent) []FriendBalance {
	byName := make(map[string]int)
	var all []FriendBalance

	for _, e := range events {
		for _, p := range e.Participants {
			if p.Owner {
				continue
			}
			effect := p.Paid.Sub(p.Share)
			if i, ok := byName[p.Name]; ok {
				all[i].Balance = all[i].Balance.Add(effect)
				continue
			}
			byName[p.Name] = len(all)
			all = append(all, FriendBalance{Name: p.Name, Balance: effect})
		}
	}

	balances := make([]FriendBalance, 0, len(all))
	for _, fb := range all {
		if fb.Settled() {
			continue
		}
		balances = append(balances, fb)
	}
	return balances
}

// BalanceTotals are the two aggregate figures shown next to the per-friend
// list.
type BalanceTotals struct {
	OwedByOwner Money // total the owner owes to friends (Σ positive balances)
	OwedToOwner Money // total friends owe to the owner (Σ |negative balances|)
}

// Totals derives the aggregate owed figures from a list of friend balances.
func Totals(balances []FriendBalance) BalanceTotals {
	var t BalanceTotals
	for _, fb := range balances {
		if fb.Balance.IsPositive() {
			t.OwedByOwner = t.OwedByOwner.Add(fb.Balance)
		} else {
			t.OwedToOwner = t.OwedToOwner.Add(fb.Balance.Abs())
		}
	}
	return t
}

// NewSettlement constructs the event that clears the given friend's
// balance. The event records the money changing hands on the given day: if
// the friend owes the owner, the friend pays the full amount and carries no
// share of it, so recomputing balances nets the friend's contribution to
// exactly +|balance|; symmetrically when the owner owes the friend.
//
// The event is appended to the collection by the caller and is terminal:
// settlements are never edited or merged with prior events. Callers should
// not invoke this for an already settled balance.
func NewSettlement(friend FriendBalance, on Date) SplitEvent {
	amount := friend.Balance.Abs()

	var paidBy, description string
	var participants []Participant
	if friend.Balance.IsNegative() {
		// Friend owes the owner: the friend pays the amount back.
		paidBy = friend.Name
		description = fmt.Sprintf("Settlement: %s paid %s %s", friend.Name, OwnerName, amount)
		participants = []Participant{
			NewParticipant(friend.Name, M(0, amount.Currency()), amount),
			NewOwnerParticipant(amount, M(0, amount.Currency())),
		}
	} else {
		// The owner owes the friend: the owner pays the amount out.
		paidBy = OwnerName
		description = fmt.Sprintf("Settlement: %s paid %s %s", OwnerName, friend.Name, amount)
		participants = []Participant{
			NewParticipant(friend.Name, amount, M(0, amount.Currency())),
			NewOwnerParticipant(M(0, amount.Currency()), amount),
		}
	}

	return SplitEvent{
		ID:           uuid.NewString(),
		Origin:       SettlementOrigin(),
		Description:  description,
		Date:         on,
		TotalAmount:  amount,
		PaidBy:       paidBy,
		Participants: participants,
	}
}
