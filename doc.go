// Package rupiq provides the types and engines of a local-first personal
// finance tracker: income, expense and investment records, financial goals,
// a to-do list, stateless calculators, and a shared-expense ledger with a
// settlement engine.
//
// The core functionalities include:
//   - Ledger Entity Model: split events (shared purchases and settlement
//     payments) with explicit provenance and an explicit owner participant.
//   - Settlement Engine: pure computation of per-friend net balances from
//     the event collection, and construction of balance-clearing events.
//   - Expense-Ledger Synchronizer: a derived one-to-one mapping from split
//     expense records to ledger events, kept consistent on every
//     create/update/delete of the source expense.
//   - Data Persistence: all collections are serialized as JSON documents in
//     a generic key-value store (see the kv subpackage); there is no server
//     and no database.
//
// This package serves as the foundational logic for the `rq` command-line
// tool.
package rupiq
