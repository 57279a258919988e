package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rupiq/rupiq"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show who owes whom across the shared ledger" }
func (*balancesCmd) Usage() string {
	return `rq balances

  Nets every friend's position across all shared ledger events. Settled
  friends are not shown.
`
}

func (*balancesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *balancesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := t.Ledger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	balances := ledger.Balances()
	if len(balances) == 0 {
		fmt.Println("All settled up.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintln(&b, "# Balances")
	fmt.Fprintln(&b)
	for _, fb := range balances {
		if fb.Balance.IsPositive() {
			fmt.Fprintf(&b, "- You owe **%s** %s\n", fb.Name, fb.Balance)
		} else {
			fmt.Fprintf(&b, "- **%s** owes you %s\n", fb.Name, fb.Balance.Abs())
		}
	}
	totals := rupiq.Totals(balances)
	fmt.Fprintf(&b, "\nYou owe %s in total; you are owed %s in total.\n", totals.OwedByOwner, totals.OwedToOwner)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type settleCmd struct {
	friend string
	date   string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "record the payment that clears a friend's balance" }
func (*settleCmd) Usage() string {
	return `rq settle -friend <name> [-d <date>]

  Records a settlement event that zeroes the friend's outstanding
  balance. Settlements are final and cannot be edited.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.friend, "friend", "", "Name of the friend to settle with.")
	f.StringVar(&c.date, "d", rupiq.Today().String(), "Date of the settlement.")
}

func (c *settleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.friend == "" {
		fmt.Fprintln(os.Stderr, "Error: -friend is required.")
		return subcommands.ExitUsageError
	}
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	on, err := rupiq.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	ledger, err := t.Ledger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var friend rupiq.FriendBalance
	found := false
	for _, fb := range ledger.Balances() {
		if fb.Name == c.friend {
			friend, found = fb, true
			break
		}
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: %s has no outstanding balance.\n", c.friend)
		return subcommands.ExitFailure
	}

	ev := ledger.Settle(friend, on)
	if err := t.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s (event %s)\n", ev.Description, ev.ID)
	return subcommands.ExitSuccess
}
