package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/rupiq/rupiq"
)

// participantFlag is a repeatable -p flag holding "name:share:paid" rows
// of a manual split event.
type participantFlag []struct {
	name        string
	share, paid float64
	owner       bool
}

func (p *participantFlag) String() string {
	parts := make([]string, 0, len(*p))
	for _, x := range *p {
		parts = append(parts, fmt.Sprintf("%s:%v:%v", x.name, x.share, x.paid))
	}
	return strings.Join(parts, ",")
}

func (p *participantFlag) Set(value string) error {
	fields := strings.Split(value, ":")
	if len(fields) != 3 {
		return fmt.Errorf("want name:share:paid, got %q", value)
	}
	share, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("invalid share in %q: %w", value, err)
	}
	paid, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("invalid paid in %q: %w", value, err)
	}
	name := strings.TrimSpace(fields[0])
	*p = append(*p, struct {
		name        string
		share, paid float64
		owner       bool
	}{name, share, paid, strings.EqualFold(name, "me")})
	return nil
}

type eventsCmd struct {
	date         string
	amount       float64
	paidBy       string
	participants participantFlag
	rm           string
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "list the shared ledger, add or remove manual events" }
func (*eventsCmd) Usage() string {
	return `rq events
rq events [-d <date>] -a <total> [-paidby <name>] -p <name:share:paid>... [description...]
rq events -rm <id>

  Lists the shared ledger events, adds a manual event when -a is given,
  or removes one with -rm. In -p rows the name "me" stands for yourself.
  Events mirrored from a split expense cannot be removed here; delete
  the expense instead.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rupiq.Today().String(), "Date of the event.")
	f.Float64Var(&c.amount, "a", 0, "Total amount of the event.")
	f.StringVar(&c.paidBy, "paidby", rupiq.OwnerName, "Display name of who paid the bill.")
	f.Var(&c.participants, "p", "A participant as name:share:paid. Repeatable.")
	f.StringVar(&c.rm, "rm", "", "Id of a manual event to remove.")
}

func (c *eventsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	switch {
	case c.rm != "":
		if err := ledger.Remove(c.rm); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if err := t.SaveLedger(ledger); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed event %s.\n", c.rm)
		return subcommands.ExitSuccess
	case c.amount > 0:
		return c.add(t, ledger, f.Args())
	default:
		return c.list(t, ledger)
	}
}

func (c *eventsCmd) list(t *rupiq.Tracker, ledger *rupiq.Ledger) subcommands.ExitStatus {
	var b strings.Builder
	fmt.Fprintln(&b, "# Shared ledger")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Date | Description | Total | Paid by | Origin | Id |")
	fmt.Fprintln(&b, "|---|---|--:|---|---|---|")
	for _, e := range ledger.Events() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			e.Date, e.Description, e.TotalAmount, e.PaidBy, e.Origin.Kind, e.ID)
	}
	printMarkdown(b.String())

	// Leftovers from interrupted deletes in older data.
	ids, err := t.ExpenseIDs()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	for _, orphan := range ledger.Orphans(ids) {
		fmt.Fprintf(os.Stderr, "warning: event %s mirrors expense %s which no longer exists; run 'rq rm %s' to clean it up\n",
			orphan.ID, orphan.Origin.ExpenseID, orphan.Origin.ExpenseID)
	}
	return subcommands.ExitSuccess
}

func (c *eventsCmd) add(t *rupiq.Tracker, ledger *rupiq.Ledger, args []string) subcommands.ExitStatus {
	on, err := rupiq.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	total, err := money(t, c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	participants := make([]rupiq.Participant, 0, len(c.participants))
	for _, p := range c.participants {
		share := rupiq.M(p.share, total.Currency())
		paid := rupiq.M(p.paid, total.Currency())
		if p.owner {
			participants = append(participants, rupiq.NewOwnerParticipant(share, paid))
		} else {
			participants = append(participants, rupiq.NewParticipant(p.name, share, paid))
		}
	}

	ev, err := rupiq.NewSplitEvent(on, strings.Join(args, " "), c.paidBy, total, participants...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	ledger.Append(ev)
	if err := t.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded event %s: %s.\n", ev.ID, ev.TotalAmount)
	return subcommands.ExitSuccess
}
