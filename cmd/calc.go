package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rupiq/rupiq"
)

type sipCmd struct {
	monthly float64
	rate    float64
	years   int
}

func (*sipCmd) Name() string     { return "sip" }
func (*sipCmd) Synopsis() string { return "project the future value of a monthly investment plan" }
func (*sipCmd) Usage() string {
	return `rq sip -monthly <amount> -rate <annual %> -years <n>

  Projects the value of investing monthly at a constant annual return,
  compounding monthly.
`
}

func (c *sipCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.monthly, "monthly", 0, "Monthly investment amount.")
	f.Float64Var(&c.rate, "rate", 12, "Expected annual return in percent.")
	f.IntVar(&c.years, "years", 10, "Investment period in years.")
}

func (c *sipCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	monthly, err := money(t, c.monthly)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	result, err := rupiq.SIP(monthly, percent(c.rate), c.years)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	fmt.Printf("Investing %s monthly for %d years at %v%%:\n", monthly, c.years, c.rate)
	fmt.Printf("  invested:     %s\n", result.Invested)
	fmt.Printf("  future value: %s\n", result.FutureValue)
	fmt.Printf("  gain:         %s\n", result.Gain)
	return subcommands.ExitSuccess
}

type swpCmd struct {
	corpus float64
	rate   float64
	freq   string
}

func (*swpCmd) Name() string     { return "swp" }
func (*swpCmd) Synopsis() string { return "compute the sustainable withdrawal from a corpus" }
func (*swpCmd) Usage() string {
	return `rq swp -corpus <amount> -rate <annual %> [-freq monthly|yearly]

  Computes the withdrawal a corpus sustains at a constant annual return
  without eroding the principal.
`
}

func (c *swpCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.corpus, "corpus", 0, "Corpus amount.")
	f.Float64Var(&c.rate, "rate", 8, "Expected annual return in percent.")
	f.StringVar(&c.freq, "freq", string(rupiq.Monthly), "Withdrawal frequency: monthly or yearly.")
}

func (c *swpCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	corpus, err := money(t, c.corpus)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	withdrawal, err := rupiq.SWP(corpus, percent(c.rate), rupiq.SWPFrequency(c.freq))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	fmt.Printf("A corpus of %s at %v%% sustains a %s withdrawal of %s.\n", corpus, c.rate, c.freq, withdrawal)
	return subcommands.ExitSuccess
}
