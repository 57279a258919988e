package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rupiq/rupiq/agent"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI advisor.
type assistCmd struct {
	suggest bool
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI financial advisor"
}
func (*assistCmd) Usage() string {
	return `rq assist [-suggest] [initial prompt...]

  Starts an interactive session with the AI advisor, grounded in your
  records. With -suggest, prints a one-shot list of suggestions instead.
  Requires $GEMINI_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.suggest, "suggest", false, "Print improvement suggestions and exit.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := OpenTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	if c.suggest {
		suggestions, err := agent.Suggestions(ctx, client, t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Advisor failed:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(suggestions)
		return subcommands.ExitSuccess
	}

	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewAdvisor(t))
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
