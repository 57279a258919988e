// Package cmd implements the CLI application to manage personal finances.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rupiq/rupiq"
	"github.com/rupiq/rupiq/kv"
	"github.com/shopspring/decimal"
)

// Commands lists every subcommand. A main package registers them on a
// Commander and Executes the user-selected one.
var Commands = []subcommands.Command{
	&expenseCmd{},
	&rmCmd{},
	&incomeCmd{},
	&investCmd{},
	&goalCmd{},
	&todoCmd{},
	&budgetCmd{},
	&debtCmd{},
	&eventsCmd{},
	&balancesCmd{},
	&settleCmd{},
	&summaryCmd{},
	&sipCmd{},
	&swpCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var homeFlag = flag.String("home", "", "Path to the data directory. Overrides $RUPIQ_HOME.")

// Config holds the environment-driven settings.
type Config struct {
	Home         string `env:"RUPIQ_HOME"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// LoadConfig reads the configuration from the environment, resolving the
// data directory from the -home flag, then $RUPIQ_HOME, then ~/.rupiq.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse environment: %w", err)
	}
	if *homeFlag != "" {
		cfg.Home = *homeFlag
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(home, ".rupiq")
	}
	return cfg, nil
}

// OpenTracker opens the tracker over the configured data directory.
func OpenTracker() (*rupiq.Tracker, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	store, err := kv.NewFileStore(cfg.Home)
	if err != nil {
		return nil, err
	}
	return rupiq.NewTracker(store), nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw text.
		log.Println("cannot render markdown:", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// money parses an amount flag value into the tracker's currency.
func money(t *rupiq.Tracker, amount float64) (rupiq.Money, error) {
	cur, err := t.Currency()
	if err != nil {
		return rupiq.Money{}, err
	}
	return rupiq.M(amount, cur), nil
}

// percent converts a rate flag value to a decimal.
func percent(rate float64) decimal.Decimal { return decimal.NewFromFloat(rate) }
