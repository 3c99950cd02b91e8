package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim/agent"
	"google.golang.org/genai"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	taxRate float64
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "interactive AI assistant over the saved run" }
func (*assistCmd) Usage() string {
	return `fsim assist [<question>]

  Starts an interactive session with the AI assistant. The assistant answers
  questions about the saved simulation run, reading the ledger, market data
  and snapshot history, and can research the securities behind the tickers.

  Requires a Gemini API key in the GEMINI_API_KEY environment variable.

Examples:
  # Open the chat session.
  fsim assist

  # Start with a question.
  fsim assist "which ticker produced the most harvested losses?"
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.taxRate, "tax-rate", 0.30, "Tax rate used to estimate savings from realized losses.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("initializing Gemini client: %v", err)
	}

	analyst := agent.NewAnalyst(agent.Files{
		Ledger:    *ledgerFile,
		Market:    *marketFile,
		Snapshots: *snapshotsFile,
		Currency:  *defaultCurrency,
		TaxRate:   c.taxRate,
	})
	researcher := agent.NewResearcher()

	a := agent.New(os.Stdout, os.Stdin, analyst, researcher)
	a.Render = printMarkdown

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		return fail("assistant failed: %v", err)
	}
	return subcommands.ExitSuccess
}
