package agent

import (
	"context"
	"fmt"

	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Files names the saved stores the assistant reads, and the settings it
// reports with. The command layer wires its file flags in here.
type Files struct {
	Ledger    string
	Market    string
	Snapshots string
	Currency  string
	TaxRate   float64
}

// newFacilitator creates the chat that owns the user conversation and
// delegates to the experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As the facilitator you are in charge of the conversation and of solving
			the user's request.

			Learn from the Tools what each expert can do and ask them questions.
			They are at your service and 100% dedicated to you, they keep the
			context of your previous questions.

			The user is here to understand a simulated portfolio: what it holds,
			what it traded and why, and what the tax-loss harvesting produced.
			Check the portfolio first, the user assumes you know their tickers.

			Devise a plan of questions to ask each expert and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the market research expert. It grounds its answers
// with Google Search, for questions about the companies and funds behind the
// simulated tickers.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert market researcher,
		very well aware of financial products and institutions,
		and of the latest news about the different funds and companies.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in markets. You can search and find anything related
			to financial institutions, companies, markets and funds. You leverage
			Google Search to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the
			user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the saved simulation run. Its
// functions read the ledger, market data and snapshot history named in
// 'files'.
func NewAnalyst(files Files) *Expert {
	lib := []Function{
		files.summaryFunc(),
		files.holdingsFunc(),
		files.transactionsFunc(),
		files.gainsFunc(),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the saved simulation run: the
		transaction ledger, the market data and the snapshot history.
		It can report the performance summary, the holdings with their open lots,
		the transactions with their rationale, and the realized gains.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the analyst of the user's simulated portfolio.
				You know how to use the Tools to extract the relevant figures from
				the saved run. You are part of a team of experts, yours is everything
				the simulation produced. Pardon their approximate language and figure
				out what they meant.

				Use the available tools to get information about the run:
				  - the performance summary
				  - the holdings and their lots
				  - the transactions and why each happened
				  - the realized gains, short term and long term
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func (f Files) summaryFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary reports the performance metrics of the saved run: deposits,
			final value, returns, realized losses with their estimated tax savings,
			and trade counts.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted performance summary of the run.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			ledger, err := foliosim.LoadLedgerFile(f.Ledger)
			if err != nil {
				return errorResponse(id, "Summary", err)
			}
			snapshots, err := foliosim.LoadSnapshotsFile(f.Snapshots)
			if err != nil {
				return errorResponse(id, "Summary", err)
			}
			if len(snapshots) == 0 {
				return errorResponse(id, "Summary", fmt.Errorf("no snapshot history in %q, run a simulation first", f.Snapshots))
			}
			metrics := foliosim.ComputeMetrics(ledger, snapshots, f.TaxRate)
			rng := date.Span(snapshots[0].Date, snapshots[len(snapshots)-1].Date)
			return outputResponse(id, "Summary", renderer.SummaryMarkdown(rng, metrics))
		},
	}
}

func (f Files) holdingsFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists the securities held at the end of the saved run, with
			their open lots, and values them at the given date's prices.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "Valuation date in YYYY-MM-DD format. Today is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the holdings and their open lots.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := dateArg(args, "date", date.Today())
			if err != nil {
				return errorResponse(id, "Holdings", err)
			}
			ledger, err := foliosim.LoadLedgerFile(f.Ledger)
			if err != nil {
				return errorResponse(id, "Holdings", err)
			}
			market, err := foliosim.LoadMarketFile(f.Market)
			if err != nil {
				return errorResponse(id, "Holdings", err)
			}
			p, err := foliosim.Replay(ledger, f.Currency, foliosim.LossFirst)
			if err != nil {
				return errorResponse(id, "Holdings", fmt.Errorf("cannot replay ledger: %w", err))
			}
			return outputResponse(id, "Holdings", renderer.HoldingsMarkdown(p, market, on))
		},
	}
}

func (f Files) transactionsFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Transactions",
			Description: `Transactions lists the ledger entries of the saved run in chronological
			order, with the memo explaining why the engine traded and the per-lot
			gain detail on sells.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from": {
						Type:        genai.TypeString,
						Description: "Start date in YYYY-MM-DD format. The oldest transaction is the default.",
					},
					"to": {
						Type:        genai.TypeString,
						Description: "End date in YYYY-MM-DD format. The newest transaction is the default.",
					},
					"security": {
						Type:        genai.TypeString,
						Description: "Only list transactions on this ticker. All tickers by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the transactions.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ledger, err := foliosim.LoadLedgerFile(f.Ledger)
			if err != nil {
				return errorResponse(id, "Transactions", err)
			}
			from, err := dateArg(args, "from", ledger.OldestTransactionDate())
			if err != nil {
				return errorResponse(id, "Transactions", err)
			}
			to, err := dateArg(args, "to", ledger.NewestTransactionDate())
			if err != nil {
				return errorResponse(id, "Transactions", err)
			}
			security := stringArg(args, "security")
			return outputResponse(id, "Transactions", renderer.TransactionsMarkdown(ledger, date.Span(from, to), security))
		},
	}
}

func (f Files) gainsFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Gains",
			Description: `Gains reports the realized gains and losses of a period, split by
			holding period into short term and long term buckets, with per-security
			and per-month detail.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from": {
						Type:        genai.TypeString,
						Description: "Start date in YYYY-MM-DD format. The oldest transaction is the default.",
					},
					"to": {
						Type:        genai.TypeString,
						Description: "End date in YYYY-MM-DD format. The newest transaction is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted realized gains report.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ledger, err := foliosim.LoadLedgerFile(f.Ledger)
			if err != nil {
				return errorResponse(id, "Gains", err)
			}
			from, err := dateArg(args, "from", ledger.OldestTransactionDate())
			if err != nil {
				return errorResponse(id, "Gains", err)
			}
			to, err := dateArg(args, "to", ledger.NewestTransactionDate())
			if err != nil {
				return errorResponse(id, "Gains", err)
			}
			report := foliosim.CalculateGains(ledger, date.Span(from, to), f.Currency)
			return outputResponse(id, "Gains", renderer.GainsMarkdown(report))
		},
	}
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

// dateArg reads an optional date argument, falling back when absent or
// empty.
func dateArg(args map[string]any, key string, fallback date.Date) (date.Date, error) {
	v, ok := args[key]
	if !ok {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return fallback, fmt.Errorf("argument %q is not a string as expected but %T", key, v)
	}
	if s == "" {
		return fallback, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return fallback, fmt.Errorf("argument %q must be a YYYY-MM-DD date, got %q", key, s)
	}
	return d, nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
