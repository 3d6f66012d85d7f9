package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/bobmcallan/cashmatch/internal/app"
	"github.com/bobmcallan/cashmatch/internal/ingest"
	"github.com/bobmcallan/cashmatch/internal/models"
	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
)

// optimizeCmd solves one schedule and prints the markdown report.
type optimizeCmd struct {
	app *app.App
	out io.Writer

	requirementsFile string
	bondsFile        string
	rate             float64
	sweep            string
	portfolioCSV     string
	ledgerCSV        string
	chartFile        string
	plain            bool
}

func (*optimizeCmd) Name() string     { return "optimize" }
func (*optimizeCmd) Synopsis() string { return "find the minimum-cost bond portfolio for a cash schedule" }
func (*optimizeCmd) Usage() string {
	return `cashmatch optimize -r <requirements.csv> -b <bonds.csv> [-rate <pct>] [-sweep <pct,pct,...>]

  Reads the cash requirements and candidate bonds, solves the cash-matching
  linear program and prints the portfolio, the cash ledger and the validation
  verdict. Rows with unparsable dates are skipped and reported.

Usage Examples:
# Solve the bundled sample at 4% reinvestment.
$ cashmatch sample && cashmatch optimize -r cash_requirements.csv -b bonds.csv

# Compare total cost across reinvestment rates.
$ cashmatch optimize -r cash_requirements.csv -b bonds.csv -sweep 0,2,4,6

`
}

func (c *optimizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.requirementsFile, "r", "", "CSV of cash requirements (Date, Amount ($mm)). Uses the sample schedule when empty.")
	f.StringVar(&c.bondsFile, "b", "", "CSV of candidate bonds (Maturity, Coupon (%), Price). Uses the sample bonds when empty.")
	f.Float64Var(&c.rate, "rate", -1, "Annual reinvestment rate in percent, 0-20. Negative uses the configured default.")
	f.StringVar(&c.sweep, "sweep", "", "Comma-separated reinvestment rates to compare instead of a single run.")
	f.StringVar(&c.portfolioCSV, "portfolio-csv", "", "Write the optimal portfolio to this CSV file.")
	f.StringVar(&c.ledgerCSV, "ledger-csv", "", "Write the cash ledger to this CSV file.")
	f.StringVar(&c.chartFile, "chart", "", "Write the cash ledger chart to this PNG file.")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it.")
}

func (c *optimizeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.app == nil {
		a, err := app.NewApp(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		c.app = a
	}

	if err := c.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code := cashmatch.ErrorCode(err); code == "empty_input" || code == "invalid_input" || code == "invalid_date" {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *optimizeCmd) run(ctx context.Context) error {
	input, err := c.readInput()
	if err != nil {
		return err
	}
	for _, d := range input.Dropped {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s row %d: %s\n", d.Table, d.Row, d.Reason)
	}

	if c.sweep != "" {
		rates, err := parseRates(c.sweep)
		if err != nil {
			return err
		}
		scenarios := c.app.CashMatchService.Sweep(ctx, input.Requirements, input.Bonds, rates)
		printMarkdown(c.out, sweepMarkdown(scenarios), c.plain)
		return nil
	}

	rate := c.rate
	if rate < 0 {
		rate = c.app.Config.Optimizer.DefaultReinvestmentRate
	}

	result, err := c.app.CashMatchService.Optimize(ctx, input.Requirements, input.Bonds, rate)
	if err != nil {
		return err
	}

	printMarkdown(c.out, c.app.ReportService.Markdown(result), c.plain)
	return c.export(result)
}

func (c *optimizeCmd) readInput() (*ingest.Input, error) {
	reqRows := ingest.RequirementRowsFrom(models.SampleRequirements())
	if c.requirementsFile != "" {
		f, err := os.Open(c.requirementsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if reqRows, err = ingest.ReadRequirementsCSV(f); err != nil {
			return nil, fmt.Errorf("%s: %w", c.requirementsFile, err)
		}
	}

	bondRows := ingest.BondRowsFrom(models.SampleBonds())
	if c.bondsFile != "" {
		f, err := os.Open(c.bondsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if bondRows, err = ingest.ReadBondsCSV(f); err != nil {
			return nil, fmt.Errorf("%s: %w", c.bondsFile, err)
		}
	}

	return ingest.Clean(reqRows, bondRows)
}

func (c *optimizeCmd) export(result *models.OptimizationResult) error {
	exports := []struct {
		path   string
		render func(*models.OptimizationResult) ([]byte, error)
	}{
		{c.portfolioCSV, c.app.ReportService.PortfolioCSV},
		{c.ledgerCSV, c.app.ReportService.LedgerCSV},
		{c.chartFile, c.app.ReportService.LedgerChart},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		data, err := e.render(result)
		if err != nil {
			return fmt.Errorf("%s: %w", e.path, err)
		}
		if err := os.WriteFile(e.path, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", e.path)
	}
	return nil
}

func parseRates(s string) ([]float64, error) {
	var rates []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sweep rate %q is not a number", cashmatch.ErrInvalidInput, part)
		}
		rates = append(rates, r)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: -sweep needs at least one rate", cashmatch.ErrInvalidInput)
	}
	return rates, nil
}

// sweepMarkdown tabulates total cost per reinvestment rate.
func sweepMarkdown(scenarios []models.ScenarioResult) string {
	var sb strings.Builder

	sb.WriteString("# Reinvestment Rate Sweep\n\n")
	sb.WriteString("| Rate | Total Cost ($mm) | Bonds Used | Verdict |\n")
	sb.WriteString("|------|------------------|------------|---------|\n")
	for _, s := range scenarios {
		if s.Result == nil {
			sb.WriteString(fmt.Sprintf("| %.2f%% | - | - | %s |\n", s.ReinvestmentRateAnnual, s.Error))
			continue
		}
		verdict := "satisfied"
		if !s.Result.Verdict.AllSatisfied {
			verdict = "deficit"
		}
		sb.WriteString(fmt.Sprintf("| %.2f%% | $%.4f | %d | %s |\n",
			s.ReinvestmentRateAnnual, s.Result.Portfolio.TotalCost, s.Result.Portfolio.BondsUsed, verdict))
	}
	return sb.String()
}
