package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/cashmatch/internal/ingest"
	"github.com/bobmcallan/cashmatch/internal/models"
)

// sampleCmd writes the default inputs as CSV files to start from.
type sampleCmd struct {
	requirementsFile string
	bondsFile        string
}

func (*sampleCmd) Name() string     { return "sample" }
func (*sampleCmd) Synopsis() string { return "write the default requirement and bond CSV files" }
func (*sampleCmd) Usage() string {
	return `cashmatch sample [-r <requirements.csv>] [-b <bonds.csv>]

  Writes the default liability schedule and candidate bond list. Edit them and
  pass them to 'cashmatch optimize'.
`
}

func (c *sampleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.requirementsFile, "r", "cash_requirements.csv", "Output path for the cash requirements.")
	f.StringVar(&c.bondsFile, "b", "bonds.csv", "Output path for the candidate bonds.")
}

func (c *sampleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", c.requirementsFile, c.bondsFile)
	return subcommands.ExitSuccess
}

func (c *sampleCmd) run() error {
	reqFile, err := os.Create(c.requirementsFile)
	if err != nil {
		return err
	}
	defer reqFile.Close()
	if err := ingest.WriteRequirementsCSV(reqFile, ingest.RequirementRowsFrom(models.SampleRequirements())); err != nil {
		return fmt.Errorf("write %s: %w", c.requirementsFile, err)
	}

	bondFile, err := os.Create(c.bondsFile)
	if err != nil {
		return err
	}
	defer bondFile.Close()
	if err := ingest.WriteBondsCSV(bondFile, ingest.BondRowsFrom(models.SampleBonds())); err != nil {
		return fmt.Errorf("write %s: %w", c.bondsFile, err)
	}
	return nil
}
