package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/cashmatch/internal/app"
	"github.com/bobmcallan/cashmatch/internal/common"
	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
)

func testApp() *app.App {
	return app.NewAppWithConfig(common.NewDefaultConfig(), common.NewSilentLogger())
}

func TestSampleThenOptimize(t *testing.T) {
	dir := t.TempDir()
	s := &sampleCmd{
		requirementsFile: filepath.Join(dir, "req.csv"),
		bondsFile:        filepath.Join(dir, "bonds.csv"),
	}
	require.NoError(t, s.run())

	var out bytes.Buffer
	c := &optimizeCmd{
		app:              testApp(),
		out:              &out,
		requirementsFile: s.requirementsFile,
		bondsFile:        s.bondsFile,
		rate:             -1,
		portfolioCSV:     filepath.Join(dir, "portfolio.csv"),
		ledgerCSV:        filepath.Join(dir, "ledger.csv"),
		chartFile:        filepath.Join(dir, "chart.png"),
		plain:            true,
	}
	require.NoError(t, c.run(context.Background()))

	assert.Contains(t, out.String(), "# Cash Matching Optimization")
	assert.Contains(t, out.String(), "**Reinvestment Rate:** 4.00%")
	assert.Contains(t, out.String(), "All constraints satisfied")

	portfolio, err := os.ReadFile(c.portfolioCSV)
	require.NoError(t, err)
	assert.Contains(t, string(portfolio), "maturity,couponRateAnnual,price,faceValue,cost")

	ledger, err := os.ReadFile(c.ledgerCSV)
	require.NoError(t, err)
	assert.Contains(t, string(ledger), "2027-07-01")

	png, err := os.ReadFile(c.chartFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestOptimize_Sweep(t *testing.T) {
	var out bytes.Buffer
	c := &optimizeCmd{app: testApp(), out: &out, rate: -1, sweep: "0, 4%, 30", plain: true}

	require.NoError(t, c.run(context.Background()))

	assert.Contains(t, out.String(), "# Reinvestment Rate Sweep")
	assert.Contains(t, out.String(), "| 0.00% | $")
	assert.Contains(t, out.String(), "| 4.00% | $")
	assert.Contains(t, out.String(), "| 30.00% | - | - |")
}

func TestOptimize_InfeasibleFile(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "req.csv")
	bondPath := filepath.Join(dir, "bonds.csv")
	require.NoError(t, os.WriteFile(reqPath, []byte("Date,Amount ($mm)\n2024-01-01,1\n"), 0o644))
	require.NoError(t, os.WriteFile(bondPath, []byte("Maturity,Coupon (%),Price\n2025-01-01,0,0.9\n"), 0o644))

	var out bytes.Buffer
	c := &optimizeCmd{app: testApp(), out: &out, requirementsFile: reqPath, bondsFile: bondPath, rate: -1, plain: true}

	err := c.run(context.Background())
	assert.ErrorIs(t, err, cashmatch.ErrInfeasible)
	assert.Empty(t, out.String())
}

func TestParseRates(t *testing.T) {
	rates, err := parseRates(" 1,2.5%, ,4 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 4}, rates)

	_, err = parseRates("abc")
	assert.ErrorIs(t, err, cashmatch.ErrInvalidInput)

	_, err = parseRates(" , ")
	assert.ErrorIs(t, err, cashmatch.ErrInvalidInput)
}
