package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/cashmatch/internal/models"
	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
)

func TestReadRequirementsCSV_DisplayHeaders(t *testing.T) {
	rows, err := ReadRequirementsCSV(strings.NewReader("Date,Amount ($mm)\n2024-01-01,$7.50\n\n2024-07-01,4.5\nNaT,1\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-01", rows[0].Date)
	assert.Equal(t, "7.5", rows[0].Amount.Decimal.String())
	assert.Equal(t, "NaT", rows[2].Date)
}

func TestReadBondsCSV_SnakeCaseHeadersAnyOrder(t *testing.T) {
	rows, err := ReadBondsCSV(strings.NewReader("price,maturity,coupon_rate_annual\n1.03,2024-07-01,7.5%\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-07-01", rows[0].Maturity)
	assert.Equal(t, "7.5", rows[0].CouponRateAnnual.Decimal.String())
	assert.Equal(t, "1.03", rows[0].Price.Decimal.String())
}

func TestReadBondsCSV_MissingColumn(t *testing.T) {
	_, err := ReadBondsCSV(strings.NewReader("Maturity,Price\n2024-07-01,1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, cashmatch.ErrInvalidInput))
	assert.Contains(t, err.Error(), "coupon")
}

func TestReadRequirementsCSV_BadAmount(t *testing.T) {
	_, err := ReadRequirementsCSV(strings.NewReader("Date,Amount\n2024-01-01,lots\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, cashmatch.ErrInvalidInput))
}

func TestReadRequirementsCSV_Empty(t *testing.T) {
	_, err := ReadRequirementsCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteThenReadCSV_SampleData(t *testing.T) {
	var reqBuf, bondBuf bytes.Buffer
	require.NoError(t, WriteRequirementsCSV(&reqBuf, RequirementRowsFrom(models.SampleRequirements())))
	require.NoError(t, WriteBondsCSV(&bondBuf, BondRowsFrom(models.SampleBonds())))

	assert.True(t, strings.HasPrefix(reqBuf.String(), "Date,Amount ($mm)\n"))
	assert.True(t, strings.HasPrefix(bondBuf.String(), "Maturity,Coupon (%),Price\n"))

	reqRows, err := ReadRequirementsCSV(&reqBuf)
	require.NoError(t, err)
	bondRows, err := ReadBondsCSV(&bondBuf)
	require.NoError(t, err)

	in, err := Clean(reqRows, bondRows)
	require.NoError(t, err)
	assert.Equal(t, models.SampleRequirements(), in.Requirements)
	assert.Equal(t, models.SampleBonds(), in.Bonds)
}
