package ingest

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/cashmatch/internal/models"
	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestClean_DropsInvalidDates(t *testing.T) {
	in, err := Clean(
		[]RequirementRow{
			{Date: "2024-01-01", Amount: dec("7.50")},
			{Date: "NaT", Amount: dec("4.50")},
			{Date: "", Amount: dec("1")},
		},
		[]BondRow{
			{Maturity: "2024-1-1", CouponRateAnnual: dec("7"), Price: dec("1.00")},
			{Maturity: "someday", CouponRateAnnual: dec("7"), Price: dec("1.00")},
		},
	)
	require.NoError(t, err)

	require.Len(t, in.Requirements, 1)
	assert.Equal(t, 7.5, in.Requirements[0].Amount)
	require.Len(t, in.Bonds, 1)
	assert.Equal(t, "2024-01-01", in.Bonds[0].Maturity.String())

	require.Len(t, in.Dropped, 3)
	assert.Equal(t, TableRequirements, in.Dropped[0].Table)
	assert.Equal(t, 2, in.Dropped[0].Row)
	assert.Equal(t, "NaT", in.Dropped[0].Value)
	assert.Equal(t, TableBonds, in.Dropped[2].Table)
	assert.True(t, errors.Is(in.Dropped[2].Err(), cashmatch.ErrInvalidDate))
}

func TestClean_EmptyAfterDropping(t *testing.T) {
	_, err := Clean(
		[]RequirementRow{{Date: "bad", Amount: dec("1")}},
		[]BondRow{{Maturity: "2025-01-01", CouponRateAnnual: dec("0"), Price: dec("0.9")}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cashmatch.ErrEmptyInput))
	assert.Contains(t, err.Error(), "cash requirements")

	_, err = Clean([]RequirementRow{{Date: "2025-01-01", Amount: dec("1")}}, nil)
	assert.True(t, errors.Is(err, cashmatch.ErrEmptyInput))
}

func TestClean_RejectsBadValues(t *testing.T) {
	okReq := []RequirementRow{{Date: "2025-01-01", Amount: dec("1")}}
	okBond := []BondRow{{Maturity: "2025-01-01", CouponRateAnnual: dec("5"), Price: dec("1")}}

	cases := []struct {
		name  string
		reqs  []RequirementRow
		bonds []BondRow
	}{
		{"negative amount", []RequirementRow{{Date: "2025-01-01", Amount: dec("-1")}}, okBond},
		{"missing amount", []RequirementRow{{Date: "2025-01-01"}}, okBond},
		{"coupon over 100", okReq, []BondRow{{Maturity: "2025-01-01", CouponRateAnnual: dec("100.01"), Price: dec("1")}}},
		{"negative coupon", okReq, []BondRow{{Maturity: "2025-01-01", CouponRateAnnual: dec("-1"), Price: dec("1")}}},
		{"negative price", okReq, []BondRow{{Maturity: "2025-01-01", CouponRateAnnual: dec("5"), Price: dec("-0.01")}}},
		{"missing price", okReq, []BondRow{{Maturity: "2025-01-01", CouponRateAnnual: dec("5")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Clean(tc.reqs, tc.bonds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cashmatch.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestRows_JSONAcceptsNumbersAndStrings(t *testing.T) {
	var rows []BondRow
	require.NoError(t, json.Unmarshal([]byte(`[
		{"maturity":"2025-07-01","coupon_rate_annual":0,"price":"0.81"},
		{"maturity":"2026-01-01","coupon_rate_annual":"10.00","price":1.16}
	]`), &rows))

	in, err := Clean([]RequirementRow{{Date: "2025-07-01", Amount: dec("1")}}, rows)
	require.NoError(t, err)
	assert.Equal(t, 0.81, in.Bonds[0].Price)
	assert.Equal(t, 10.0, in.Bonds[1].CouponRateAnnual)
}

func TestRowsFrom_RoundTrip(t *testing.T) {
	in, err := Clean(RequirementRowsFrom(models.SampleRequirements()), BondRowsFrom(models.SampleBonds()))
	require.NoError(t, err)
	assert.Equal(t, models.SampleRequirements(), in.Requirements)
	assert.Equal(t, models.SampleBonds(), in.Bonds)
	assert.Empty(t, in.Dropped)
}

func TestParseNumber(t *testing.T) {
	cases := map[string]string{
		"1.02":   "1.02",
		"$1.02":  "1.02",
		"6.75%":  "6.75",
		" 1,250": "1250",
	}
	for in, want := range cases {
		got, err := parseNumber(in)
		require.NoError(t, err, in)
		require.True(t, got.Valid, in)
		assert.True(t, got.Decimal.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got.Decimal)
	}

	got, err := parseNumber("  ")
	require.NoError(t, err)
	assert.False(t, got.Valid)

	_, err = parseNumber("abc")
	assert.Error(t, err)
}
