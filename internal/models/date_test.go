package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Lenient(t *testing.T) {
	for _, in := range []string{"2025-07-01", "2025-7-1", " 2025-07-01 ", "2025-07-01T15:04:05Z"} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2025-07-01", d.String(), in)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "NaT", "2025-13-01", "01/07/2025"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestNewDate_Normalizes(t *testing.T) {
	d := NewDate(2025, time.January, 32)
	assert.Equal(t, "2025-02-01", d.String())
}

func TestDate_Ordering(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := MustParseDate("2024-07-01")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(MustParseDate("2024-1-1")))
	assert.True(t, a == MustParseDate("2024-1-1"), "dates must be comparable with ==")
}

func TestDate_JSON(t *testing.T) {
	req := CashRequirement{Date: MustParseDate("2026-01-01"), Amount: 1.5}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-01-01","amount":1.5}`, string(data))

	var back CashRequirement
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-1-1","amount":1.5}`), &back))
	assert.Equal(t, req, back)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"soon"}`), &back))
}

func TestDate_Zero(t *testing.T) {
	var d Date
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

func TestBond_SemiannualCoupon(t *testing.T) {
	assert.InDelta(t, 0.05, Bond{CouponRateAnnual: 10}.SemiannualCoupon(), 1e-12)
	assert.Zero(t, Bond{}.SemiannualCoupon())
}

func TestSampleData(t *testing.T) {
	reqs := SampleRequirements()
	bonds := SampleBonds()
	require.Len(t, reqs, 8)
	require.Len(t, bonds, 8)
	assert.Equal(t, "2024-01-01", reqs[0].Date.String())
	assert.Equal(t, 3.5, reqs[7].Amount)
	assert.Equal(t, 0.81, bonds[3].Price)
	assert.Zero(t, bonds[3].CouponRateAnnual)
}

func TestGlossary_HasTerms(t *testing.T) {
	g := Glossary()
	require.NotEmpty(t, g.Categories)
	seen := map[string]bool{}
	for _, c := range g.Categories {
		for _, term := range c.Terms {
			seen[term.Term] = true
		}
	}
	for _, want := range []string{"cash_matching", "surplus", "face_value", "semiannual_period", "lp"} {
		assert.True(t, seen[want], want)
	}
}
