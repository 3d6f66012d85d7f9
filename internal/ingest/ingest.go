// Package ingest coerces loosely-typed requirement and bond rows into the
// typed inputs of the cash-matching engine. Rows with a missing or
// unparsable date are dropped and reported; any other bad value rejects
// the whole request.
package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/cashmatch/internal/models"
	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
)

// RequirementRow is a cash requirement as entered in a grid or file.
type RequirementRow struct {
	Date   string              `json:"date"`
	Amount decimal.NullDecimal `json:"amount"`
}

// BondRow is a candidate bond as entered in a grid or file.
type BondRow struct {
	Maturity         string              `json:"maturity"`
	CouponRateAnnual decimal.NullDecimal `json:"coupon_rate_annual"`
	Price            decimal.NullDecimal `json:"price"`
}

// Table names used in DroppedRow.
const (
	TableRequirements = "cash_requirements"
	TableBonds        = "bonds"
)

// DroppedRow records a row excluded for an invalid date.
type DroppedRow struct {
	Table  string `json:"table"`
	Row    int    `json:"row"` // 1-based
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Err returns the row as an ErrInvalidDate error.
func (d DroppedRow) Err() error {
	return fmt.Errorf("%w: %s row %d: %s", cashmatch.ErrInvalidDate, d.Table, d.Row, d.Reason)
}

// Input is the cleaned, typed input for one optimization.
type Input struct {
	Requirements []models.CashRequirement
	Bonds        []models.Bond
	Dropped      []DroppedRow
}

var (
	hundred = decimal.NewFromInt(100)
)

// Clean converts both tables. It fails with ErrEmptyInput when a table has
// no valid rows left and with ErrInvalidInput for out-of-range values.
func Clean(reqRows []RequirementRow, bondRows []BondRow) (*Input, error) {
	in := &Input{}

	for i, row := range reqRows {
		d, err := models.ParseDate(row.Date)
		if err != nil {
			in.Dropped = append(in.Dropped, DroppedRow{Table: TableRequirements, Row: i + 1, Value: row.Date, Reason: err.Error()})
			continue
		}
		if !row.Amount.Valid {
			return nil, fmt.Errorf("%w: cash requirement row %d has no amount", cashmatch.ErrInvalidInput, i+1)
		}
		if row.Amount.Decimal.IsNegative() {
			return nil, fmt.Errorf("%w: cash requirement row %d amount %s is negative", cashmatch.ErrInvalidInput, i+1, row.Amount.Decimal)
		}
		in.Requirements = append(in.Requirements, models.CashRequirement{
			Date:   d,
			Amount: row.Amount.Decimal.InexactFloat64(),
		})
	}

	for i, row := range bondRows {
		d, err := models.ParseDate(row.Maturity)
		if err != nil {
			in.Dropped = append(in.Dropped, DroppedRow{Table: TableBonds, Row: i + 1, Value: row.Maturity, Reason: err.Error()})
			continue
		}
		if !row.CouponRateAnnual.Valid || !row.Price.Valid {
			return nil, fmt.Errorf("%w: bond row %d needs both coupon and price", cashmatch.ErrInvalidInput, i+1)
		}
		coupon, price := row.CouponRateAnnual.Decimal, row.Price.Decimal
		if coupon.IsNegative() || coupon.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: bond row %d coupon %s%% outside [0, 100]", cashmatch.ErrInvalidInput, i+1, coupon)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: bond row %d price %s is negative", cashmatch.ErrInvalidInput, i+1, price)
		}
		in.Bonds = append(in.Bonds, models.Bond{
			Maturity:         d,
			CouponRateAnnual: coupon.InexactFloat64(),
			Price:            price.InexactFloat64(),
		})
	}

	if len(in.Requirements) == 0 {
		return nil, fmt.Errorf("%w: no valid cash requirements found, check date formats", cashmatch.ErrEmptyInput)
	}
	if len(in.Bonds) == 0 {
		return nil, fmt.Errorf("%w: no valid bonds found, check date formats", cashmatch.ErrEmptyInput)
	}
	return in, nil
}

// RequirementRowsFrom converts typed requirements back to rows.
func RequirementRowsFrom(reqs []models.CashRequirement) []RequirementRow {
	rows := make([]RequirementRow, len(reqs))
	for i, r := range reqs {
		rows[i] = RequirementRow{Date: r.Date.String(), Amount: nullDecimal(r.Amount)}
	}
	return rows
}

// BondRowsFrom converts typed bonds back to rows.
func BondRowsFrom(bonds []models.Bond) []BondRow {
	rows := make([]BondRow, len(bonds))
	for i, b := range bonds {
		rows[i] = BondRow{
			Maturity:         b.Maturity.String(),
			CouponRateAnnual: nullDecimal(b.CouponRateAnnual),
			Price:            nullDecimal(b.Price),
		}
	}
	return rows
}

func nullDecimal(f float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}

// parseNumber accepts plain decimals and the grid display forms "$1.02" and "6.75%".
func parseNumber(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
