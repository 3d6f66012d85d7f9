package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bobmcallan/cashmatch/internal/services/cashmatch"
)

// Accepted header spellings, lower-cased. The first entry is written by the
// CSV writers.
var (
	dateHeaders     = []string{"date", "requirement date"}
	amountHeaders   = []string{"amount ($mm)", "amount", "amount_mm"}
	maturityHeaders = []string{"maturity", "maturity date"}
	couponHeaders   = []string{"coupon (%)", "coupon", "coupon_rate_annual", "coupon rate (annual %)"}
	priceHeaders    = []string{"price", "current price"}
)

// ReadRequirementsCSV reads a requirement table with a header row.
func ReadRequirementsCSV(r io.Reader) ([]RequirementRow, error) {
	records, cols, err := readTable(r, map[string][]string{"date": dateHeaders, "amount": amountHeaders})
	if err != nil {
		return nil, err
	}

	rows := make([]RequirementRow, 0, len(records))
	for i, rec := range records {
		amount, err := parseNumber(field(rec, cols["amount"]))
		if err != nil {
			return nil, fmt.Errorf("%w: requirements line %d amount: %v", cashmatch.ErrInvalidInput, i+2, err)
		}
		rows = append(rows, RequirementRow{Date: field(rec, cols["date"]), Amount: amount})
	}
	return rows, nil
}

// ReadBondsCSV reads a bond table with a header row.
func ReadBondsCSV(r io.Reader) ([]BondRow, error) {
	records, cols, err := readTable(r, map[string][]string{
		"maturity": maturityHeaders,
		"coupon":   couponHeaders,
		"price":    priceHeaders,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]BondRow, 0, len(records))
	for i, rec := range records {
		coupon, err := parseNumber(field(rec, cols["coupon"]))
		if err != nil {
			return nil, fmt.Errorf("%w: bonds line %d coupon: %v", cashmatch.ErrInvalidInput, i+2, err)
		}
		price, err := parseNumber(field(rec, cols["price"]))
		if err != nil {
			return nil, fmt.Errorf("%w: bonds line %d price: %v", cashmatch.ErrInvalidInput, i+2, err)
		}
		rows = append(rows, BondRow{Maturity: field(rec, cols["maturity"]), CouponRateAnnual: coupon, Price: price})
	}
	return rows, nil
}

// WriteRequirementsCSV writes rows using the canonical headers.
func WriteRequirementsCSV(w io.Writer, rows []RequirementRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Amount ($mm)"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Date, row.Amount.Decimal.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBondsCSV writes rows using the canonical headers.
func WriteBondsCSV(w io.Writer, rows []BondRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Maturity", "Coupon (%)", "Price"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Maturity, row.CouponRateAnnual.Decimal.String(), row.Price.Decimal.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readTable reads all records and resolves each wanted column by header.
func readTable(r io.Reader, wanted map[string][]string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: csv has no header row", cashmatch.ErrInvalidInput)
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	cols := make(map[string]int, len(wanted))
	for key, names := range wanted {
		found := false
		for _, name := range names {
			if idx, ok := header[name]; ok {
				cols[key] = idx
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("%w: csv is missing a %q column", cashmatch.ErrInvalidInput, names[0])
		}
	}

	var body [][]string
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		body = append(body, rec)
	}
	return body, cols, nil
}

func field(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
