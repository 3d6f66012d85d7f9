package cashmatch

import (
	"fmt"
	"slices"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// Timeline is the ordered period axis shared by requirements and bonds.
// Periods are 1-based.
type Timeline struct {
	dates  []models.Date
	period map[models.Date]int
}

// BuildTimeline merges requirement dates and bond maturities into one sorted
// axis of distinct dates.
func BuildTimeline(requirementDates, maturities []models.Date) (*Timeline, error) {
	if len(requirementDates) == 0 {
		return nil, fmt.Errorf("%w: no cash requirements", ErrEmptyInput)
	}
	if len(maturities) == 0 {
		return nil, fmt.Errorf("%w: no bonds", ErrEmptyInput)
	}

	dates := mergeDates(sortedDates(requirementDates), sortedDates(maturities))
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: timeline is empty", ErrEmptyInput)
	}

	period := make(map[models.Date]int, len(dates))
	for i, d := range dates {
		period[d] = i + 1
	}
	return &Timeline{dates: dates, period: period}, nil
}

// Len returns the number of periods.
func (t *Timeline) Len() int { return len(t.dates) }

// Dates returns a copy of the period dates in order.
func (t *Timeline) Dates() []models.Date { return slices.Clone(t.dates) }

// Period returns the 1-based period of d.
func (t *Timeline) Period(d models.Date) (int, bool) {
	p, ok := t.period[d]
	return p, ok
}

// Date returns the date of a 1-based period.
func (t *Timeline) Date(period int) models.Date { return t.dates[period-1] }

func sortedDates(in []models.Date) []models.Date {
	out := slices.Clone(in)
	slices.SortFunc(out, models.Date.Compare)
	return out
}

// mergeDates merges sorted series into one sorted series without duplicates.
func mergeDates(series ...[]models.Date) []models.Date {
	indexes := make([]int, len(series))
	var out []models.Date
	for {
		var (
			next  models.Date
			found bool
		)
		for i, index := range indexes {
			if index < len(series[i]) {
				if on := series[i][index]; !found || on.Before(next) {
					next, found = on, true
				}
			}
		}
		if !found {
			return out
		}
		// advance every series past the emitted date
		for i := range indexes {
			for indexes[i] < len(series[i]) && series[i][indexes[i]] == next {
				indexes[i]++
			}
		}
		out = append(out, next)
	}
}

// needsByPeriod returns the requirement due at each period, 0-indexed.
// Requirements sharing a date are summed.
func needsByPeriod(requirements []models.CashRequirement, tl *Timeline) []float64 {
	needs := make([]float64, tl.Len())
	for _, r := range requirements {
		if p, ok := tl.Period(r.Date); ok {
			needs[p-1] += r.Amount
		}
	}
	return needs
}
