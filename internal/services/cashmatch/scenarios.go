package cashmatch

import (
	"context"
	"slices"
	"sync"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// Sweep runs one independent optimization per reinvestment rate
// concurrently. Each scenario works on its own copies of the inputs and its
// own timeline, matrix and LP. Results come back in the order of rates.
func (s *Service) Sweep(ctx context.Context, requirements []models.CashRequirement, bonds []models.Bond, rates []float64) []models.ScenarioResult {
	results := make([]models.ScenarioResult, len(rates))

	var wg sync.WaitGroup
	for i, rate := range rates {
		wg.Add(1)
		go func(i int, rate float64, reqs []models.CashRequirement, bonds []models.Bond) {
			defer wg.Done()
			res, err := s.Optimize(ctx, reqs, bonds, rate)
			results[i] = models.ScenarioResult{ReinvestmentRateAnnual: rate, Result: res}
			if err != nil {
				results[i].Error = err.Error()
				results[i].ErrorCode = ErrorCode(err)
			}
		}(i, rate, slices.Clone(requirements), slices.Clone(bonds))
	}
	wg.Wait()

	return results
}
