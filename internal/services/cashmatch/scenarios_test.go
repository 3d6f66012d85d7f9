package cashmatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/cashmatch/internal/models"
)

func TestSweep_IndependentScenariosInOrder(t *testing.T) {
	svc := newTestService()
	rates := []float64{8, 0, 25, 4}

	results := svc.Sweep(context.Background(), models.SampleRequirements(), models.SampleBonds(), rates)
	require.Len(t, results, len(rates))

	for i, r := range results {
		assert.Equal(t, rates[i], r.ReinvestmentRateAnnual)
	}

	assert.Equal(t, "invalid_input", results[2].ErrorCode)
	assert.Nil(t, results[2].Result)
	assert.NotEmpty(t, results[2].Error)

	for _, i := range []int{0, 1, 3} {
		require.NotNil(t, results[i].Result, "rate %v: %s", rates[i], results[i].Error)
		assert.Empty(t, results[i].ErrorCode)
		assertLedgerInvariants(t, results[i].Result)
	}

	// higher reinvestment never costs more
	assert.LessOrEqual(t, results[3].Result.Portfolio.TotalCost, results[1].Result.Portfolio.TotalCost+1e-9)
	assert.LessOrEqual(t, results[0].Result.Portfolio.TotalCost, results[3].Result.Portfolio.TotalCost+1e-9)

	// each scenario matches a standalone run
	single, err := Optimize(models.SampleRequirements(), models.SampleBonds(), 4)
	require.NoError(t, err)
	assert.Equal(t, single.Portfolio, results[3].Result.Portfolio)
}

func TestSweep_Empty(t *testing.T) {
	results := newTestService().Sweep(context.Background(), models.SampleRequirements(), models.SampleBonds(), nil)
	assert.Empty(t, results)
}
