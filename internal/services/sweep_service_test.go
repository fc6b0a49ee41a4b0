package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-invest/internal/jobs"
	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
)

func newTestSweepService(t *testing.T) *SweepService {
	t.Helper()
	worker := jobs.NewWorker(3)
	t.Cleanup(worker.Shutdown)
	projections := NewProjectionService(nil, 0, testLimits, models.CurrencyINR)
	return NewSweepService(projections, worker)
}

func TestSweepService_Sweep(t *testing.T) {
	svc := newTestSweepService(t)
	base := projection.DefaultParameters()
	values := []float64{7, 9, 11, 13}

	resp, err := svc.Sweep(context.Background(), base, projection.FieldLoanInterestPct, values)
	require.NoError(t, err)
	assert.Equal(t, projection.FieldLoanInterestPct, resp.Field)
	require.Len(t, resp.Runs, len(values))

	for i, run := range resp.Runs {
		assert.Equal(t, values[i], run.Value, "runs keep request order")

		p, err := base.With(projection.FieldLoanInterestPct, values[i])
		require.NoError(t, err)
		expected, err := projection.Project(p)
		require.NoError(t, err)
		want, err := models.NewSweepRun(values[i], expected)
		require.NoError(t, err)
		assert.Equal(t, want, run)
	}

	// Dearer loans never improve the final position
	for i := 1; i < len(resp.Runs); i++ {
		assert.Less(t, resp.Runs[i].FinalNetProfit, resp.Runs[i-1].FinalNetProfit)
	}
}

func TestSweepService_Sweep_Errors(t *testing.T) {
	svc := newTestSweepService(t)
	base := projection.DefaultParameters()
	ctx := context.Background()

	_, err := svc.Sweep(ctx, base, projection.FieldHoldingYears, nil)
	assert.ErrorIs(t, err, ErrEmptySweep)

	_, err = svc.Sweep(ctx, base, projection.FieldHoldingYears, []float64{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, ErrSweepTooLarge)

	_, err = svc.Sweep(ctx, base, "rent", []float64{1})
	assert.ErrorIs(t, err, projection.ErrUnknownField)

	_, err = svc.Sweep(ctx, base, projection.FieldHoldingYears, []float64{5, 2.5})
	assert.ErrorIs(t, err, projection.ErrInvalidParameter)

	// One invalid run fails the sweep
	_, err = svc.Sweep(ctx, base, projection.FieldDownPaymentPct, []float64{20, 150, 30})
	assert.ErrorIs(t, err, projection.ErrInvalidParameter)
}

func TestSweepService_Sweep_CancelledContext(t *testing.T) {
	svc := newTestSweepService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Sweep(ctx, projection.DefaultParameters(), projection.FieldHoldingYears, []float64{5, 10})
	assert.ErrorIs(t, err, context.Canceled)
}
