package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls int
}

func (s *countingSweeper) SweepPendingInvoices(ctx context.Context) error {
	s.calls++
	return nil
}

type countingRefresher struct {
	calls int
}

func (r *countingRefresher) RefreshStaleRates(ctx context.Context) error {
	r.calls++
	return nil
}

func TestRunSyncThrottlesRepeatedCalls(t *testing.T) {
	sweeper := &countingSweeper{}
	refresher := &countingRefresher{}
	uc := NewDefaultMaintenanceUsecase(sweeper, refresher, nil, 5*time.Minute)

	assert.True(t, uc.RunSync(context.Background()))
	assert.False(t, uc.RunSync(context.Background()))
	assert.False(t, uc.RunSync(context.Background()))

	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, 1, refresher.calls)
}

func TestRunSyncRunsAgainAfterInterval(t *testing.T) {
	sweeper := &countingSweeper{}
	refresher := &countingRefresher{}
	uc := NewDefaultMaintenanceUsecase(sweeper, refresher, nil, 10*time.Millisecond)

	assert.True(t, uc.RunSync(context.Background()))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, uc.RunSync(context.Background()))

	assert.Equal(t, 2, sweeper.calls)
}
