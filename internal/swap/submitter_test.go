package swap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	batchErr     error
	batchResults []PairResult
	batchCalls   int

	createCalls []Pair
	createErrs  map[int64]error // keyed by target duty id
	nextID      int64
}

func (f *fakeStorage) BatchCreateSwapRequests(_ context.Context, _ int64, pairs []Pair, _ string, _ bool) ([]PairResult, error) {
	f.batchCalls++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batchResults, nil
}

func (f *fakeStorage) CreateSwapRequest(_ context.Context, _ int64, pair Pair, _ string) (*domain.SwapRequest, error) {
	f.createCalls = append(f.createCalls, pair)
	if err := f.createErrs[pair.TargetDutyID]; err != nil {
		return nil, err
	}
	f.nextID++
	return &domain.SwapRequest{ID: f.nextID}, nil
}

type recordedNotification struct {
	UserID int64
	Type   domain.NotificationType
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(userID int64, typ domain.NotificationType, _, _ string, _ *int64) {
	f.sent = append(f.sent, recordedNotification{UserID: userID, Type: typ})
}

func somePairs(n int) []Pair {
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{
			OfferedDutyID: int64(100 + i),
			TargetDutyID:  int64(200 + i),
			ReceiverID:    int64(2 + i),
		})
	}
	return pairs
}

func TestSubmit_EmptyPairs(t *testing.T) {
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}

	result, err := NewSubmitter(storage, notifier).Submit(context.Background(), 1, nil, "", false)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoValidRequests, result.Outcome)
	assert.Zero(t, storage.batchCalls)
	assert.Empty(t, notifier.sent)
}

func TestSubmit_BatchSuccess(t *testing.T) {
	pairs := somePairs(2)
	storage := &fakeStorage{
		batchResults: []PairResult{
			{Pair: pairs[0], SwapRequestID: 1, Succeeded: true},
			{Pair: pairs[1], SwapRequestID: 2, Succeeded: true},
		},
	}
	notifier := &fakeNotifier{}

	result, err := NewSubmitter(storage, notifier).Submit(context.Background(), 1, pairs, "hi", false)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, 2, result.Succeeded)
	assert.Zero(t, result.Failed)
	assert.Empty(t, storage.createCalls)
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, domain.NotificationSwapRequested, notifier.sent[0].Type)
	assert.Equal(t, pairs[0].ReceiverID, notifier.sent[0].UserID)
}

func TestSubmit_PartialFailure(t *testing.T) {
	pairs := somePairs(3)
	storage := &fakeStorage{
		batchResults: []PairResult{
			{Pair: pairs[0], SwapRequestID: 1, Succeeded: true},
			{Pair: pairs[1], Error: "duplicate pending request"},
			{Pair: pairs[2], SwapRequestID: 2, Succeeded: true},
		},
	}
	notifier := &fakeNotifier{}

	result, err := NewSubmitter(storage, notifier).Submit(context.Background(), 1, pairs, "", false)

	require.NoError(t, err)
	assert.Equal(t, OutcomePartialFailure, result.Outcome)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, notifier.sent, 2)
}

func TestSubmit_TotalFailure(t *testing.T) {
	pairs := somePairs(2)
	storage := &fakeStorage{
		batchResults: []PairResult{
			{Pair: pairs[0], Error: "duplicate pending request"},
			{Pair: pairs[1], Error: "duty not found"},
		},
	}
	notifier := &fakeNotifier{}

	result, err := NewSubmitter(storage, notifier).Submit(context.Background(), 1, pairs, "", false)

	require.NoError(t, err)
	assert.Equal(t, OutcomeTotalFailure, result.Outcome)
	assert.Empty(t, notifier.sent)
}

func TestSubmit_FallsBackWhenBatchUnsupported(t *testing.T) {
	pairs := somePairs(3)
	storage := &fakeStorage{
		batchErr:   fmt.Errorf("calling batch function: %w", ErrBatchUnsupported),
		createErrs: map[int64]error{pairs[1].TargetDutyID: errors.New("duplicate pending request")},
	}
	notifier := &fakeNotifier{}

	result, err := NewSubmitter(storage, notifier).Submit(context.Background(), 1, pairs, "", false)

	require.NoError(t, err)
	assert.Equal(t, 1, storage.batchCalls)
	require.Len(t, storage.createCalls, 3)
	assert.Equal(t, pairs, storage.createCalls)
	assert.Equal(t, OutcomePartialFailure, result.Outcome)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, notifier.sent, 2)
}

func TestSubmit_OtherBatchErrorsPropagate(t *testing.T) {
	pairs := somePairs(1)
	boom := errors.New("connection refused")
	storage := &fakeStorage{batchErr: boom}
	notifier := &fakeNotifier{}

	_, err := NewSubmitter(storage, notifier).Submit(context.Background(), 1, pairs, "", true)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, storage.createCalls)
	assert.Empty(t, notifier.sent)
}
