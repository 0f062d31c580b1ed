package swap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
)

type Outcome string

const (
	OutcomeSuccess         Outcome = "SUCCESS"
	OutcomePartialFailure  Outcome = "PARTIAL_FAILURE"
	OutcomeTotalFailure    Outcome = "TOTAL_FAILURE"
	OutcomeNoValidRequests Outcome = "NO_VALID_REQUESTS"
)

// ErrBatchUnsupported is the capability signal: the storage backend has no
// server-side batch primitive. The submitter degrades to per-pair inserts;
// nothing else may be inferred from it.
var ErrBatchUnsupported = errors.New("batch swap creation not supported by storage")

// Storage is the slice of persistence the submitter consumes.
type Storage interface {
	// BatchCreateSwapRequests persists all pairs in one server-side
	// operation. With atomic set, any failing pair must roll back the whole
	// batch. Returns ErrBatchUnsupported when the primitive is absent.
	BatchCreateSwapRequests(ctx context.Context, senderID int64, pairs []Pair, message string, atomic bool) ([]PairResult, error)
	// CreateSwapRequest persists a single pair.
	CreateSwapRequest(ctx context.Context, senderID int64, pair Pair, message string) (*domain.SwapRequest, error)
}

// Notifier delivers fire-and-forget messages; failures never affect the swap.
type Notifier interface {
	Notify(userID int64, typ domain.NotificationType, title, message string, referenceID *int64)
}

type PairResult struct {
	Pair          Pair   `json:"pair"`
	SwapRequestID int64  `json:"swapRequestID,omitempty"`
	Succeeded     bool   `json:"succeeded"`
	Error         string `json:"error,omitempty"`
}

type BatchResult struct {
	Outcome   Outcome      `json:"outcome"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []PairResult `json:"results"`
}

type Submitter struct {
	storage  Storage
	notifier Notifier
}

func NewSubmitter(storage Storage, notifier Notifier) *Submitter {
	return &Submitter{storage: storage, notifier: notifier}
}

// Submit persists the paired requests as one batch. With atomic set the
// storage transaction is all-or-nothing; otherwise every pair is attempted
// and partial success is reported. When the batch primitive is missing the
// submitter falls back to sequential single inserts, keeping at least the
// partial-success semantics, so a missing optional server-side function
// never hard-fails a submission.
func (s *Submitter) Submit(ctx context.Context, senderID int64, pairs []Pair, message string, atomic bool) (BatchResult, error) {
	if len(pairs) == 0 {
		return BatchResult{Outcome: OutcomeNoValidRequests, Results: []PairResult{}}, nil
	}

	results, err := s.storage.BatchCreateSwapRequests(ctx, senderID, pairs, message, atomic)
	if err != nil {
		if !errors.Is(err, ErrBatchUnsupported) {
			return BatchResult{}, err
		}
		slog.Warn("batch swap primitive unavailable, falling back to sequential inserts", "pairs", len(pairs))
		results = s.submitSequential(ctx, senderID, pairs, message)
	}

	batch := summarize(results)
	s.notifySucceeded(batch.Results, message)

	return batch, nil
}

func (s *Submitter) submitSequential(ctx context.Context, senderID int64, pairs []Pair, message string) []PairResult {
	results := make([]PairResult, 0, len(pairs))
	for _, pair := range pairs {
		req, err := s.storage.CreateSwapRequest(ctx, senderID, pair, message)
		if err != nil {
			results = append(results, PairResult{Pair: pair, Error: err.Error()})
			continue
		}
		results = append(results, PairResult{Pair: pair, SwapRequestID: req.ID, Succeeded: true})
	}
	return results
}

func (s *Submitter) notifySucceeded(results []PairResult, message string) {
	for _, res := range results {
		if !res.Succeeded {
			continue
		}
		refID := res.SwapRequestID
		s.notifier.Notify(
			res.Pair.ReceiverID,
			domain.NotificationSwapRequested,
			"New duty swap request",
			fmt.Sprintf("A colleague offered duty %d for your duty %d. %s", res.Pair.OfferedDutyID, res.Pair.TargetDutyID, message),
			&refID,
		)
	}
}

func summarize(results []PairResult) BatchResult {
	batch := BatchResult{Results: results}
	for _, res := range results {
		if res.Succeeded {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}

	switch {
	case batch.Succeeded == 0:
		batch.Outcome = OutcomeTotalFailure
	case batch.Failed > 0:
		batch.Outcome = OutcomePartialFailure
	default:
		batch.Outcome = OutcomeSuccess
	}

	return batch
}
