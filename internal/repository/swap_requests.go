package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/crewdeck-dev/crewdeck/backend/internal/swap"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUndefinedFunction = "42883"
	pgUniqueViolation   = "23505"
)

// BatchCreateSwapRequests delegates to the server-side function
// create_swap_requests_batch. When the function is absent (SQLSTATE 42883)
// the structured swap.ErrBatchUnsupported is returned so the submitter can
// take its sequential fallback; no error-message matching anywhere.
func (r *Repository) BatchCreateSwapRequests(ctx context.Context, senderID int64, pairs []swap.Pair, message string, atomic bool) ([]swap.PairResult, error) {
	pairsJSON, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT offered_duty_id, target_duty_id, receiver_id, swap_request_id, succeeded, COALESCE(error, '')
		FROM create_swap_requests_batch($1, $2::jsonb, $3, $4)
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, senderID, pairsJSON, message, atomic)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedFunction {
			return nil, fmt.Errorf("create_swap_requests_batch: %w", swap.ErrBatchUnsupported)
		}
		return nil, err
	}
	defer rows.Close()

	results := make([]swap.PairResult, 0, len(pairs))
	for rows.Next() {
		var res swap.PairResult
		var requestID sql.NullInt64
		dst := []any{&res.Pair.OfferedDutyID, &res.Pair.TargetDutyID, &res.Pair.ReceiverID, &requestID, &res.Succeeded, &res.Error}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		res.SwapRequestID = requestID.Int64
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// CreateSwapRequest inserts a single PENDING request. The partial unique
// index on (sender_duty_id, target_duty_id) WHERE status = 'PENDING' keeps
// at most one in-flight request per duty pair.
func (r *Repository) CreateSwapRequest(ctx context.Context, senderID int64, pair swap.Pair, message string) (*domain.SwapRequest, error) {
	query := `
		INSERT INTO swap_requests (sender_id, receiver_id, sender_duty_id, target_duty_id, message, status)
		VALUES ($1, $2, $3, $4, $5, 'PENDING')
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.SwapRequest{
		SenderID:     senderID,
		ReceiverID:   pair.ReceiverID,
		SenderDutyID: pair.OfferedDutyID,
		TargetDutyID: pair.TargetDutyID,
		Message:      message,
		Status:       domain.SwapStatusPending,
	}

	args := []any{senderID, pair.ReceiverID, pair.OfferedDutyID, pair.TargetDutyID, message}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "swap_requests_pending_pair_key" {
			return nil, ErrDuplicateSwapRequest
		}
		return nil, err
	}

	return req, nil
}

func (r *Repository) GetSwapRequestByID(id int64) (*domain.SwapRequest, error) {
	query := `
		SELECT sender_id, receiver_id, sender_duty_id, target_duty_id,
			COALESCE(message, ''), status, COALESCE(response_message, ''), created_at, version
		FROM swap_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.SwapRequest{
		ID: id,
	}

	dst := []any{&req.SenderID, &req.ReceiverID, &req.SenderDutyID, &req.TargetDutyID, &req.Message, &req.Status, &req.ResponseMessage, &req.CreatedAt, &req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return req, nil
}

// GetUserSwapRequests returns requests the user sent or received.
func (r *Repository) GetUserSwapRequests(userID int64) ([]*domain.SwapRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, sender_duty_id, target_duty_id,
			COALESCE(message, ''), status, COALESCE(response_message, ''), created_at, version
		FROM swap_requests
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := make([]*domain.SwapRequest, 0)
	for rows.Next() {
		req := &domain.SwapRequest{}
		dst := []any{&req.ID, &req.SenderID, &req.ReceiverID, &req.SenderDutyID, &req.TargetDutyID, &req.Message, &req.Status, &req.ResponseMessage, &req.CreatedAt, &req.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reqs, nil
}

// RespondToSwapRequest moves a PENDING request to APPROVED or DENIED exactly
// once. Approval exchanges ownership of the two duties in the same
// transaction, so the status change and the exchange cannot come apart.
func (r *Repository) RespondToSwapRequest(req *domain.SwapRequest, approve bool, responseMessage string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	status := domain.SwapStatusDenied
	if approve {
		status = domain.SwapStatusApproved
	}

	query := `
		UPDATE swap_requests
		SET status = $1, response_message = $2, version = version + 1
		WHERE id = $3 AND version = $4 AND status = 'PENDING'
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, status, responseMessage, req.ID, req.Version).Scan(&req.Version); err != nil {
		return err
	}

	if approve {
		query = `UPDATE duties SET user_id = $1, version = version + 1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, req.ReceiverID, req.SenderDutyID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, req.SenderID, req.TargetDutyID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	req.Status = status
	req.ResponseMessage = responseMessage

	return nil
}

// CancelSwapRequest lets the sender withdraw a still-PENDING request.
func (r *Repository) CancelSwapRequest(req *domain.SwapRequest) error {
	query := `
		UPDATE swap_requests
		SET status = 'CANCELLED', version = version + 1
		WHERE id = $1 AND version = $2 AND status = 'PENDING'
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, req.ID, req.Version).Scan(&req.Version); err != nil {
		return err
	}

	req.Status = domain.SwapStatusCancelled

	return nil
}
