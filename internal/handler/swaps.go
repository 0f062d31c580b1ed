package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/crewdeck-dev/crewdeck/backend/internal/swap"
)

// SubmitSwapBatch pairs the requested target duties with the user's offered
// duties and submits the batch. With atomic set, the whole batch stands or
// falls together; otherwise partial success is reported per pair.
func (h *Handler) SubmitSwapBatch(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		TargetDutyIDs  []int64 `json:"targetDutyIDs" validate:"required,min=1"`
		OfferedDutyIDs []int64 `json:"offeredDutyIDs" validate:"required,min=1"`
		Message        string  `json:"message"`
		Atomic         bool    `json:"atomic"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	requested, err := h.loadDuties(req.TargetDutyIDs)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "one of the requested duties does not exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	offered, err := h.loadDuties(req.OfferedDutyIDs)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "one of the offered duties does not exist")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// only the user's own duties may be offered
	for _, duty := range offered {
		if duty.UserID == nil || *duty.UserID != myInfo.ID {
			h.errorResponse(w, r, "you can only offer your own duties")
			return
		}
	}

	pairing := swap.Pairing(requested, offered, myInfo.ID)
	if len(pairing.Pairs) == 0 {
		h.metrics.SwapBatches.WithLabelValues(string(swap.OutcomeNoValidRequests)).Inc()
		h.successResponse(w, r, "no valid swap requests could be formed", map[string]any{
			"outcome":  swap.OutcomeNoValidRequests,
			"failures": pairing.Failures,
		})
		return
	}

	batch, err := h.submitter.Submit(r.Context(), myInfo.ID, pairing.Pairs, req.Message, req.Atomic)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.SwapBatches.WithLabelValues(string(batch.Outcome)).Inc()

	h.successResponse(w, r, "swap batch processed", map[string]any{
		"outcome":   batch.Outcome,
		"succeeded": batch.Succeeded,
		"failed":    batch.Failed,
		"results":   batch.Results,
		"failures":  pairing.Failures,
	})
}

func (h *Handler) GetMySwapRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	reqs, err := h.repository.GetUserSwapRequests(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched swap requests", reqs)
}

// RespondToSwapRequest lets the receiver approve or deny a PENDING request.
// Approval exchanges ownership of the two duties.
func (h *Handler) RespondToSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	swapReq := r.Context().Value(SwapRequestCtx).(*domain.SwapRequest)

	var req struct {
		Accept          *bool  `json:"accept" validate:"required"`
		ResponseMessage string `json:"responseMessage"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if swapReq.ReceiverID != myInfo.ID {
		h.errorResponse(w, r, "only the receiver can respond to this request")
		return
	}
	if swapReq.Status != domain.SwapStatusPending {
		h.errorResponse(w, r, "this request has already been resolved")
		return
	}

	if err := h.repository.RespondToSwapRequest(swapReq, *req.Accept, req.ResponseMessage); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// lost the race against another response or a cancellation
			h.errorResponse(w, r, "this request has already been resolved")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	decision := "denied"
	notifType := domain.NotificationSwapDenied
	if *req.Accept {
		decision = "approved"
		notifType = domain.NotificationSwapApproved
	}
	h.metrics.SwapResponses.WithLabelValues(decision).Inc()

	refID := swapReq.ID
	h.Notify(swapReq.SenderID, notifType, "Swap request "+decision,
		myInfo.FullName+" has "+decision+" your swap request. "+req.ResponseMessage, &refID)

	h.successResponse(w, r, "response recorded", swapReq)
}

// CancelSwapRequest lets the sender withdraw a PENDING request.
func (h *Handler) CancelSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	swapReq := r.Context().Value(SwapRequestCtx).(*domain.SwapRequest)

	if swapReq.SenderID != myInfo.ID {
		h.errorResponse(w, r, "only the sender can cancel this request")
		return
	}
	if swapReq.Status != domain.SwapStatusPending {
		h.errorResponse(w, r, "only pending requests can be cancelled")
		return
	}

	if err := h.repository.CancelSwapRequest(swapReq); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "this request has already been resolved")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	refID := swapReq.ID
	h.Notify(swapReq.ReceiverID, domain.NotificationSwapCancelled, "Swap request cancelled",
		myInfo.FullName+" has cancelled a swap request addressed to you.", &refID)

	h.successResponse(w, r, "swap request cancelled", swapReq)
}

func (h *Handler) loadDuties(ids []int64) ([]domain.Duty, error) {
	duties := make([]domain.Duty, 0, len(ids))
	for _, id := range ids {
		duty, err := h.repository.GetDutyByID(id)
		if err != nil {
			return nil, err
		}
		duties = append(duties, *duty)
	}
	return duties, nil
}
