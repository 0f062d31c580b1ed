package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/crewdeck-dev/crewdeck/backend/internal/roster"
	"github.com/crewdeck-dev/crewdeck/backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// importSession is the staged state of one roster import, parked in Redis
// between staging and confirm/cancel. Nothing is persisted until confirm.
type importSession struct {
	UserID int64                    `json:"userID"`
	Blocks []roster.StagedDutyBlock `json:"blocks"`
}

func importSessionKey(sessionID string) string {
	return fmt.Sprintf("import_session_%s", sessionID)
}

// StageRosterImport uploads a roster file, sends it through the conversion
// service and stages the segmented duty blocks for user review.
func (h *Handler) StageRosterImport(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := r.ParseMultipartForm(h.config.Roster.MaxUploadBytes); err != nil {
		h.errorResponse(w, r, "invalid upload")
		return
	}

	file, header, err := r.FormFile("roster")
	if err != nil {
		h.errorResponse(w, r, "missing roster file")
		return
	}
	defer file.Close()

	convertCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Roster.ConvertTimeout)*time.Second)
	defer cancel()

	events, err := h.converter.Convert(convertCtx, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrEmptyFeed):
			h.errorResponse(w, r, "the roster file contains no duties")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	blocks := roster.Segment(events)
	if len(blocks) == 0 {
		h.errorResponse(w, r, "no duty blocks found in the roster")
		return
	}

	session := importSession{
		UserID: myInfo.ID,
		Blocks: blocks,
	}
	sessionData, err := json.Marshal(session)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sessionID := uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Set(ctx, importSessionKey(sessionID), sessionData, time.Duration(h.config.Roster.SessionTTL)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.ImportsStaged.Inc()

	h.successResponse(w, r, "roster staged for review", map[string]any{
		"sessionID": sessionID,
		"blocks":    blocks,
	})
}

// ConfirmRosterImport turns a staged session into persisted duties. Legs
// already present for the user (or repeated inside the batch) are skipped;
// the response reports both counts.
func (h *Handler) ConfirmRosterImport(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.loadImportSession(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "import session not found or expired")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if session.UserID != myInfo.ID {
		h.errorResponse(w, r, "import session belongs to another user")
		return
	}

	if len(session.Blocks) == 0 {
		h.errorResponse(w, r, "import session holds no duty blocks")
		return
	}
	if err := utils.ValidateStagedBlocks(session.Blocks); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	from, to := stagedDateRange(session.Blocks)
	existing, err := h.repository.ListUserLegs(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var insertedTotal, skippedTotal, dutiesCreated int
	for _, block := range session.Blocks {
		candidates := legsFromBlock(block)

		fresh, inserted, skipped := roster.FilterNew(candidates, existing, myInfo.ID)
		insertedTotal += inserted
		skippedTotal += skipped

		if len(fresh) == 0 {
			continue
		}

		duty := &domain.Duty{
			UserID: &myInfo.ID,
			Date:   block.StartDate,
			Legs:   fresh,
		}
		if err := h.repository.InsertDutyWithLegs(duty); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		dutiesCreated++

		// freshly persisted legs count as existing for the next block
		existing = append(existing, fresh...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()
	if err := h.redisClient.Del(ctx, importSessionKey(sessionID)).Err(); err != nil {
		h.logInternalServerError(r, err)
	}

	h.metrics.ImportsConfirmed.Inc()
	h.metrics.LegsInserted.Add(float64(insertedTotal))
	h.metrics.LegsSkipped.Add(float64(skippedTotal))

	h.successResponse(w, r, "roster imported", map[string]int{
		"dutiesCreated": dutiesCreated,
		"legsInserted":  insertedTotal,
		"legsSkipped":   skippedTotal,
	})
}

func (h *Handler) CancelRosterImport(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.loadImportSession(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "import session not found or expired")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if session.UserID != myInfo.ID {
		h.errorResponse(w, r, "import session belongs to another user")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()
	if err := h.redisClient.Del(ctx, importSessionKey(sessionID)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "import cancelled", nil)
}

func (h *Handler) loadImportSession(ctx context.Context, sessionID string) (*importSession, error) {
	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	data, err := h.redisClient.Get(opCtx, importSessionKey(sessionID)).Bytes()
	if err != nil {
		return nil, err
	}

	session := &importSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}

	return session, nil
}

// legsFromBlock maps staged legs to flight legs with absolute timestamps.
// Times are the staged HH:MM on the leg's date, UTC; an arrival earlier than
// the departure rolls over to the next day. Legs without clock times
// (off/standby markers) span their calendar day.
func legsFromBlock(block roster.StagedDutyBlock) []domain.FlightLeg {
	legs := make([]domain.FlightLeg, 0, len(block.Legs))
	for _, staged := range block.Legs {
		dep := combine(staged.Date, staged.DepTime)
		arr := combine(staged.Date, staged.ArrTime)
		if arr.Before(dep) {
			arr = arr.AddDate(0, 0, 1)
		}

		legs = append(legs, domain.FlightLeg{
			FlightNumber:      staged.Code,
			DepartureTime:     dep,
			ArrivalTime:       arr,
			DepartureLocation: staged.Dep,
			ArrivalLocation:   staged.Arr,
			IsDeadhead:        staged.Type == roster.DutyTypeDeadhead,
			Notes:             staged.Notes,
		})
	}
	return legs
}

func combine(date time.Time, clock string) time.Time {
	if clock == "" {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func stagedDateRange(blocks []roster.StagedDutyBlock) (time.Time, time.Time) {
	from, to := blocks[0].StartDate, blocks[0].EndDate
	for _, block := range blocks[1:] {
		if block.StartDate.Before(from) {
			from = block.StartDate
		}
		if block.EndDate.After(to) {
			to = block.EndDate
		}
	}
	return from, to
}
