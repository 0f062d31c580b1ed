package handler

import (
	"net/http"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
)

func (h *Handler) GetMyDuties(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := h.dutyRange(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	duties, err := h.repository.GetUserDuties(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched duties", duties)
}

func (h *Handler) GetDuty(w http.ResponseWriter, r *http.Request) {
	duty := r.Context().Value(DutyCtx).(*domain.Duty)
	h.successResponse(w, r, "fetched duty", duty)
}

// dutyRange reads the optional from/to query parameters (2006-01-02); the
// default window is the configured lookback/lookahead around today.
func (h *Handler) dutyRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -h.config.Roster.LookbackDays)
	to := now.AddDate(0, 0, h.config.Roster.LookaheadDays)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
