package swap

import (
	"fmt"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
)

// Pair is one candidate swap: the requester offers OfferedDutyID to the
// receiver in exchange for TargetDutyID.
type Pair struct {
	OfferedDutyID int64  `json:"offeredDutyID"`
	TargetDutyID  int64  `json:"targetDutyID"`
	ReceiverID    int64  `json:"receiverID"`
	Message       string `json:"message,omitempty"`
}

type PairingResult struct {
	Pairs    []Pair   `json:"pairs"`
	Failures []string `json:"failures"`
}

// Pairing prefers offering a duty on the same calendar day as the target, so
// the swap does not shift days on or off for either party. That is a fairness
// heuristic, not a hard constraint: with no same-date duty available the
// first offered duty stands in as a catch-all.
//
// Whether a PENDING request for the pair already exists is not checked here;
// the storage layer's uniqueness constraint catches that at submit time.
func Pairing(requested, offered []domain.Duty, requesterID int64) PairingResult {
	byDate := make(map[time.Time][]domain.Duty, len(offered))
	for _, d := range offered {
		day := calendarDay(d.Date)
		byDate[day] = append(byDate[day], d)
	}

	result := PairingResult{
		Pairs:    make([]Pair, 0, len(requested)),
		Failures: make([]string, 0),
	}

	for _, target := range requested {
		if target.UserID == nil {
			result.Failures = append(result.Failures, fmt.Sprintf("duty %d has no owner and cannot be requested", target.ID))
			continue
		}
		if *target.UserID == requesterID {
			result.Failures = append(result.Failures, fmt.Sprintf("duty %d is your own duty", target.ID))
			continue
		}

		offer, ok := pickOffer(byDate, offered, target)
		if !ok {
			result.Failures = append(result.Failures, fmt.Sprintf("no offered duty available for duty %d", target.ID))
			continue
		}

		result.Pairs = append(result.Pairs, Pair{
			OfferedDutyID: offer.ID,
			TargetDutyID:  target.ID,
			ReceiverID:    *target.UserID,
		})
	}

	return result
}

func pickOffer(byDate map[time.Time][]domain.Duty, offered []domain.Duty, target domain.Duty) (domain.Duty, bool) {
	if sameDay := byDate[calendarDay(target.Date)]; len(sameDay) > 0 {
		return sameDay[0], true
	}
	if len(offered) > 0 {
		return offered[0], true
	}
	return domain.Duty{}, false
}

// calendarDay truncates to a UTC calendar day, the convention duty dates are
// stored in.
func calendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
