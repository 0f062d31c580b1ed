package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
)

// legKey is the identity of a leg for duplicate detection. Two legs sharing
// this key belong to the same real-world assignment of the same owner.
func legKey(ownerID int64, leg domain.FlightLeg) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s",
		ownerID,
		strings.ToUpper(leg.FlightNumber),
		leg.DepartureTime.UTC().Format(time.RFC3339),
		leg.ArrivalTime.UTC().Format(time.RFC3339),
		strings.ToUpper(leg.DepartureLocation),
		strings.ToUpper(leg.ArrivalLocation),
	)
}

// FilterNew returns the candidate legs not already persisted for ownerID, in
// input order, together with inserted/skipped counts for caller reporting.
// Freshly accepted legs join the seen set so duplicates across blocks of the
// same import are also suppressed. Keys are always scoped by owner: the same
// flight may legitimately belong to two users who crew it together.
func FilterNew(candidates, existing []domain.FlightLeg, ownerID int64) (fresh []domain.FlightLeg, inserted, skipped int) {
	seen := make(map[string]struct{}, len(existing))
	for _, leg := range existing {
		seen[legKey(ownerID, leg)] = struct{}{}
	}

	fresh = make([]domain.FlightLeg, 0, len(candidates))
	for _, leg := range candidates {
		key := legKey(ownerID, leg)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, leg)
		inserted++
	}

	return fresh, inserted, skipped
}
