package roster

import (
	"testing"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leg(flight string, depHour int) domain.FlightLeg {
	dep := time.Date(2024, 5, 1, depHour, 0, 0, 0, time.UTC)
	return domain.FlightLeg{
		FlightNumber:      flight,
		DepartureTime:     dep,
		ArrivalTime:       dep.Add(2 * time.Hour),
		DepartureLocation: "AMS",
		ArrivalLocation:   "OSL",
	}
}

func TestFilterNew_FullOverlapYieldsNothing(t *testing.T) {
	legs := []domain.FlightLeg{leg("KL1021", 7), leg("KL1022", 10)}

	fresh, inserted, skipped := FilterNew(legs, legs, 42)

	assert.Empty(t, fresh)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 2, skipped)
}

func TestFilterNew_NoOverlapKeepsOrder(t *testing.T) {
	candidates := []domain.FlightLeg{leg("KL1021", 7), leg("KL1022", 10), leg("KL1023", 13)}
	existing := []domain.FlightLeg{leg("KL0900", 6)}

	fresh, inserted, skipped := FilterNew(candidates, existing, 42)

	require.Len(t, fresh, 3)
	assert.Equal(t, candidates, fresh)
	assert.Equal(t, 3, inserted)
	assert.Equal(t, 0, skipped)
}

func TestFilterNew_WithinBatchDuplicatesSuppressed(t *testing.T) {
	candidates := []domain.FlightLeg{leg("KL1021", 7), leg("KL1021", 7)}

	fresh, inserted, skipped := FilterNew(candidates, nil, 42)

	require.Len(t, fresh, 1)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, skipped)
}

func TestFilterNew_CaseInsensitiveIdentity(t *testing.T) {
	existing := []domain.FlightLeg{leg("KL1021", 7)}
	candidate := leg("kl1021", 7)
	candidate.DepartureLocation = "ams"
	candidate.ArrivalLocation = "osl"

	fresh, _, skipped := FilterNew([]domain.FlightLeg{candidate}, existing, 42)

	assert.Empty(t, fresh)
	assert.Equal(t, 1, skipped)
}

func TestFilterNew_DifferentTimesAreDifferentLegs(t *testing.T) {
	existing := []domain.FlightLeg{leg("KL1021", 7)}
	candidates := []domain.FlightLeg{leg("KL1021", 9)}

	fresh, inserted, _ := FilterNew(candidates, existing, 42)

	require.Len(t, fresh, 1)
	assert.Equal(t, 1, inserted)
}

func TestFilterNew_ScopedByOwner(t *testing.T) {
	// the same flight crewed by two users is not a duplicate for either
	shared := []domain.FlightLeg{leg("KL1021", 7)}

	freshA, _, _ := FilterNew(shared, nil, 1)
	freshB, _, _ := FilterNew(shared, nil, 2)

	assert.Len(t, freshA, 1)
	assert.Len(t, freshB, 1)
	assert.NotEqual(t, legKey(1, shared[0]), legKey(2, shared[0]))
}

func TestFilterNew_SecondImportSkipsEverything(t *testing.T) {
	batch := []domain.FlightLeg{leg("KL1021", 7), leg("KL1022", 10), leg("KL1023", 13)}

	first, inserted, skipped := FilterNew(batch, nil, 42)
	require.Len(t, first, 3)
	assert.Equal(t, 3, inserted)
	assert.Equal(t, 0, skipped)

	second, inserted, skipped := FilterNew(batch, first, 42)
	assert.Empty(t, second)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, len(batch), skipped)
}
