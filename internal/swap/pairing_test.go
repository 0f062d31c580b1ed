package swap

import (
	"testing"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duty(id int64, ownerID int64, date time.Time) domain.Duty {
	d := domain.Duty{ID: id, Date: date}
	if ownerID != 0 {
		d.UserID = &ownerID
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPairing_PrefersSameDateOffer(t *testing.T) {
	requested := []domain.Duty{duty(10, 2, date(2024, 5, 1))}
	offered := []domain.Duty{
		duty(20, 1, date(2024, 5, 1)),
		duty(21, 1, date(2024, 5, 3)),
	}

	result := Pairing(requested, offered, 1)

	require.Len(t, result.Pairs, 1)
	assert.Empty(t, result.Failures)
	assert.Equal(t, Pair{OfferedDutyID: 20, TargetDutyID: 10, ReceiverID: 2}, result.Pairs[0])
}

func TestPairing_FallsBackToFirstOffered(t *testing.T) {
	requested := []domain.Duty{duty(10, 2, date(2024, 5, 7))}
	offered := []domain.Duty{
		duty(20, 1, date(2024, 5, 1)),
		duty(21, 1, date(2024, 5, 3)),
	}

	result := Pairing(requested, offered, 1)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, int64(20), result.Pairs[0].OfferedDutyID)
}

func TestPairing_UnownedTargetIsFailure(t *testing.T) {
	requested := []domain.Duty{duty(10, 0, date(2024, 5, 1))}
	offered := []domain.Duty{duty(20, 1, date(2024, 5, 1))}

	result := Pairing(requested, offered, 1)

	assert.Empty(t, result.Pairs)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "no owner")
}

func TestPairing_OwnDutyIsFailure(t *testing.T) {
	requested := []domain.Duty{duty(10, 1, date(2024, 5, 1))}
	offered := []domain.Duty{duty(20, 1, date(2024, 5, 1))}

	result := Pairing(requested, offered, 1)

	assert.Empty(t, result.Pairs)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "your own duty")
}

func TestPairing_NoOffersAtAll(t *testing.T) {
	requested := []domain.Duty{duty(10, 2, date(2024, 5, 1))}

	result := Pairing(requested, nil, 1)

	assert.Empty(t, result.Pairs)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "no offered duty")
}

func TestPairing_MixedTargetsKeepGoingPastFailures(t *testing.T) {
	requested := []domain.Duty{
		duty(10, 0, date(2024, 5, 1)), // unowned
		duty(11, 2, date(2024, 5, 2)),
		duty(12, 1, date(2024, 5, 3)), // requester's own
		duty(13, 3, date(2024, 5, 2)),
	}
	offered := []domain.Duty{
		duty(20, 1, date(2024, 5, 2)),
		duty(21, 1, date(2024, 5, 9)),
	}

	result := Pairing(requested, offered, 1)

	require.Len(t, result.Pairs, 2)
	assert.Equal(t, Pair{OfferedDutyID: 20, TargetDutyID: 11, ReceiverID: 2}, result.Pairs[0])
	assert.Equal(t, Pair{OfferedDutyID: 20, TargetDutyID: 13, ReceiverID: 3}, result.Pairs[1])
	assert.Len(t, result.Failures, 2)
}

func TestPairing_SameDayIgnoresClockTime(t *testing.T) {
	requested := []domain.Duty{duty(10, 2, time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC))}
	offered := []domain.Duty{
		duty(20, 1, date(2024, 4, 28)),
		duty(21, 1, time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)),
	}

	result := Pairing(requested, offered, 1)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, int64(21), result.Pairs[0].OfferedDutyID)
}

func TestPairing_EmptyRequested(t *testing.T) {
	result := Pairing(nil, []domain.Duty{duty(20, 1, date(2024, 5, 1))}, 1)

	assert.Empty(t, result.Pairs)
	assert.Empty(t, result.Failures)
}
