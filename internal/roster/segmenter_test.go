package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestSegment_CheckInCheckOutBlock(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "KL1021", DepartureTime: "07:00", ArrivalTime: "09:10", DepartureLocation: "AMS", ArrivalLocation: "OSL"},
		{Date: day(1), Code: "KL1022", DepartureTime: "10:00", ArrivalTime: "12:10", DepartureLocation: "OSL", ArrivalLocation: "AMS"},
		{Date: day(1), Code: "C/O", DepartureTime: "12:40"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	assert.Equal(t, DutyTypeFlight, blocks[0].Type)
	assert.Equal(t, day(1), blocks[0].StartDate)
	assert.Equal(t, day(1), blocks[0].EndDate)
	require.Len(t, blocks[0].Legs, 2)
	assert.Equal(t, "KL1021", blocks[0].Legs[0].Code)
	assert.Equal(t, "KL1022", blocks[0].Legs[1].Code)
}

func TestSegment_OffAndStandbyStandalone(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "OFF"},
		{Date: day(2), Code: "STBY_S3"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 2)
	assert.Equal(t, DutyTypeOff, blocks[0].Type)
	require.Len(t, blocks[0].Legs, 1)
	assert.Equal(t, DutyTypeStandby, blocks[1].Type)
	assert.Equal(t, day(2), blocks[1].StartDate)
}

func TestSegment_OffTerminatesOpenBlock(t *testing.T) {
	// an OFF inside an open block closes that block first
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "KL1021", DepartureTime: "07:00", ArrivalTime: "09:10"},
		{Date: day(2), Code: "OFF"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 2)
	assert.Equal(t, DutyTypeFlight, blocks[0].Type)
	require.Len(t, blocks[0].Legs, 1)
	assert.Equal(t, DutyTypeOff, blocks[1].Type)
}

func TestSegment_PickupSkipped(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "PICK", DepartureTime: "04:45"},
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "KL1021", DepartureTime: "07:00", ArrivalTime: "09:10"},
		{Date: day(1), Code: "C/O", DepartureTime: "09:40"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Legs, 1)
	assert.Equal(t, "KL1021", blocks[0].Legs[0].Code)
}

func TestSegment_ImplicitOpenWithoutCheckIn(t *testing.T) {
	// a malformed feed missing its C/I still yields a block
	events := []RawEvent{
		{Date: day(1), Code: "KL1021", DepartureTime: "07:00", ArrivalTime: "09:10"},
		{Date: day(1), Code: "C/O", DepartureTime: "09:40"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Legs, 1)
}

func TestSegment_DeadheadOnlyBlock(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "DH/KL1021", DepartureTime: "07:00", ArrivalTime: "09:10"},
		{Date: day(1), Code: "C/O", DepartureTime: "09:40"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	assert.Equal(t, DutyTypeDeadhead, blocks[0].Type)
}

func TestSegment_MixedDeadheadIsFlight(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "DH/KL1021", DepartureTime: "07:00", ArrivalTime: "09:10"},
		{Date: day(1), Code: "KL1022", DepartureTime: "10:00", ArrivalTime: "12:10"},
		{Date: day(1), Code: "C/O", DepartureTime: "12:40"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	assert.Equal(t, DutyTypeFlight, blocks[0].Type)
}

func TestSegment_SortsBeforeWalking(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "C/O", DepartureTime: "12:40"},
		{Date: day(1), Code: "KL1022", DepartureTime: "10:00"},
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "KL1021", DepartureTime: "07:00"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Legs, 2)
	assert.Equal(t, "KL1021", blocks[0].Legs[0].Code)
	assert.Equal(t, "KL1022", blocks[0].Legs[1].Code)
}

func TestSegment_MultiDayBlockDates(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "15:30"},
		{Date: day(1), Code: "KL0871", DepartureTime: "17:00", ArrivalTime: "23:40"},
		{Date: day(2), Code: "KL0872", DepartureTime: "08:00", ArrivalTime: "12:30"},
		{Date: day(2), Code: "C/O", DepartureTime: "13:00"},
	}

	blocks := Segment(events)

	require.Len(t, blocks, 1)
	assert.Equal(t, day(1), blocks[0].StartDate)
	assert.Equal(t, day(2), blocks[0].EndDate)
}

func TestSegment_EmptyBlockNotEmitted(t *testing.T) {
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "C/O", DepartureTime: "06:00"},
	}

	assert.Empty(t, Segment(events))
}

func TestSegment_ReSegmentationKeepsBoundaries(t *testing.T) {
	// a well-formed single check-in/check-out stream segments to one block;
	// feeding the resulting legs back in as a flat event list yields the
	// same boundaries again
	events := []RawEvent{
		{Date: day(1), Code: "C/I", DepartureTime: "05:30"},
		{Date: day(1), Code: "KL1021", DepartureTime: "07:00", ArrivalTime: "09:10"},
		{Date: day(1), Code: "KL1022", DepartureTime: "10:00", ArrivalTime: "12:10"},
		{Date: day(1), Code: "C/O", DepartureTime: "12:40"},
	}

	first := Segment(events)
	require.Len(t, first, 1)

	flat := make([]RawEvent, 0, len(first[0].Legs))
	for _, leg := range first[0].Legs {
		flat = append(flat, RawEvent{
			Date:          leg.Date,
			Code:          leg.Code,
			DepartureTime: leg.DepTime,
			ArrivalTime:   leg.ArrTime,
		})
	}

	second := Segment(flat)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].StartDate, second[0].StartDate)
	assert.Equal(t, first[0].EndDate, second[0].EndDate)
	require.Len(t, second[0].Legs, len(first[0].Legs))
	for i := range second[0].Legs {
		assert.Equal(t, first[0].Legs[i].Code, second[0].Legs[i].Code)
	}
}
