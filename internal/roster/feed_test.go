package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:KL1021 Amsterdam - Oslo\r\n" +
	"DTSTART:20240501T081500Z\r\n" +
	"DTEND:20240501T101000Z\r\n" +
	"LOCATION:AMS-OSL\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:OFF\r\n" +
	"DTSTART;VALUE=DATE:20240502\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseFeed_ExtractsEvents(t *testing.T) {
	events, err := ParseFeed(sampleFeed)
	require.NoError(t, err)
	require.Len(t, events, 2)

	flight := events[0]
	assert.Equal(t, "KL1021", flight.Code)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), flight.Date)
	assert.Equal(t, "08:15", flight.DepartureTime)
	assert.Equal(t, "10:10", flight.ArrivalTime)
	assert.Equal(t, "AMS", flight.DepartureLocation)
	assert.Equal(t, "OSL", flight.ArrivalLocation)

	off := events[1]
	assert.Equal(t, "OFF", off.Code)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), off.Date)
	assert.Empty(t, off.DepartureTime)
	assert.Empty(t, off.ArrivalTime)
}

func TestParseFeed_UnfoldsContinuationLines(t *testing.T) {
	feed := "BEGIN:VEVENT\r\n" +
		"SUMMARY:KL10\r\n" +
		" 21\r\n" +
		"DTSTART:20240501T081500Z\r\n" +
		"LOCATION:AMS-\r\n" +
		"\tOSL\r\n" +
		"END:VEVENT\r\n"

	events, err := ParseFeed(feed)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "KL1021", events[0].Code)
	assert.Equal(t, "AMS", events[0].DepartureLocation)
	assert.Equal(t, "OSL", events[0].ArrivalLocation)
}

func TestParseFeed_LocationWithoutDash(t *testing.T) {
	feed := "BEGIN:VEVENT\n" +
		"SUMMARY:STBY\n" +
		"DTSTART:20240501T060000Z\n" +
		"LOCATION:AMS\n" +
		"END:VEVENT\n"

	events, err := ParseFeed(feed)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "AMS", events[0].DepartureLocation)
	assert.Empty(t, events[0].ArrivalLocation)
}

func TestParseFeed_LocalTimestampAccepted(t *testing.T) {
	feed := "BEGIN:VEVENT\n" +
		"SUMMARY:KL1021\n" +
		"DTSTART:20240501T081500\n" +
		"END:VEVENT\n"

	events, err := ParseFeed(feed)
	require.NoError(t, err)
	assert.Equal(t, "08:15", events[0].DepartureTime)
}

func TestParseFeed_EmptyFeed(t *testing.T) {
	_, err := ParseFeed("BEGIN:VCALENDAR\nEND:VCALENDAR\n")
	assert.ErrorIs(t, err, ErrEmptyFeed)

	_, err = ParseFeed("")
	assert.ErrorIs(t, err, ErrEmptyFeed)
}

func TestParseFeed_MissingSummaryFails(t *testing.T) {
	feed := "BEGIN:VEVENT\n" +
		"DTSTART:20240501T081500Z\n" +
		"END:VEVENT\n"

	_, err := ParseFeed(feed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUMMARY")
}

func TestParseFeed_BadTimestampFails(t *testing.T) {
	feed := "BEGIN:VEVENT\n" +
		"SUMMARY:KL1021\n" +
		"DTSTART:not-a-date\n" +
		"END:VEVENT\n"

	_, err := ParseFeed(feed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KL1021")
}

func TestParseFeed_IgnoresStrayPropertiesOutsideEvents(t *testing.T) {
	feed := "SUMMARY:ORPHAN\n" +
		"BEGIN:VEVENT\n" +
		"SUMMARY:C/I\n" +
		"DTSTART:20240501T060000Z\n" +
		"END:VEVENT\n"

	events, err := ParseFeed(feed)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "C/I", events[0].Code)
}
