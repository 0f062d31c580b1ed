package roster

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"
)

// The conversion service returns an iCalendar-flavored feed: VEVENT entries
// whose SUMMARY is the duty code and whose LOCATION, when present, holds the
// "DEP-ARR" station pair. Only the handful of properties below are consumed;
// everything else in the feed is ignored.

var ErrEmptyFeed = errors.New("roster feed contains no events")

// ParseFeed extracts RawEvents from the conversion-service feed text.
func ParseFeed(feed string) ([]RawEvent, error) {
	lines := unfold(feed)

	events := make([]RawEvent, 0)
	var cur map[string]string

	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			cur = make(map[string]string)
		case line == "END:VEVENT":
			if cur == nil {
				continue
			}
			ev, err := eventFromProps(cur)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
			cur = nil
		default:
			if cur == nil {
				continue
			}
			name, value, ok := splitProp(line)
			if !ok {
				continue
			}
			cur[name] = value
		}
	}

	if len(events) == 0 {
		return nil, ErrEmptyFeed
	}

	return events, nil
}

// unfold undoes RFC-5545 line folding (continuation lines start with a space
// or tab) and normalizes line endings.
func unfold(feed string) []string {
	scanner := bufio.NewScanner(strings.NewReader(feed))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// splitProp splits "NAME;PARAM=X:VALUE" into name and value, dropping any
// property parameters.
func splitProp(line string) (string, string, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	name := line[:idx]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(name), line[idx+1:], true
}

func eventFromProps(props map[string]string) (RawEvent, error) {
	summary := strings.TrimSpace(props["SUMMARY"])
	if summary == "" {
		return RawEvent{}, errors.New("event without SUMMARY in roster feed")
	}
	// the code is the first whitespace-separated token; the remainder is
	// free text the converter sometimes appends
	code := strings.Fields(summary)[0]

	start, hasStartTime, err := parseStamp(props["DTSTART"])
	if err != nil {
		return RawEvent{}, fmt.Errorf("event %q: %w", code, err)
	}

	ev := RawEvent{
		Date: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		Code: code,
	}
	if hasStartTime {
		ev.DepartureTime = start.Format("15:04")
	}

	if dtend := props["DTEND"]; dtend != "" {
		end, hasEndTime, err := parseStamp(dtend)
		if err != nil {
			return RawEvent{}, fmt.Errorf("event %q: %w", code, err)
		}
		if hasEndTime {
			ev.ArrivalTime = end.Format("15:04")
		}
	}

	if loc := strings.TrimSpace(props["LOCATION"]); loc != "" {
		dep, arr, ok := strings.Cut(loc, "-")
		if ok {
			ev.DepartureLocation = strings.TrimSpace(dep)
			ev.ArrivalLocation = strings.TrimSpace(arr)
		} else {
			ev.DepartureLocation = loc
		}
	}

	return ev, nil
}

// parseStamp accepts the two timestamp shapes the converter emits: a UTC
// date-time ("20240501T081500Z") or a bare date ("20240501"). The boolean
// reports whether a clock time was present.
func parseStamp(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, errors.New("missing timestamp")
	}

	if t, err := time.Parse("20060102T150405Z", value); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse("20060102T150405", value); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse("20060102", value); err == nil {
		return t, false, nil
	}

	return time.Time{}, false, fmt.Errorf("unrecognized timestamp %q", value)
}
