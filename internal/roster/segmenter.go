package roster

import "sort"

// openBlock carries the segmentation state between events: the legs collected
// since the last check-in (or since the first loose leg in a feed missing its
// check-in marker).
type openBlock struct {
	legs []StagedDutyLeg
}

// Segment groups one crew member's time-ordered events into staged duty
// blocks. Check-in opens a block, check-out closes it, off/standby days
// become standalone single-leg blocks, pickup markers are dropped.
func Segment(events []RawEvent) []StagedDutyBlock {
	sorted := make([]RawEvent, len(events))
	copy(sorted, events)

	// stable so events sharing a (date, depTime) key keep feed order
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return depTimeOrEarliest(sorted[i]) < depTimeOrEarliest(sorted[j])
	})

	blocks := make([]StagedDutyBlock, 0)
	nextBlockID := 1
	nextLegID := 1

	var open *openBlock

	closeOpen := func() {
		if open == nil {
			return
		}
		if len(open.legs) > 0 {
			blocks = append(blocks, finalizeBlock(nextBlockID, open.legs))
			nextBlockID++
		}
		open = nil
	}

	for _, ev := range sorted {
		typ := Classify(ev.Code)

		switch typ {
		case DutyTypeOff, DutyTypeStandby:
			// An off/standby event inside an open flight block silently
			// terminates that block. Seen in the wild on half-day pairings;
			// whether the feed means it that way is an open roster-data
			// question, so the behavior is kept as-is.
			closeOpen()
			blocks = append(blocks, StagedDutyBlock{
				ID:        nextBlockID,
				Type:      typ,
				StartDate: ev.Date,
				EndDate:   ev.Date,
				Legs:      []StagedDutyLeg{legFromEvent(nextLegID, ev, typ)},
			})
			nextBlockID++
			nextLegID++
		case DutyTypeCheckIn:
			closeOpen()
			open = &openBlock{legs: make([]StagedDutyLeg, 0, 4)}
		case DutyTypeCheckOut:
			closeOpen()
		case DutyTypePickup:
			// ground transport marker, never staged
		default:
			if open == nil {
				// malformed feed without a check-in marker; open implicitly
				open = &openBlock{legs: make([]StagedDutyLeg, 0, 4)}
			}
			open.legs = append(open.legs, legFromEvent(nextLegID, ev, typ))
			nextLegID++
		}
	}

	closeOpen()

	return blocks
}

func finalizeBlock(id int, legs []StagedDutyLeg) StagedDutyBlock {
	typ := DutyTypeDeadhead
	for _, leg := range legs {
		if leg.Type != DutyTypeDeadhead {
			typ = DutyTypeFlight
			break
		}
	}

	return StagedDutyBlock{
		ID:        id,
		Type:      typ,
		StartDate: legs[0].Date,
		EndDate:   legs[len(legs)-1].Date,
		Legs:      legs,
	}
}

func legFromEvent(id int, ev RawEvent, typ DutyType) StagedDutyLeg {
	return StagedDutyLeg{
		ID:      id,
		Code:    ev.Code,
		Date:    ev.Date,
		DepTime: ev.DepartureTime,
		ArrTime: ev.ArrivalTime,
		Dep:     ev.DepartureLocation,
		Arr:     ev.ArrivalLocation,
		Type:    typ,
	}
}

func depTimeOrEarliest(ev RawEvent) string {
	if ev.DepartureTime == "" {
		return "00:00"
	}
	return ev.DepartureTime
}
