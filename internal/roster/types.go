package roster

import "time"

// DutyType tags one raw roster event.
type DutyType string

const (
	DutyTypeFlight   DutyType = "FLIGHT"
	DutyTypeDeadhead DutyType = "DEADHEAD"
	DutyTypeStandby  DutyType = "STANDBY"
	DutyTypeOff      DutyType = "OFF"
	DutyTypeCheckIn  DutyType = "CHECKIN"
	DutyTypeCheckOut DutyType = "CHECKOUT"
	DutyTypePickup   DutyType = "PICKUP"
)

// RawEvent is one calendar entry from the roster conversion service, already
// reduced to the fields the importer cares about. Never mutated after parse.
type RawEvent struct {
	Date              time.Time `json:"date"`
	Code              string    `json:"code"`
	DepartureTime     string    `json:"departureTime,omitempty"` // "15:04", empty when absent
	ArrivalTime       string    `json:"arrivalTime,omitempty"`
	DepartureLocation string    `json:"departureLocation,omitempty"`
	ArrivalLocation   string    `json:"arrivalLocation,omitempty"`
}

// StagedDutyLeg is one event inside a staged block. Check-in/check-out and
// pickup markers never appear as legs.
type StagedDutyLeg struct {
	ID            int       `json:"id"` // stable within one segmentation run only
	Code          string    `json:"code"`
	Date          time.Time `json:"date"`
	DepTime       string    `json:"depTime,omitempty"`
	ArrTime       string    `json:"arrTime,omitempty"`
	Dep           string    `json:"dep,omitempty"`
	Arr           string    `json:"arr,omitempty"`
	Type          DutyType  `json:"type"`
	Notes         string    `json:"notes,omitempty"`
}

// StagedDutyBlock groups contiguous legs between check-in and check-out, or
// stands alone for an off/standby day. It lives only inside an import session
// and is discarded once the user confirms or cancels.
type StagedDutyBlock struct {
	ID        int             `json:"id"`
	Type      DutyType        `json:"type"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Legs      []StagedDutyLeg `json:"legs"`
}
