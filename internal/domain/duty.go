package domain

import "time"

type FlightLeg struct {
	ID                int64     `json:"id"`
	DutyID            int64     `json:"dutyID"`
	FlightNumber      string    `json:"flightNumber"`
	DepartureTime     time.Time `json:"departureTime"`
	ArrivalTime       time.Time `json:"arrivalTime"`
	DepartureLocation string    `json:"departureLocation"`
	ArrivalLocation   string    `json:"arrivalLocation"`
	IsDeadhead        bool      `json:"isDeadhead"`
	Notes             string    `json:"notes,omitempty"`
}

type Duty struct {
	ID        int64       `json:"id"`
	UserID    *int64      `json:"userID"` // nil until the duty is assigned
	Date      time.Time   `json:"date"`
	Pairing   string      `json:"pairing,omitempty"`
	Legs      []FlightLeg `json:"legs"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
