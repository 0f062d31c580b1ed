package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		code string
		want DutyType
	}{
		{"check-in marker", "C/I", DutyTypeCheckIn},
		{"check-out marker", "C/O", DutyTypeCheckOut},
		{"check-in lowercase", "c/i", DutyTypeCheckIn},
		{"pickup short", "PICK", DutyTypePickup},
		{"pickup long", "PICKUP", DutyTypePickup},
		{"plain off", "OFF", DutyTypeOff},
		{"off with suffix", "OFF_H", DutyTypeOff},
		{"off underscore form", "O_D", DutyTypeOff},
		{"standby", "STBY_S3", DutyTypeStandby},
		{"standby lowercase", "stby_a1", DutyTypeStandby},
		{"deadhead", "DH/KL1021", DutyTypeDeadhead},
		{"deadhead lowercase", "dh/kl1021", DutyTypeDeadhead},
		{"flight number", "KL1021", DutyTypeFlight},
		{"flight containing dh is not deadhead", "DH123", DutyTypeFlight},
		{"flight ending in dh is not deadhead", "LDH45", DutyTypeFlight},
		{"unknown code defaults to flight", "XXYZ", DutyTypeFlight},
		{"padded code", "  C/I  ", DutyTypeCheckIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code))
		})
	}
}
