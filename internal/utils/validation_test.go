package utils

import (
	"testing"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedBlock(id int, typ roster.DutyType, legs ...roster.StagedDutyLeg) roster.StagedDutyBlock {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return roster.StagedDutyBlock{
		ID:        id,
		Type:      typ,
		StartDate: day,
		EndDate:   day,
		Legs:      legs,
	}
}

func stagedLeg(code string, typ roster.DutyType) roster.StagedDutyLeg {
	return roster.StagedDutyLeg{
		Code: code,
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Type: typ,
	}
}

func TestValidateStagedBlocks_Valid(t *testing.T) {
	blocks := []roster.StagedDutyBlock{
		stagedBlock(1, roster.DutyTypeFlight,
			stagedLeg("KL1021", roster.DutyTypeFlight),
			stagedLeg("DH/KL1022", roster.DutyTypeDeadhead),
		),
		stagedBlock(2, roster.DutyTypeOff, stagedLeg("OFF", roster.DutyTypeOff)),
		stagedBlock(3, roster.DutyTypeStandby, stagedLeg("STBY", roster.DutyTypeStandby)),
	}

	assert.NoError(t, ValidateStagedBlocks(blocks))
}

func TestValidateStagedBlocks_EmptyBlock(t *testing.T) {
	err := ValidateStagedBlocks([]roster.StagedDutyBlock{stagedBlock(7, roster.DutyTypeFlight)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no legs")
	assert.Contains(t, err.Error(), "7")
}

func TestValidateStagedBlocks_EndBeforeStart(t *testing.T) {
	block := stagedBlock(2, roster.DutyTypeFlight, stagedLeg("KL1021", roster.DutyTypeFlight))
	block.EndDate = block.StartDate.AddDate(0, 0, -1)

	err := ValidateStagedBlocks([]roster.StagedDutyBlock{block})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ends before it starts")
}

func TestValidateStagedBlocks_MarkerLeakedAsLeg(t *testing.T) {
	tests := []struct {
		name string
		typ  roster.DutyType
	}{
		{"check-in", roster.DutyTypeCheckIn},
		{"check-out", roster.DutyTypeCheckOut},
		{"pickup", roster.DutyTypePickup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := stagedBlock(1, roster.DutyTypeFlight, stagedLeg("X", tt.typ))

			err := ValidateStagedBlocks([]roster.StagedDutyBlock{block})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "marker event")
		})
	}
}

func TestValidateStagedBlocks_OffBlockWithExtraLegs(t *testing.T) {
	block := stagedBlock(4, roster.DutyTypeOff,
		stagedLeg("OFF", roster.DutyTypeOff),
		stagedLeg("OFF", roster.DutyTypeOff),
	)

	err := ValidateStagedBlocks([]roster.StagedDutyBlock{block})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OFF")
}

func TestValidateStagedBlocks_NoBlocks(t *testing.T) {
	assert.NoError(t, ValidateStagedBlocks(nil))
}
