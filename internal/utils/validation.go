package utils

import (
	"fmt"

	"github.com/crewdeck-dev/crewdeck/backend/internal/roster"
)

// ValidateStagedBlocks checks a staged import before it is confirmed: every
// block must carry at least one leg, and marker events must never have leaked
// into the legs.
func ValidateStagedBlocks(blocks []roster.StagedDutyBlock) error {
	for _, block := range blocks {
		if len(block.Legs) == 0 {
			return fmt.Errorf("staged block %d has no legs", block.ID)
		}

		if block.EndDate.Before(block.StartDate) {
			return fmt.Errorf("staged block %d ends before it starts", block.ID)
		}

		for _, leg := range block.Legs {
			switch leg.Type {
			case roster.DutyTypeCheckIn, roster.DutyTypeCheckOut, roster.DutyTypePickup:
				return fmt.Errorf("staged block %d contains marker event %q as a leg", block.ID, leg.Code)
			}
		}

		if block.Type == roster.DutyTypeOff || block.Type == roster.DutyTypeStandby {
			if len(block.Legs) != 1 {
				return fmt.Errorf("staged block %d is %s but has %d legs", block.ID, block.Type, len(block.Legs))
			}
		}
	}

	return nil
}
