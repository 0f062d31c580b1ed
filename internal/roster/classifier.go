package roster

import "strings"

// Classify maps a raw event code to its duty type. Matching is
// case-insensitive and the precedence matters: exact markers first, then the
// off/standby prefixes, then deadhead. Deadhead detection is deliberately
// narrow ("DH/" prefix only) so flight numbers containing "DH" are not
// misclassified. Anything unrecognized is a working flight.
func Classify(code string) DutyType {
	c := strings.ToUpper(strings.TrimSpace(code))

	switch c {
	case "C/I":
		return DutyTypeCheckIn
	case "C/O":
		return DutyTypeCheckOut
	case "PICK", "PICKUP":
		return DutyTypePickup
	}

	switch {
	case strings.HasPrefix(c, "OFF"), strings.HasPrefix(c, "O_"):
		return DutyTypeOff
	case strings.HasPrefix(c, "STBY"):
		return DutyTypeStandby
	case strings.HasPrefix(c, "DH/"):
		return DutyTypeDeadhead
	default:
		return DutyTypeFlight
	}
}
