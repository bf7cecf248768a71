package models

import "strings"

// Category groups used by board filters. NS category codes are folded into
// these so that e.g. "ICD" and "ICE" can be toggled separately from "IC".
const (
	GroupIntercity     = "IC"
	GroupIntercityDir  = "ICD"
	GroupInternational = "INT"
	GroupSprinter      = "SPR"
	GroupRegional      = "RE"
	GroupOther         = "OTHER"
)

// CategoryGroups lists the filter groups in display order.
var CategoryGroups = []string{
	GroupIntercity,
	GroupIntercityDir,
	GroupInternational,
	GroupSprinter,
	GroupRegional,
	GroupOther,
}

// CategoryGroup maps an NS category code to its filter group.
func CategoryGroup(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "IC", "INT_IC":
		return GroupIntercity
	case "ICD":
		return GroupIntercityDir
	case "ICE", "EST", "EUR", "THA", "NZ", "EC", "INT":
		return GroupInternational
	case "SPR", "ST":
		return GroupSprinter
	case "RE", "RS", "SNT", "ST1", "STR", "ARR", "R":
		return GroupRegional
	}
	return GroupOther
}
