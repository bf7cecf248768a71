// Package operators maps carrier codes seen in NS data to operator names.
package operators

import "strings"

// Operator is a rail or bus carrier.
type Operator struct {
	Abbr string
	Name string
}

// operators is keyed by the codes NS uses in product data, plus the UIC
// company numbers that show up for cross-border trains.
var operators = map[string]Operator{
	"NS":       {Abbr: "NS", Name: "Nederlandse Spoorwegen"},
	"84":       {Abbr: "NS", Name: "Nederlandse Spoorwegen"},
	"NSI":      {Abbr: "NSI", Name: "NS International"},
	"ARRIVA":   {Abbr: "ARR", Name: "Arriva"},
	"ARR":      {Abbr: "ARR", Name: "Arriva"},
	"KEOLIS":   {Abbr: "KEO", Name: "Keolis Nederland"},
	"BLAUWNET": {Abbr: "BN", Name: "Blauwnet"},
	"QBUZZ":    {Abbr: "QBZ", Name: "Qbuzz"},
	"RNET":     {Abbr: "RNET", Name: "R-net"},
	"CXX":      {Abbr: "CXX", Name: "Connexxion"},
	"EBS":      {Abbr: "EBS", Name: "EBS"},
	"VIAS":     {Abbr: "VIAS", Name: "VIAS Rail"},
	"NMBS":     {Abbr: "NMBS", Name: "NMBS/SNCB"},
	"88":       {Abbr: "NMBS", Name: "NMBS/SNCB"},
	"DB":       {Abbr: "DB", Name: "Deutsche Bahn"},
	"80":       {Abbr: "DB", Name: "Deutsche Bahn"},
	"EUROSTAR": {Abbr: "EST", Name: "Eurostar"},
	"EST":      {Abbr: "EST", Name: "Eurostar"},
	"SNCF":     {Abbr: "SNCF", Name: "SNCF"},
	"87":       {Abbr: "SNCF", Name: "SNCF"},
}

// GetOperator returns the operator for code, or nil if unknown.
// Lookup ignores case and surrounding space.
func GetOperator(code string) *Operator {
	op, ok := operators[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return &op
}

// GetOperatorAbbr returns the short name for code, or "" if unknown.
func GetOperatorAbbr(code string) string {
	if op := GetOperator(code); op != nil {
		return op.Abbr
	}
	return ""
}

// GetOperatorName returns the full name for code, or "" if unknown.
func GetOperatorName(code string) string {
	if op := GetOperator(code); op != nil {
		return op.Name
	}
	return ""
}
