// Package housing implements public housing eligibility for Australian
// states and territories. It uses the generic threshold engine with
// per-jurisdiction income and asset schedules.
package housing

import (
	"strings"

	"github.com/warp/housing-engine/generic"
)

// =============================================================================
// JURISDICTION
// =============================================================================

// Jurisdiction is an Australian state or territory code.
// Implements generic.Region.
type Jurisdiction string

const (
	NSW Jurisdiction = "NSW"
	VIC Jurisdiction = "VIC"
	QLD Jurisdiction = "QLD"
	SA  Jurisdiction = "SA"
	WA  Jurisdiction = "WA"
	TAS Jurisdiction = "TAS"
	NT  Jurisdiction = "NT"
	ACT Jurisdiction = "ACT"
)

// Jurisdictions lists every jurisdiction in display order.
var Jurisdictions = []Jurisdiction{NSW, VIC, QLD, SA, WA, TAS, NT, ACT}

var jurisdictionNames = map[Jurisdiction]string{
	NSW: "New South Wales",
	VIC: "Victoria",
	QLD: "Queensland",
	SA:  "South Australia",
	WA:  "Western Australia",
	TAS: "Tasmania",
	NT:  "Northern Territory",
	ACT: "Australian Capital Territory",
}

func (j Jurisdiction) RegionCode() string { return string(j) }
func (j Jurisdiction) RegionName() string { return jurisdictionNames[j] }

// Valid reports whether j is one of the eight known codes.
func (j Jurisdiction) Valid() bool {
	_, ok := jurisdictionNames[j]
	return ok
}

// Compile-time check that Jurisdiction implements generic.Region
var _ generic.Region = Jurisdiction("")

func init() {
	for _, j := range Jurisdictions {
		generic.RegisterRegion(j)
	}
}

// ParseJurisdiction converts a code such as "nsw" or "NSW" into a
// Jurisdiction. Unknown codes yield an InvalidInputError.
func ParseJurisdiction(code string) (Jurisdiction, error) {
	if j, ok := generic.LookupRegion(code).(Jurisdiction); ok {
		return j, nil
	}
	regions := generic.ListRegions()
	codes := make([]string, len(regions))
	for i, r := range regions {
		codes[i] = r.RegionCode()
	}
	return "", &generic.InvalidInputError{
		Field:  "jurisdiction",
		Value:  code,
		Reason: "must be one of " + strings.Join(codes, ", "),
		Err:    generic.ErrUnknownJurisdiction,
	}
}
