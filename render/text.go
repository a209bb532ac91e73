// Package render turns an assessment into the text a household reads.
// It is the presentation boundary: nothing here changes a verdict.
package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/warp/housing-engine/generic"
	"github.com/warp/housing-engine/housing"
)

const (
	NationalInfoURL = "https://my.gov.au/en/services/living-arrangements/finding-renting-and-buying-a-home/help-with-homelessness/social-public-and-community-housing"
	HotlineNumber   = "1800 825 955"

	Disclaimer = "Not official advice. Always verify with government sites."
)

var printer = message.NewPrinter(language.MustParse("en-AU"))

// Money formats an amount as Australian dollars with digit grouping:
// 1370 -> "$1,370", 22998.5 -> "$22,998.5".
func Money(a generic.Amount) string {
	if a.Value.Equal(a.Value.Truncate(0)) {
		return printer.Sprintf("$%d", a.Value.IntPart())
	}
	return printer.Sprintf("$%v", number.Decimal(a.Float64(), number.MaxFractionDigits(2)))
}

// Text writes the full assessment: verdict, notes, limits, wait estimate
// and next steps.
func Text(w io.Writer, res housing.AssessmentResult) error {
	var b strings.Builder

	b.WriteString("Assessment\n")
	if res.Eligible {
		b.WriteString("Based on your answers, you may be eligible! Apply soon to join the waitlist.\n")
		if len(res.Notes) > 0 {
			b.WriteString("Good to know:\n")
			writeNotes(&b, res.Notes)
		}
	} else {
		b.WriteString("You may not be eligible due to:\n")
		writeNotes(&b, res.Notes)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Income limit in %s for %d: %s/week\n", res.Jurisdiction, res.HouseholdSize, Money(res.IncomeLimit))
	fmt.Fprintf(&b, "Asset limit in %s: %s\n", res.Jurisdiction, Money(res.AssetLimit))
	fmt.Fprintf(&b, "Estimated wait time in %s: %s (varies by location and demand; check official reports).\n\n",
		res.Jurisdiction, res.WaitEstimate)

	b.WriteString("Next Steps Without Red Tape\n")
	b.WriteString("1. Gather docs: ID, income proof, Centrelink statements.\n")
	fmt.Fprintf(&b, "2. Apply online: %s\n", res.ApplyURL)
	fmt.Fprintf(&b, "3. For full national info: %s\n", NationalInfoURL)
	fmt.Fprintf(&b, "4. If stuck, contact a housing support service like %s (national homelessness hotline).\n\n", HotlineNumber)
	b.WriteString(Disclaimer + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeNotes(b *strings.Builder, notes []generic.Finding) {
	for _, n := range notes {
		fmt.Fprintf(b, "- %s\n", n.Message)
	}
}
