package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spoorzoeker/spoor-cli/internal/models"
)

var facilityLabels = map[string]string{
	models.FacilityToilet:     "toilet",
	models.FacilityWifi:       "wifi",
	models.FacilityQuiet:      "quiet zone",
	models.FacilityBicycle:    "bicycles",
	models.FacilityPower:      "power sockets",
	models.FacilityAccessible: "accessible",
}

// FacilityLabel returns a readable name for a facility code
func FacilityLabel(code string) string {
	if label, ok := facilityLabels[strings.ToUpper(code)]; ok {
		return label
	}
	return strings.ToLower(code)
}

// RenderMaterial renders the rolling stock of a train as ASCII art
func RenderMaterial(w io.Writer, material *models.Material, opts TableOptions) {
	if material == nil || len(material.Parts) == 0 {
		_, _ = fmt.Fprintln(w, "No material data available.")
		return
	}

	c := opts.colors()

	header := fmt.Sprintf("%s %s", c.Header("Train:"), c.Line(material.TrainNumber))
	if material.Type != "" {
		header += "  " + material.Type
	}
	if material.Platform != "" {
		header += fmt.Sprintf("  %s %s", c.Header("Track:"), c.Platform(material.Platform))
	}
	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w)

	renderComposition(w, material, c)
	_, _ = fmt.Fprintln(w)

	for _, part := range material.Parts {
		renderPart(w, &part, c)
	}

	seats := material.TotalSeats()
	summary := fmt.Sprintf("%d parts", material.Length)
	if material.LengthMeters > 0 {
		summary += fmt.Sprintf(", %d m", material.LengthMeters)
	}
	_, _ = fmt.Fprintf(w, "\n%s %s  %s %d  %s %d\n",
		c.Header("Total:"), summary,
		c.DelayHigh("1st"), seats.FirstClass,
		c.Line("2nd"), seats.SecondClass,
	)
	if fs := material.Facilities(); len(fs) > 0 {
		labels := make([]string, len(fs))
		for i, f := range fs {
			labels[i] = FacilityLabel(f)
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Muted("Facilities:"), strings.Join(labels, ", "))
	}
}

// renderComposition draws each part as a block of carriages, e.g.
// "<[====][======]" for a 4 + 6 unit train heading left.
func renderComposition(w io.Writer, material *models.Material, c *Colors) {
	var sb strings.Builder
	sb.WriteString(c.Muted("<"))

	for _, part := range material.Parts {
		n := part.Carriages
		if n < 1 {
			n = 1
		}
		body := strings.Repeat("=", n)
		if part.Seats.FirstClass > 0 {
			// First class sits at the cab end
			body = c.DelayHigh("1") + strings.Repeat("=", n-1)
			if n == 1 {
				body = c.DelayHigh("1")
			}
		}
		sb.WriteString("[")
		sb.WriteString(body)
		sb.WriteString("]")
	}

	_, _ = fmt.Fprintln(w, sb.String())
}

func renderPart(w io.Writer, part *models.MaterialPart, c *Colors) {
	number := part.Number
	if number == "" {
		number = "?"
	}

	typ := part.Type
	if typ == "" {
		typ = "???"
	}

	var amenities []string
	for _, f := range part.Facilities {
		amenities = append(amenities, FacilityLabel(f))
	}
	amenityStr := ""
	if len(amenities) > 0 {
		amenityStr = "  " + strings.Join(amenities, "  ")
	}

	_, _ = fmt.Fprintf(w, "%6s: %-8s %2d cars  %s %3d  %s %3d%s\n",
		number,
		typ,
		part.Carriages,
		c.DelayHigh("1st"), part.Seats.FirstClass,
		c.Line("2nd"), part.Seats.SecondClass,
		c.Muted(amenityStr),
	)
}
