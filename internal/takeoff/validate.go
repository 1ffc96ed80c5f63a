package takeoff

import (
	"fmt"
	"strings"
)

// Severity ranks validation findings.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Finding is one advisory validation message. Findings annotate a result;
// they never block completion.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// essentialCategories must each appear at least once in an electrical
// takeoff; a missing one earns a medium finding.
var essentialCategories = []string{"Panel", "Wire", "Breakers", "Boxes"}

// wireToConduitMinRatio accounts for bends and slack: wire runs inside
// conduit need at least 10% extra length.
const wireToConduitMinRatio = 1.1

// Validate applies the fixed sanity rule set to a materials takeoff.
// Purely advisory; the returned findings never invalidate the result.
func Validate(materials []MaterialItem) []Finding {
	findings := []Finding{}

	quantities := make(map[string]float64)
	present := make(map[string]bool)
	for _, m := range materials {
		quantities[strings.ToLower(m.Category)] += m.Quantity
		present[strings.ToLower(m.Category)] = true
	}

	boxes := quantities["boxes"]
	receptacles := quantities["receptacles"]
	wire := quantities["wire"]
	conduit := quantities["conduit"]

	if receptacles > 0 && boxes < receptacles {
		findings = append(findings, Finding{
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("box count (%.0f) is below receptacle count (%.0f); every receptacle needs a box", boxes, receptacles),
		})
	}
	if conduit > 0 && wire < conduit*wireToConduitMinRatio {
		findings = append(findings, Finding{
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("wire length (%.0f) is under %.0f%% of conduit length (%.0f); pulled wire needs slack for bends", wire, wireToConduitMinRatio*100, conduit),
		})
	}
	if receptacles > 0 && !present["panel"] {
		findings = append(findings, Finding{
			Severity: SeverityHigh,
			Message:  "receptacles are listed but no panel is present; circuits need a distribution panel",
		})
	}
	for _, category := range essentialCategories {
		if !present[strings.ToLower(category)] {
			findings = append(findings, Finding{
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("no %s items found; most scopes of this kind include them", category),
			})
		}
	}
	return findings
}
