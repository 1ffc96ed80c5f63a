package takeoff

import (
	"sort"
	"strings"
)

const defaultCategory = "General"

// CategoryKeyword maps a lowercase name fragment to a canonical category.
type CategoryKeyword struct {
	Fragment string
	Category string
}

// CategoryKeywords drives keyword-based category inference. Consulted in
// declaration order; the first fragment contained in the item name wins.
// The mapping is an approximate heuristic with no normative source; callers
// may replace it, and tests assert determinism only.
var CategoryKeywords = []CategoryKeyword{
	{"gfci", "Receptacles"},
	{"afci", "Receptacles"},
	{"receptacle", "Receptacles"},
	{"outlet", "Receptacles"},
	{"dimmer", "Switches"},
	{"switch", "Switches"},
	{"subpanel", "Panel"},
	{"panel", "Panel"},
	{"breaker", "Breakers"},
	{"mc cable", "Wire"},
	{"romex", "Wire"},
	{"nm-b", "Wire"},
	{"thhn", "Wire"},
	{"wire", "Wire"},
	{"cable", "Wire"},
	{"emt", "Conduit"},
	{"conduit", "Conduit"},
	{"junction box", "Boxes"},
	{"box", "Boxes"},
	{"fixture", "Lighting"},
	{"light", "Lighting"},
	{"lamp", "Lighting"},
	{"pipe", "Pipe"},
	{"pex", "Pipe"},
	{"pvc", "Pipe"},
	{"copper", "Pipe"},
	{"fitting", "Fittings"},
	{"elbow", "Fittings"},
	{"tee", "Fittings"},
	{"valve", "Fittings"},
	{"duct", "Ductwork"},
	{"register", "Ductwork"},
	{"diffuser", "Ductwork"},
	{"stud", "Framing"},
	{"joist", "Framing"},
	{"lumber", "Framing"},
	{"plywood", "Sheathing"},
	{"osb", "Sheathing"},
	{"sheathing", "Sheathing"},
	{"drywall", "Drywall"},
	{"gypsum", "Drywall"},
	{"shingle", "Roofing"},
	{"underlayment", "Roofing"},
	{"flashing", "Roofing"},
	{"insulation", "Insulation"},
	{"batt", "Insulation"},
	{"tile", "Flooring"},
	{"carpet", "Flooring"},
	{"vinyl", "Flooring"},
}

// InferCategory classifies a component name by keyword, defaulting to General.
func InferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range CategoryKeywords {
		if strings.Contains(lower, kw.Fragment) {
			return kw.Category
		}
	}
	return defaultCategory
}

// defaultUnitPrices maps exact lowercase component names to unit prices (USD).
var defaultUnitPrices = map[string]float64{
	"duplex receptacle":       2.85,
	"gfci receptacle":         18.50,
	"afci receptacle":         24.00,
	"single-pole switch":      3.20,
	"3-way switch":            6.40,
	"dimmer switch":           22.00,
	"wire nuts":               0.08,
	"mc cable":                1.45,
	"romex":                   0.85,
	"nm-b cable":              0.85,
	"thhn wire":               0.42,
	"emt conduit":             3.80,
	"junction box":            2.40,
	"device box":              1.60,
	"4-inch recessed light":   32.00,
	"led recessed light":      28.00,
	"200a panel":              580.00,
	"100a panel":              320.00,
	"20a breaker":             12.50,
	"15a breaker":             9.80,
	"copper pipe":             4.60,
	"pex tubing":              1.10,
	"pvc pipe":                2.30,
	"shutoff valve":           11.50,
	"flex duct":               6.20,
	"supply register":         14.00,
	"2x4 stud":                4.25,
	"2x6 stud":                6.80,
	"osb sheathing":           18.50,
	"cdx plywood":             34.00,
	"1/2 inch drywall":        12.40,
	"5/8 inch type x drywall": 15.90,
	"joint compound":          16.50,
	"architectural shingles":  38.00,
	"synthetic underlayment":  0.18,
}

// categoryDefaultPrices back the pricing chain when no name match exists.
var categoryDefaultPrices = map[string]float64{
	"Receptacles": 4.50,
	"Switches":    5.25,
	"Panel":       450.00,
	"Breakers":    14.00,
	"Wire":        1.20,
	"Conduit":     3.80,
	"Boxes":       2.40,
	"Lighting":    45.00,
	"Pipe":        3.90,
	"Fittings":    2.60,
	"Ductwork":    9.50,
	"Framing":     5.10,
	"Sheathing":   24.00,
	"Drywall":     13.50,
	"Roofing":     30.00,
	"Insulation":  0.95,
	"Flooring":    4.20,
	defaultCategory: 10.00,
}

// globalDefaultUnitPrice is the end of the pricing chain; it keeps pricing
// total even for categories the tables have never seen.
const globalDefaultUnitPrice = 10.00

// sortedPriceNames makes the substring pass deterministic regardless of map
// iteration order.
var sortedPriceNames = func() []string {
	names := make([]string, 0, len(defaultUnitPrices))
	for name := range defaultUnitPrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// ResolveUnitPrice resolves a unit price for a material: exact name match,
// then case-insensitive substring match in either direction, then the
// category default. Deterministic and total by construction.
func ResolveUnitPrice(item MaterialItem) float64 {
	key := strings.ToLower(strings.TrimSpace(item.Name))
	if price, ok := defaultUnitPrices[key]; ok {
		return price
	}
	for _, name := range sortedPriceNames {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return defaultUnitPrices[name]
		}
	}
	for category, price := range categoryDefaultPrices {
		if strings.EqualFold(category, item.Category) {
			return price
		}
	}
	return globalDefaultUnitPrice
}

// laborCategoryRates are installation hours per unit, by category.
var laborCategoryRates = map[string]float64{
	"Receptacles": 0.40,
	"Switches":    0.35,
	"Panel":       8.00,
	"Breakers":    0.50,
	"Wire":        0.02,
	"Conduit":     0.05,
	"Boxes":       0.25,
	"Lighting":    1.00,
	"Pipe":        0.08,
	"Fittings":    0.20,
	"Ductwork":    0.30,
	"Framing":     0.15,
	"Sheathing":   0.35,
	"Drywall":     0.45,
	"Roofing":     0.02,
	"Insulation":  0.01,
	"Flooring":    0.03,
}

func laborRateFor(category string) (float64, bool) {
	for name, rate := range laborCategoryRates {
		if strings.EqualFold(name, category) {
			return rate, true
		}
	}
	return 0, false
}

// loadKeywords map component keywords to electrical load per unit. Checked
// in order so the more specific GFCI entry wins over plain receptacles.
var loadKeywords = []struct {
	Fragment string
	Watts    float64
}{
	{"gfci", 180},
	{"receptacle", 120},
	{"outlet", 120},
	{"fixture", 100},
	{"light", 100},
	{"fan", 75},
	{"smoke detector", 10},
}

// wattsPerUnit returns the per-unit circuit load for a component name, or 0
// for components that draw no branch load (wire, boxes, covers).
func wattsPerUnit(name string) float64 {
	lower := strings.ToLower(name)
	for _, kw := range loadKeywords {
		if strings.Contains(lower, kw.Fragment) {
			return kw.Watts
		}
	}
	return 0
}
