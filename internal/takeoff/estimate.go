package takeoff

import "math"

// Rates are the tunable estimate rates. Negative fields fall back to the
// defaults; an explicit zero is honored, so a tax-exempt job can set TaxRate
// to 0. LaborHourlyRate must be positive to take effect. Start from
// DefaultRates and override rather than building from the zero value.
type Rates struct {
	TaxRate           float64
	OverheadRate      float64
	ProfitRate        float64
	LaborHourlyRate   float64
	LaborOverheadRate float64
}

const (
	DefaultTaxRate           = 0.08
	DefaultOverheadRate      = 0.15
	DefaultProfitRate        = 0.10
	DefaultLaborHourlyRate   = 85.0
	DefaultLaborOverheadRate = 0.15

	// laborPerMaterialDollar is the fallback heuristic when no category
	// rates apply: one labor hour per $100 of material cost.
	laborPerMaterialDollar = 1.0 / 100.0
)

// DefaultRates returns the standard estimate rates.
func DefaultRates() Rates {
	return Rates{
		TaxRate:           DefaultTaxRate,
		OverheadRate:      DefaultOverheadRate,
		ProfitRate:        DefaultProfitRate,
		LaborHourlyRate:   DefaultLaborHourlyRate,
		LaborOverheadRate: DefaultLaborOverheadRate,
	}
}

// CostBreakdown is a full cost rollup.
type CostBreakdown struct {
	MaterialCost float64 `json:"materialCost"`
	LaborCost    float64 `json:"laborCost"`
	Tax          float64 `json:"tax"`
	Subtotal     float64 `json:"subtotal"`
	Overhead     float64 `json:"overhead"`
	Profit       float64 `json:"profit"`
	Total        float64 `json:"total"`
}

// Engine derives the quantities the upstream response omitted: default
// prices, labor hours, circuit loads and cost rollups.
type Engine struct {
	rates Rates
}

// NewEngine creates an estimation engine, filling unset rates with defaults.
func NewEngine(rates Rates) *Engine {
	defaults := DefaultRates()
	if rates.TaxRate < 0 {
		rates.TaxRate = defaults.TaxRate
	}
	if rates.OverheadRate < 0 {
		rates.OverheadRate = defaults.OverheadRate
	}
	if rates.ProfitRate < 0 {
		rates.ProfitRate = defaults.ProfitRate
	}
	if rates.LaborHourlyRate <= 0 {
		rates.LaborHourlyRate = defaults.LaborHourlyRate
	}
	if rates.LaborOverheadRate < 0 {
		rates.LaborOverheadRate = defaults.LaborOverheadRate
	}
	return &Engine{rates: rates}
}

// Rates returns the engine's effective rates.
func (e *Engine) Rates() Rates {
	return e.rates
}

// Enrich fills the gaps the normalizer left, according to the requested
// level. Explicit totals from the upstream response are kept; only missing
// fields are derived.
func (e *Engine) Enrich(result *AnalysisResult) {
	if result == nil {
		return
	}
	if result.Trade == TradeElectrical {
		result.Circuits = GroupCircuitLoads(result.Materials)
	}
	if result.Level == LevelTakeoff {
		return
	}

	e.AssignDefaultPrices(result.Materials)
	materialCost, _ := sumMaterialCost(result.Materials)
	if result.TotalMaterialCost == nil {
		result.TotalMaterialCost = floatPtr(materialCost)
	}

	laborCost := 0.0
	if result.Level == LevelFullEstimate {
		if len(result.Labor) == 0 && result.TotalLaborCost == nil {
			hours := e.EstimateLaborHours(result.Materials)
			cost := round2(hours * e.rates.LaborHourlyRate)
			result.Labor = []LaborItem{{
				Task:  "Installation labor (estimated)",
				Hours: hours,
				Rate:  floatPtr(e.rates.LaborHourlyRate),
				Cost:  floatPtr(cost),
			}}
			result.TotalLaborCost = floatPtr(cost)
		} else if result.TotalLaborCost == nil {
			e.priceLabor(result.Labor)
			cost, _ := sumLaborCost(result.Labor)
			result.TotalLaborCost = floatPtr(cost)
		}
		laborCost = *result.TotalLaborCost
	}

	if result.TotalCost == nil {
		breakdown := e.Rollup(*result.TotalMaterialCost, laborCost)
		result.TotalCost = floatPtr(breakdown.Total)
	}
}

// AssignDefaultPrices gives every unpriced material a unit price via the
// pricing chain and recomputes total prices. Pricing is total: every item
// comes out with both prices set.
func (e *Engine) AssignDefaultPrices(materials []MaterialItem) {
	for i := range materials {
		if materials[i].UnitPrice == nil {
			materials[i].UnitPrice = floatPtr(ResolveUnitPrice(materials[i]))
		}
		materials[i].TotalPrice = floatPtr(round2(materials[i].Quantity * *materials[i].UnitPrice))
	}
}

// priceLabor fills in cost for labor lines that arrived with hours but no
// rate, using the flat hourly rate. Lines that already carry a cost are kept.
func (e *Engine) priceLabor(labor []LaborItem) {
	for i := range labor {
		if labor[i].Cost != nil {
			continue
		}
		rate := e.rates.LaborHourlyRate
		if labor[i].Rate != nil {
			rate = *labor[i].Rate
		}
		labor[i].Rate = floatPtr(rate)
		labor[i].Cost = floatPtr(round2(labor[i].Hours * rate))
	}
}

// EstimateLaborHours estimates installation hours from category rates, with
// a 15% coordination/testing overhead, rounded to the nearest quarter hour.
// When no category rates apply it falls back to one hour per $100 of
// material cost.
func (e *Engine) EstimateLaborHours(materials []MaterialItem) float64 {
	hours := 0.0
	rated := false
	for _, m := range materials {
		if rate, ok := laborRateFor(m.Category); ok {
			hours += m.Quantity * rate
			rated = true
		}
	}
	if !rated {
		cost, _ := sumMaterialCost(materials)
		hours = cost * laborPerMaterialDollar
	}
	hours *= 1 + e.rates.LaborOverheadRate
	return roundQuarter(hours)
}

// Rollup computes the full cost stack: tax on materials, then overhead and
// profit on the subtotal.
func (e *Engine) Rollup(materialCost, laborCost float64) CostBreakdown {
	tax := materialCost * e.rates.TaxRate
	subtotal := materialCost + laborCost + tax
	overhead := subtotal * e.rates.OverheadRate
	profit := subtotal * e.rates.ProfitRate
	return CostBreakdown{
		MaterialCost: round2(materialCost),
		LaborCost:    round2(laborCost),
		Tax:          round2(tax),
		Subtotal:     round2(subtotal),
		Overhead:     round2(overhead),
		Profit:       round2(profit),
		Total:        round2(subtotal + overhead + profit),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundQuarter(hours float64) float64 {
	return math.Round(hours*4) / 4
}
