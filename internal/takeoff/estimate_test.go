package takeoff

import "testing"

func TestAssignDefaultPricesIsTotal(t *testing.T) {
	engine := NewEngine(DefaultRates())
	materials := []MaterialItem{
		{Category: "Wire", Name: "Wire Nuts", Quantity: 100, Unit: "ea"},
		{Category: "Lighting", Name: "Mystery Sconce", Quantity: 4, Unit: "ea"},
		{Category: "Gadgets", Name: "Unheard-of Widget", Quantity: 2, Unit: "ea"},
	}
	engine.AssignDefaultPrices(materials)
	for i, m := range materials {
		if m.UnitPrice == nil || m.TotalPrice == nil {
			t.Fatalf("material %d left unpriced: %+v", i, m)
		}
		if *m.TotalPrice != round2(m.Quantity**m.UnitPrice) {
			t.Fatalf("material %d total %.2f != qty*unit %.2f", i, *m.TotalPrice, m.Quantity**m.UnitPrice)
		}
	}
	if *materials[0].UnitPrice != 0.08 {
		t.Fatalf("expected exact table price 0.08 for wire nuts, got %.2f", *materials[0].UnitPrice)
	}
	if *materials[1].UnitPrice != 45.00 {
		t.Fatalf("expected Lighting category default 45.00, got %.2f", *materials[1].UnitPrice)
	}
	if *materials[2].UnitPrice != globalDefaultUnitPrice {
		t.Fatalf("expected global default %.2f, got %.2f", globalDefaultUnitPrice, *materials[2].UnitPrice)
	}
}

func TestResolveUnitPriceSubstringMatch(t *testing.T) {
	item := MaterialItem{Category: "Wire", Name: "12/2 MC Cable (Circuit #4)", Quantity: 1, Unit: "ft"}
	if price := ResolveUnitPrice(item); price != 1.45 {
		t.Fatalf("expected substring match on mc cable (1.45), got %.2f", price)
	}
}

func TestResolveUnitPriceKeepsExistingPriceUntouched(t *testing.T) {
	engine := NewEngine(DefaultRates())
	price := 3.33
	materials := []MaterialItem{{Category: "Wire", Name: "MC Cable", Quantity: 10, Unit: "ft", UnitPrice: &price}}
	engine.AssignDefaultPrices(materials)
	if *materials[0].UnitPrice != 3.33 {
		t.Fatalf("upstream unit price should be kept, got %.2f", *materials[0].UnitPrice)
	}
	if *materials[0].TotalPrice != 33.30 {
		t.Fatalf("expected total 33.30, got %.2f", *materials[0].TotalPrice)
	}
}

func TestRollupIdentity(t *testing.T) {
	engine := NewEngine(DefaultRates())
	b := engine.Rollup(1000, 500)
	if b.Tax != 80 {
		t.Fatalf("expected tax 80, got %.2f", b.Tax)
	}
	if b.Subtotal != b.MaterialCost+b.LaborCost+b.Tax {
		t.Fatalf("subtotal %.2f != materials+labor+tax %.2f", b.Subtotal, b.MaterialCost+b.LaborCost+b.Tax)
	}
	if b.Total != round2(b.Subtotal+b.Overhead+b.Profit) {
		t.Fatalf("total %.2f != subtotal+overhead+profit %.2f", b.Total, b.Subtotal+b.Overhead+b.Profit)
	}
	if b.Total != 1975 {
		t.Fatalf("expected total 1975, got %.2f", b.Total)
	}
}

func TestEstimateLaborHoursCategoryRates(t *testing.T) {
	engine := NewEngine(DefaultRates())
	materials := []MaterialItem{
		{Category: "Receptacles", Name: "Duplex Receptacle", Quantity: 10, Unit: "ea"},
	}
	// 10 * 0.40 = 4h, plus 15% overhead = 4.6, rounded to the quarter hour.
	if hours := engine.EstimateLaborHours(materials); hours != 4.5 {
		t.Fatalf("expected 4.5 hours, got %v", hours)
	}
}

func TestEstimateLaborHoursFallbackHeuristic(t *testing.T) {
	engine := NewEngine(DefaultRates())
	materials := []MaterialItem{
		{Category: "Gadgets", Name: "Unheard-of Widget", Quantity: 4, Unit: "ea", UnitPrice: floatPtr(50), TotalPrice: floatPtr(200)},
	}
	// $200 of material -> 2h, plus 15% overhead = 2.3 -> 2.25 at the quarter hour.
	if hours := engine.EstimateLaborHours(materials); hours != 2.25 {
		t.Fatalf("expected fallback 2.25 hours, got %v", hours)
	}
}

func TestEnrichTakeoffLevelSkipsPricing(t *testing.T) {
	engine := NewEngine(DefaultRates())
	result := AnalysisResult{
		Trade: TradeElectrical,
		Level: LevelTakeoff,
		Materials: []MaterialItem{
			{Category: "Wire", Name: "MC Cable", Quantity: 100, Unit: "ft"},
		},
	}
	engine.Enrich(&result)
	if result.Materials[0].UnitPrice != nil || result.Materials[0].TotalPrice != nil {
		t.Fatalf("takeoff level must stay unpriced: %+v", result.Materials[0])
	}
	if result.TotalMaterialCost != nil || result.TotalCost != nil {
		t.Fatalf("takeoff level must have no totals")
	}
	if len(result.Circuits) == 0 {
		t.Fatalf("electrical results should still get circuit grouping")
	}
}

func TestEnrichCostEstimateFillsTotals(t *testing.T) {
	engine := NewEngine(DefaultRates())
	result := AnalysisResult{
		Trade: TradeElectrical,
		Level: LevelCostEstimate,
		Materials: []MaterialItem{
			{Category: "Wire", Name: "Wire Nuts", Quantity: 100, Unit: "ea"},
		},
	}
	engine.Enrich(&result)
	if result.TotalMaterialCost == nil || *result.TotalMaterialCost != 8 {
		t.Fatalf("expected material total 8.00, got %v", result.TotalMaterialCost)
	}
	if result.TotalCost == nil {
		t.Fatalf("expected total cost to be derived")
	}
	if len(result.Labor) != 0 || result.TotalLaborCost != nil {
		t.Fatalf("costEstimate must not synthesize labor")
	}
}

func TestEnrichFullEstimateSynthesizesLabor(t *testing.T) {
	engine := NewEngine(DefaultRates())
	result := AnalysisResult{
		Trade: TradeElectrical,
		Level: LevelFullEstimate,
		Materials: []MaterialItem{
			{Category: "Receptacles", Name: "Duplex Receptacle", Quantity: 10, Unit: "ea"},
		},
	}
	engine.Enrich(&result)
	if len(result.Labor) != 1 {
		t.Fatalf("expected one synthesized labor line, got %+v", result.Labor)
	}
	labor := result.Labor[0]
	if labor.Hours != 4.5 {
		t.Fatalf("expected 4.5 estimated hours, got %v", labor.Hours)
	}
	if labor.Rate == nil || *labor.Rate != DefaultLaborHourlyRate {
		t.Fatalf("expected default hourly rate, got %v", labor.Rate)
	}
	if result.TotalLaborCost == nil || *result.TotalLaborCost != 382.50 {
		t.Fatalf("expected labor total 382.50, got %v", result.TotalLaborCost)
	}
	if result.TotalCost == nil {
		t.Fatalf("expected total cost to be derived")
	}
}

func TestEnrichPricesUnratedLaborHours(t *testing.T) {
	engine := NewEngine(DefaultRates())
	result := AnalysisResult{
		Trade: TradeElectrical,
		Level: LevelFullEstimate,
		Materials: []MaterialItem{
			{Category: "Wire", Name: "MC Cable", Quantity: 100, Unit: "ft"},
		},
		Labor: []LaborItem{{Task: "Rough-in", Hours: 24}},
	}
	engine.Enrich(&result)
	labor := result.Labor[0]
	if labor.Rate == nil || *labor.Rate != DefaultLaborHourlyRate {
		t.Fatalf("unrated hours should get the flat hourly rate, got %v", labor.Rate)
	}
	if labor.Cost == nil || *labor.Cost != 2040 {
		t.Fatalf("expected 24h at $85 = 2040, got %v", labor.Cost)
	}
	if result.TotalLaborCost == nil || *result.TotalLaborCost != 2040 {
		t.Fatalf("expected labor total 2040, got %v", result.TotalLaborCost)
	}
}

func TestEnrichPricesMixedLaborLines(t *testing.T) {
	engine := NewEngine(DefaultRates())
	result := AnalysisResult{
		Trade: TradeElectrical,
		Level: LevelFullEstimate,
		Materials: []MaterialItem{
			{Category: "Wire", Name: "MC Cable", Quantity: 100, Unit: "ft"},
		},
		Labor: []LaborItem{
			{Task: "Rough-in", Hours: 10, Rate: floatPtr(95), Cost: floatPtr(950)},
			{Task: "Trim-out", Hours: 4},
		},
	}
	engine.Enrich(&result)
	if *result.Labor[0].Cost != 950 {
		t.Fatalf("rated line must keep its cost, got %v", *result.Labor[0].Cost)
	}
	if result.Labor[1].Cost == nil || *result.Labor[1].Cost != 340 {
		t.Fatalf("expected 4h at $85 = 340, got %v", result.Labor[1].Cost)
	}
	if result.TotalLaborCost == nil || *result.TotalLaborCost != 1290 {
		t.Fatalf("expected labor total 1290, got %v", result.TotalLaborCost)
	}
}

func TestEnrichKeepsExplicitTotals(t *testing.T) {
	engine := NewEngine(DefaultRates())
	result := AnalysisResult{
		Trade: TradePlumbing,
		Level: LevelCostEstimate,
		Materials: []MaterialItem{
			{Category: "Pipe", Name: "Copper Pipe", Quantity: 10, Unit: "ft"},
		},
		TotalMaterialCost: floatPtr(123.45),
		TotalCost:         floatPtr(500),
	}
	engine.Enrich(&result)
	if *result.TotalMaterialCost != 123.45 || *result.TotalCost != 500 {
		t.Fatalf("explicit totals must survive enrichment: %v / %v", *result.TotalMaterialCost, *result.TotalCost)
	}
}

func TestNewEngineFillsUnsetRates(t *testing.T) {
	engine := NewEngine(Rates{TaxRate: 0.05, OverheadRate: -1, ProfitRate: -1, LaborOverheadRate: -1})
	rates := engine.Rates()
	if rates.TaxRate != 0.05 {
		t.Fatalf("explicit rate overwritten: %v", rates.TaxRate)
	}
	if rates.OverheadRate != DefaultOverheadRate || rates.ProfitRate != DefaultProfitRate {
		t.Fatalf("negative rates should fall back to defaults: %+v", rates)
	}
	if rates.LaborHourlyRate != DefaultLaborHourlyRate {
		t.Fatalf("zero hourly rate should fall back to default: %v", rates.LaborHourlyRate)
	}
}

func TestNewEngineHonorsZeroTaxRate(t *testing.T) {
	rates := DefaultRates()
	rates.TaxRate = 0
	engine := NewEngine(rates)
	if engine.Rates().TaxRate != 0 {
		t.Fatalf("tax-exempt rate overwritten: %v", engine.Rates().TaxRate)
	}
	b := engine.Rollup(1000, 500)
	if b.Tax != 0 {
		t.Fatalf("expected zero tax, got %v", b.Tax)
	}
	if b.Subtotal != 1500 {
		t.Fatalf("expected subtotal 1500, got %v", b.Subtotal)
	}
}
