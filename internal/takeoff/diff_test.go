package takeoff

import "testing"

func TestDiffIdentity(t *testing.T) {
	materials := []MaterialItem{
		{Category: "Wire", Name: "MC Cable", Quantity: 9200, Unit: "ft", UnitPrice: floatPtr(1.45), TotalPrice: floatPtr(13340)},
		{Category: "Receptacles", Name: "Duplex Receptacle", Quantity: 48, Unit: "ea", UnitPrice: floatPtr(2.85), TotalPrice: floatPtr(136.80)},
	}
	diff := Diff(materials, materials)
	if len(diff.Added) != 0 || len(diff.Removed) != 0 || len(diff.Modified) != 0 {
		t.Fatalf("diff of a takeoff with itself must be empty: %+v", diff)
	}
	if diff.CostDelta != 0 || diff.PercentageCostDelta != 0 {
		t.Fatalf("expected zero cost deltas, got %v / %v", diff.CostDelta, diff.PercentageCostDelta)
	}
}

func TestDiffAddedRemovedModified(t *testing.T) {
	baseline := []MaterialItem{
		{Category: "Wire", Name: "MC Cable", Quantity: 9000, Unit: "ft", TotalPrice: floatPtr(13050)},
		{Category: "Boxes", Name: "Junction Box", Quantity: 30, Unit: "ea", TotalPrice: floatPtr(72)},
	}
	updated := []MaterialItem{
		{Category: "Wire", Name: "MC Cable", Quantity: 9500, Unit: "ft", TotalPrice: floatPtr(13775)},
		{Category: "Receptacles", Name: "GFCI Receptacle", Quantity: 6, Unit: "ea", TotalPrice: floatPtr(111)},
	}
	diff := Diff(baseline, updated)

	if len(diff.Added) != 1 || diff.Added[0].Name != "GFCI Receptacle" {
		t.Fatalf("expected GFCI Receptacle added, got %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].Name != "Junction Box" {
		t.Fatalf("expected Junction Box removed, got %+v", diff.Removed)
	}
	if len(diff.Modified) != 1 {
		t.Fatalf("expected one modification, got %+v", diff.Modified)
	}
	change := diff.Modified[0]
	if change.PreviousQuantity != 9000 || change.Delta != 500 {
		t.Fatalf("unexpected quantity change: %+v", change)
	}
	// 13775 + 111 - 13050 - 72 = 764
	if diff.CostDelta != 764 {
		t.Fatalf("expected cost delta 764, got %v", diff.CostDelta)
	}
}

func TestDiffKeyIsCaseInsensitive(t *testing.T) {
	baseline := []MaterialItem{{Category: "Wire", Name: "MC Cable", Quantity: 100, Unit: "ft"}}
	updated := []MaterialItem{{Category: "wire", Name: "mc cable", Quantity: 100, Unit: "ft"}}
	diff := Diff(baseline, updated)
	if len(diff.Added) != 0 || len(diff.Removed) != 0 || len(diff.Modified) != 0 {
		t.Fatalf("case-only differences must not register as changes: %+v", diff)
	}
}

func TestDiffPercentageOnZeroBaseline(t *testing.T) {
	updated := []MaterialItem{{Category: "Wire", Name: "MC Cable", Quantity: 100, Unit: "ft", TotalPrice: floatPtr(145)}}
	diff := Diff(nil, updated)
	if diff.CostDelta != 145 {
		t.Fatalf("expected cost delta 145, got %v", diff.CostDelta)
	}
	if diff.PercentageCostDelta != 0 {
		t.Fatalf("percentage delta must be 0 when baseline has no cost, got %v", diff.PercentageCostDelta)
	}
}

func TestDiffPercentage(t *testing.T) {
	baseline := []MaterialItem{{Category: "Wire", Name: "MC Cable", Quantity: 100, Unit: "ft", TotalPrice: floatPtr(200)}}
	updated := []MaterialItem{{Category: "Wire", Name: "MC Cable", Quantity: 150, Unit: "ft", TotalPrice: floatPtr(300)}}
	diff := Diff(baseline, updated)
	if diff.PercentageCostDelta != 50 {
		t.Fatalf("expected 50%% delta, got %v", diff.PercentageCostDelta)
	}
}
