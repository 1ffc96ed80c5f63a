package takeoff

import "strings"

// Diff compares two takeoffs keyed by (category, name). Items only in
// updated are added, items only in baseline are removed, and shared items
// with differing quantities are modified. Cost deltas use total prices.
func Diff(baseline, updated []MaterialItem) TakeoffDiff {
	diff := TakeoffDiff{
		Added:    []MaterialItem{},
		Removed:  []MaterialItem{},
		Modified: []MaterialChange{},
	}

	baselineByKey := make(map[string]MaterialItem, len(baseline))
	for _, item := range baseline {
		baselineByKey[materialKey(item)] = item
	}
	updatedKeys := make(map[string]bool, len(updated))

	for _, item := range updated {
		key := materialKey(item)
		updatedKeys[key] = true
		prev, ok := baselineByKey[key]
		if !ok {
			diff.Added = append(diff.Added, item)
			continue
		}
		if prev.Quantity != item.Quantity {
			diff.Modified = append(diff.Modified, MaterialChange{
				Item:             item,
				PreviousQuantity: prev.Quantity,
				Delta:            item.Quantity - prev.Quantity,
			})
		}
	}
	for _, item := range baseline {
		if !updatedKeys[materialKey(item)] {
			diff.Removed = append(diff.Removed, item)
		}
	}

	baselineTotal := totalPriceSum(baseline)
	updatedTotal := totalPriceSum(updated)
	diff.CostDelta = round2(updatedTotal - baselineTotal)
	if baselineTotal != 0 {
		diff.PercentageCostDelta = round2(diff.CostDelta / baselineTotal * 100)
	}
	return diff
}

func materialKey(item MaterialItem) string {
	return strings.ToLower(strings.TrimSpace(item.Category)) + "|" + strings.ToLower(strings.TrimSpace(item.Name))
}

func totalPriceSum(materials []MaterialItem) float64 {
	total := 0.0
	for _, m := range materials {
		if m.TotalPrice != nil {
			total += *m.TotalPrice
		}
	}
	return total
}
