package takeoff

import (
	"regexp"
	"sort"
	"strconv"
)

// CircuitOverloadWatts is 80% of a 15A/120V branch circuit; aggregate load
// above this flags the circuit as overloaded.
const CircuitOverloadWatts = 1440.0

// UnassignedCircuit buckets components whose names carry no circuit marker.
const UnassignedCircuit = "Unassigned"

var circuitIDRe = regexp.MustCompile(`(?i)(?:circuit|ckt)\s*#?\s*(\d+)`)

// GroupCircuitLoads groups electrical components by the circuit identifier
// embedded in their names and aggregates branch load per circuit. Numbered
// circuits sort first, the Unassigned bucket last.
func GroupCircuitLoads(materials []MaterialItem) []CircuitLoadGroup {
	byID := make(map[string]*CircuitLoadGroup)
	for _, item := range materials {
		id := UnassignedCircuit
		if m := circuitIDRe.FindStringSubmatch(item.Name); m != nil {
			id = "Circuit #" + m[1]
		}
		group, ok := byID[id]
		if !ok {
			group = &CircuitLoadGroup{CircuitID: id, Members: []MaterialItem{}}
			byID[id] = group
		}
		group.Members = append(group.Members, item)
		group.TotalLoadWatts += wattsPerUnit(item.Name) * item.Quantity
	}

	groups := make([]CircuitLoadGroup, 0, len(byID))
	for _, group := range byID {
		group.IsOverloaded = group.TotalLoadWatts > CircuitOverloadWatts
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return circuitSortKey(groups[i].CircuitID) < circuitSortKey(groups[j].CircuitID)
	})
	return groups
}

func circuitSortKey(id string) int {
	if id == UnassignedCircuit {
		return 1 << 30
	}
	if m := circuitIDRe.FindStringSubmatch(id); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1<<30 - 1
}
