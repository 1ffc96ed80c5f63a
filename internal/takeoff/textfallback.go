package takeoff

import (
	"regexp"
	"strconv"
	"strings"
)

// TextFallback tier: when no JSON can be recovered, mine the prose for a
// materials section, notes and explicit totals. This stage always terminates
// with some materials slice, possibly empty.

var (
	materialsHeadingRe = regexp.MustCompile(`(?i)^\s*(?:#+\s*|\*+\s*)?(?:materials?(?:\s+(?:list|needed|required))?|material\s+list|bill\s+of\s+materials|takeoff)\s*:?\s*(?:\*+)?\s*$`)
	notesHeadingRe     = regexp.MustCompile(`(?i)^\s*(?:#+\s*|\*+\s*)?(?:installation\s+)?notes?\s*:?\s*(?:\*+)?\s*$`)
	laborHeadingRe     = regexp.MustCompile(`(?i)^\s*(?:#+\s*|\*+\s*)?labor\s*:?\s*(?:\*+)?\s*$`)
	anyHeadingRe       = regexp.MustCompile(`(?i)^\s*(?:#+\s*|\*+\s*)?[a-z][a-z /]{2,40}\s*:?\s*(?:\*+)?\s*$`)

	// Ordered line matchers; the first pattern to match a line wins.
	// 1. "Wire Nuts: 1000 ea"
	lineNameQtyUnit = regexp.MustCompile(`^\s*[-*•]?\s*([A-Za-z][A-Za-z0-9 /&#'().-]*?)\s*[:–—-]\s*([\d,]+(?:\.\d+)?)\s*([A-Za-z]+)?\s*\.?\s*$`)
	// 2. "9200 ft of MC Cable" / "1000 ea Wire Nuts"
	lineQtyUnitName = regexp.MustCompile(`^\s*[-*•]?\s*([\d,]+(?:\.\d+)?)\s+([A-Za-z]+)\s+(?:of\s+)?([A-Za-z][A-Za-z0-9 /&#'().-]*?)\s*\.?\s*$`)
	// 3. "Devices - Wire Nuts: 1000 ea"
	lineCategoryNameQty = regexp.MustCompile(`^\s*[-*•]?\s*([A-Za-z][A-Za-z ]*?)\s*[-–—]\s*([A-Za-z][A-Za-z0-9 /&#'().-]*?)\s*:\s*([\d,]+(?:\.\d+)?)\s*([A-Za-z]+)?\s*\.?\s*$`)

	// Explicit totals: "Total MC Cable: 9200 ft", "Total material cost: $4,200.50".
	fieldTotalRe    = regexp.MustCompile(`(?im)^\s*total\s+([A-Za-z][A-Za-z0-9 /-]*?)\s*[:=]\s*\$?\s*([\d,]+(?:\.\d+)?)\s*([A-Za-z]+)?\s*$`)
	materialCostRe  = regexp.MustCompile(`(?i)total\s+materials?\s+cost\s*[:=]?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	laborCostRe     = regexp.MustCompile(`(?i)total\s+labor\s+cost\s*[:=]?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	projectTotalRe  = regexp.MustCompile(`(?i)total\s+(?:project\s+)?cost\s*[:=]?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	highPriorityRe  = regexp.MustCompile(`(?i)^\s*(?:important|warning|caution|critical)\b`)
	bulletPrefixRe  = regexp.MustCompile(`^\s*[-*•]\s*`)
	numberPrefixRe  = regexp.MustCompile(`^\s*\d+[.)]\s+`)
)

func textFallback(raw string) rawPayload {
	lines := strings.Split(raw, "\n")

	var payload rawPayload
	payload.Materials = parseMaterialLines(materialSection(lines))
	payload.Notes = parseNoteLines(noteSection(lines))
	applyFieldTotals(&payload, raw)

	if m := materialCostRe.FindStringSubmatch(raw); m != nil {
		v := flexFloat(parseAmount(m[1]))
		payload.TotalMaterialCost = &v
	}
	if m := laborCostRe.FindStringSubmatch(raw); m != nil {
		v := flexFloat(parseAmount(m[1]))
		payload.TotalLaborCost = &v
	}
	if m := projectTotalRe.FindStringSubmatch(raw); m != nil {
		v := flexFloat(parseAmount(m[1]))
		payload.TotalCost = &v
	}
	return payload
}

// materialSection returns the lines under a materials heading, bounded by the
// next heading. Without a heading, every line is a candidate.
func materialSection(lines []string) []string {
	start := -1
	for i, line := range lines {
		if materialsHeadingRe.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return lines
	}
	for end := start; end < len(lines); end++ {
		line := lines[end]
		if notesHeadingRe.MatchString(line) || laborHeadingRe.MatchString(line) || anyHeadingRe.MatchString(line) {
			return lines[start:end]
		}
	}
	return lines[start:]
}

func noteSection(lines []string) []string {
	start := -1
	for i, line := range lines {
		if notesHeadingRe.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}
	for end := start; end < len(lines); end++ {
		if anyHeadingRe.MatchString(lines[end]) {
			return lines[start:end]
		}
	}
	return lines[start:]
}

func parseMaterialLines(lines []string) []rawMaterial {
	materials := make([]rawMaterial, 0, len(lines))
	for _, line := range lines {
		line = numberPrefixRe.ReplaceAllString(line, "")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), "total") {
			continue
		}
		if item, ok := matchMaterialLine(line); ok {
			materials = append(materials, item)
		}
	}
	return materials
}

func matchMaterialLine(line string) (rawMaterial, bool) {
	if m := lineCategoryNameQty.FindStringSubmatch(line); m != nil && looksLikeCategory(m[1]) {
		return rawMaterial{
			Category: flexString(strings.TrimSpace(m[1])),
			Name:     flexString(strings.TrimSpace(m[2])),
			Quantity: flexFloat(parseAmount(m[3])),
			Unit:     flexString(strings.TrimSpace(m[4])),
		}, true
	}
	if m := lineNameQtyUnit.FindStringSubmatch(line); m != nil {
		return rawMaterial{
			Name:     flexString(strings.TrimSpace(m[1])),
			Quantity: flexFloat(parseAmount(m[2])),
			Unit:     flexString(strings.TrimSpace(m[3])),
		}, true
	}
	if m := lineQtyUnitName.FindStringSubmatch(line); m != nil {
		return rawMaterial{
			Name:     flexString(strings.TrimSpace(m[3])),
			Quantity: flexFloat(parseAmount(m[1])),
			Unit:     flexString(strings.TrimSpace(m[2])),
		}, true
	}
	return rawMaterial{}, false
}

// looksLikeCategory keeps the category-name pattern from swallowing plain
// hyphenated names ("NM-B Cable: 400 ft").
func looksLikeCategory(candidate string) bool {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" || len(trimmed) < 3 {
		return false
	}
	return InferCategory(trimmed) != defaultCategory || strings.Contains(trimmed, " ")
}

func parseNoteLines(lines []string) rawNotes {
	notes := make(rawNotes, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
		if text == "" {
			continue
		}
		priority := flexString("medium")
		if highPriorityRe.MatchString(text) {
			priority = "high"
		}
		notes = append(notes, rawNote{Text: flexString(text), Priority: priority})
	}
	return notes
}

// applyFieldTotals resolves category-specific totals ("Total MC Cable: 9200
// ft"). An explicit total overrides the matched component's summed quantity;
// totals with no matching component become items of their own.
func applyFieldTotals(payload *rawPayload, raw string) {
	for _, m := range fieldTotalRe.FindAllStringSubmatch(raw, -1) {
		name := strings.TrimSpace(m[1])
		lower := strings.ToLower(name)
		if strings.Contains(lower, "cost") || strings.Contains(lower, "labor") || strings.Contains(lower, "price") {
			continue
		}
		quantity := flexFloat(parseAmount(m[2]))
		unit := flexString(strings.TrimSpace(m[3]))
		matched := false
		for i := range payload.Materials {
			itemName := strings.ToLower(string(payload.Materials[i].Name))
			if strings.Contains(itemName, lower) || strings.Contains(lower, itemName) {
				payload.Materials[i].Quantity = quantity
				if unit != "" {
					payload.Materials[i].Unit = unit
				}
				matched = true
				break
			}
		}
		if !matched {
			payload.Materials = append(payload.Materials, rawMaterial{
				Name:     flexString(name),
				Quantity: quantity,
				Unit:     unit,
			})
		}
	}
}

func parseAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}
