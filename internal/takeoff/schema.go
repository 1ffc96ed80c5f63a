package takeoff

import "encoding/json"

// BuildOutputSchema returns the declarative shape the reasoning service is
// asked to fill. Materials are always required; cost fields are added for
// anything beyond a plain takeoff; labor fields only for full estimates.
func BuildOutputSchema(level AnalysisLevel) map[string]any {
	material := map[string]any{
		"category": "string",
		"name":     "string",
		"quantity": "number (>= 0)",
		"unit":     "string (ea, ft, sqft, box, roll, ...)",
	}
	schema := map[string]any{
		"materials": []any{material},
		"notes": []any{map[string]any{
			"text":     "string",
			"priority": "high | medium | low",
		}},
	}

	if level != LevelTakeoff {
		material["unitPrice"] = "number (USD)"
		material["totalPrice"] = "number (quantity * unitPrice)"
		schema["totalMaterialCost"] = "number (USD)"
		schema["totalCost"] = "number (USD)"
	}
	if level == LevelFullEstimate {
		schema["labor"] = []any{map[string]any{
			"task":  "string",
			"hours": "number (>= 0)",
			"rate":  "number (USD per hour)",
			"cost":  "number (hours * rate)",
		}}
		schema["totalLaborCost"] = "number (USD)"
	}
	return schema
}

// SchemaJSON renders the output schema for embedding in a prompt.
func SchemaJSON(level AnalysisLevel) string {
	payload, err := json.MarshalIndent(BuildOutputSchema(level), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(payload)
}
