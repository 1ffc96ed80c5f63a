package takeoff

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// The normalizer is a three-tier state machine over raw reasoning-service
// text: StructuredParse -> Cleanup -> TextFallback, all terminating in
// Reconcile. Each stage returns an explicit (payload, error) pair; fallback
// paths are ordinary branches, never recovered panics. Model output is
// adversarial from the parser's perspective: usually valid JSON, sometimes
// near-valid, occasionally prose. Only a transport failure is an error;
// ugly-but-parseable text always produces a valid result.

// flexFloat tolerates numbers arriving as strings, with currency symbols or
// thousands separators ("$1,200.50"). Unparseable values decode to zero
// rather than failing the whole payload.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	raw = strings.Trim(raw, `"`)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(parsed)
	return nil
}

// flexString tolerates strings arriving as bare numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	*s = flexString(strings.Trim(raw, `"`))
	return nil
}

type rawMaterial struct {
	Category   flexString `json:"category"`
	Name       flexString `json:"name"`
	Quantity   flexFloat  `json:"quantity"`
	Unit       flexString `json:"unit"`
	UnitPrice  *flexFloat `json:"unitPrice"`
	TotalPrice *flexFloat `json:"totalPrice"`
}

type rawLabor struct {
	Task  flexString `json:"task"`
	Hours flexFloat  `json:"hours"`
	Rate  *flexFloat `json:"rate"`
	Cost  *flexFloat `json:"cost"`
}

type rawNote struct {
	Text     flexString `json:"text"`
	Priority flexString `json:"priority"`
}

// rawNotes accepts a plain string, an array of strings, or an array of
// note objects.
type rawNotes []rawNote

func (n *rawNotes) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		if strings.TrimSpace(single) != "" {
			*n = rawNotes{{Text: flexString(single), Priority: "medium"}}
		}
		return nil
	}
	var objects []rawNote
	if err := json.Unmarshal(b, &objects); err == nil {
		*n = rawNotes(objects)
		return nil
	}
	var plain []string
	if err := json.Unmarshal(b, &plain); err == nil {
		out := make(rawNotes, 0, len(plain))
		for _, text := range plain {
			if strings.TrimSpace(text) != "" {
				out = append(out, rawNote{Text: flexString(text), Priority: "medium"})
			}
		}
		*n = out
		return nil
	}
	*n = nil
	return nil
}

type rawPayload struct {
	Materials         []rawMaterial `json:"materials"`
	Labor             []rawLabor    `json:"labor"`
	Notes             rawNotes      `json:"notes"`
	TotalMaterialCost *flexFloat    `json:"totalMaterialCost"`
	TotalLaborCost    *flexFloat    `json:"totalLaborCost"`
	TotalCost         *flexFloat    `json:"totalCost"`
}

// Normalize converts raw reasoning-service text into a structured result for
// the requested trade and level. It never fails: an unusable response yields
// an empty materials list with an explanatory note.
func Normalize(raw string, trade Trade, level AnalysisLevel) AnalysisResult {
	payload, err := structuredParse(raw)
	if err != nil {
		payload, err = cleanupParse(raw)
	}
	if err != nil {
		payload = textFallback(raw)
	}
	return reconcile(payload, raw, trade, level)
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// extractCandidateJSON locates the most likely JSON object in raw text: a
// fenced code block first, then the first balanced {...} span.
func extractCandidateJSON(raw string) (string, bool) {
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	// Unbalanced; hand back the tail and let the parser decide.
	return raw[start:], true
}

func structuredParse(raw string) (rawPayload, error) {
	candidate, ok := extractCandidateJSON(raw)
	if !ok {
		return rawPayload{}, errNoJSONObject
	}
	return parsePayload(candidate)
}

// cleanupParse applies a fixed sequence of textual repairs to near-valid
// JSON and retries the strict parse.
func cleanupParse(raw string) (rawPayload, error) {
	candidate, ok := extractCandidateJSON(raw)
	if !ok {
		return rawPayload{}, errNoJSONObject
	}
	repairs := []func(string) string{
		normalizeQuoteChars,
		stripComments,
		quoteBareKeys,
		stripTrailingCommas,
	}
	for _, repair := range repairs {
		candidate = repair(candidate)
	}
	return parsePayload(candidate)
}

func parsePayload(candidate string) (rawPayload, error) {
	var payload rawPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return rawPayload{}, err
	}
	return payload, nil
}

var (
	errNoJSONObject = jsonStageError("no JSON object found")

	quoteCharReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`,
		"‘", `'`, "’", `'`,
	)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	lineCommentRe   = regexp.MustCompile(`(?m)^\s*//[^\n]*|([,{\[\]}"\s])//[^\n]*`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

type jsonStageError string

func (e jsonStageError) Error() string { return string(e) }

func normalizeQuoteChars(s string) string {
	return quoteCharReplacer.Replace(s)
}

func quoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
}

func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, `$1`)
}

func stripComments(s string) string {
	s = blockCommentRe.ReplaceAllString(s, "")
	return lineCommentRe.ReplaceAllString(s, "$1")
}

// reconcile is the terminal stage for every parse path: it enforces the
// result shape for the requested level, recomputes derived cost fields, and
// attaches the original text for audit. An explicit total found in the
// response always wins over a computed summation.
func reconcile(payload rawPayload, raw string, trade Trade, level AnalysisLevel) AnalysisResult {
	materials := make([]MaterialItem, 0, len(payload.Materials))
	for _, m := range payload.Materials {
		name := strings.TrimSpace(string(m.Name))
		if name == "" {
			continue
		}
		item := MaterialItem{
			Category: strings.TrimSpace(string(m.Category)),
			Name:     name,
			Quantity: clampNonNegative(float64(m.Quantity)),
			Unit:     strings.TrimSpace(string(m.Unit)),
		}
		if item.Category == "" {
			item.Category = InferCategory(item.Name)
		}
		if m.UnitPrice != nil {
			price := clampNonNegative(float64(*m.UnitPrice))
			item.UnitPrice = floatPtr(price)
			item.TotalPrice = floatPtr(round2(item.Quantity * price))
		}
		materials = append(materials, item)
	}

	var labor []LaborItem
	if level == LevelFullEstimate {
		labor = make([]LaborItem, 0, len(payload.Labor))
		for _, l := range payload.Labor {
			task := strings.TrimSpace(string(l.Task))
			if task == "" {
				continue
			}
			item := LaborItem{Task: task, Hours: clampNonNegative(float64(l.Hours))}
			if l.Rate != nil {
				rate := clampNonNegative(float64(*l.Rate))
				item.Rate = floatPtr(rate)
				item.Cost = floatPtr(round2(item.Hours * rate))
			}
			labor = append(labor, item)
		}
	}

	notes := make([]InstallationNote, 0, len(payload.Notes))
	for _, n := range payload.Notes {
		text := strings.TrimSpace(string(n.Text))
		if text == "" {
			continue
		}
		notes = append(notes, InstallationNote{Text: text, Priority: normalizePriority(string(n.Priority))})
	}

	result := AnalysisResult{
		Trade:       trade,
		Level:       level,
		Materials:   materials,
		Labor:       labor,
		Notes:       notes,
		RawResponse: raw,
	}

	if payload.TotalMaterialCost != nil {
		result.TotalMaterialCost = floatPtr(clampNonNegative(float64(*payload.TotalMaterialCost)))
	} else if cost, ok := sumMaterialCost(materials); ok {
		result.TotalMaterialCost = floatPtr(cost)
	}
	if level == LevelFullEstimate {
		if payload.TotalLaborCost != nil {
			result.TotalLaborCost = floatPtr(clampNonNegative(float64(*payload.TotalLaborCost)))
		} else if cost, ok := sumLaborCost(labor); ok {
			result.TotalLaborCost = floatPtr(cost)
		}
	}
	if payload.TotalCost != nil {
		result.TotalCost = floatPtr(clampNonNegative(float64(*payload.TotalCost)))
	}

	if len(result.Materials) == 0 {
		result.Notes = append(result.Notes, InstallationNote{
			Text:     "No materials could be extracted from the analysis response. Upload clearer, higher-resolution blueprint images and try again.",
			Priority: NotePriorityHigh,
		})
	}
	return result
}

func normalizePriority(raw string) NotePriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "critical", "urgent":
		return NotePriorityHigh
	case "low", "info":
		return NotePriorityLow
	default:
		return NotePriorityMedium
	}
}

func sumMaterialCost(materials []MaterialItem) (float64, bool) {
	total := 0.0
	found := false
	for _, m := range materials {
		if m.TotalPrice != nil {
			total += *m.TotalPrice
			found = true
		}
	}
	return round2(total), found
}

func sumLaborCost(labor []LaborItem) (float64, bool) {
	total := 0.0
	found := false
	for _, l := range labor {
		if l.Cost != nil {
			total += *l.Cost
			found = true
		}
	}
	return round2(total), found
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
