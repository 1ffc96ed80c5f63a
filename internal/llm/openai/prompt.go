package openai

import (
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"takeoff-backend/internal/llm"
)

// Message represents an OpenAI chat message with multimodal content.
type Message struct {
	Role    string
	Content []ContentPart
}

// ContentPart is one segment of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image reference; here always a base64 data URL.
type ImageURL struct {
	URL string `json:"url"`
}

const (
	systemPromptStrict  = "You are a construction takeoff engine. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."
	systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."
)

// BuildPrompt creates the chat messages for a blueprint analysis request.
func BuildPrompt(input llm.AnalyzeInput) []Message {
	return []Message{
		{Role: "system", Content: textParts(systemPromptStrict)},
		{Role: "developer", Content: textParts(buildDeveloperPrompt(input))},
		{Role: "user", Content: buildUserParts(input)},
	}
}

func buildFixPrompt(input llm.AnalyzeInput, raw string) []Message {
	return []Message{
		{Role: "system", Content: textParts(systemPromptFixJSON)},
		{Role: "developer", Content: textParts(buildDeveloperPrompt(input))},
		{Role: "user", Content: textParts(fixUserPrompt(raw))},
	}
}

func buildDeveloperPrompt(input llm.AnalyzeInput) string {
	instructions, ok := llm.TradeInstructions(input.Trade)
	if !ok {
		log.Printf("unknown trade %q, using generic instructions", input.Trade)
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(levelDirective(input.Level))
	if strings.TrimSpace(input.ProjectType) != "" {
		fmt.Fprintf(&b, "\n\nProject type: %s.", input.ProjectType)
	}
	b.WriteString("\n\nRespond with a single JSON object matching this schema exactly:\n")
	b.WriteString(input.Schema)
	return b.String()
}

func levelDirective(level string) string {
	switch level {
	case "fullEstimate":
		return "Provide materials with unit and total prices, labor tasks with hours, rates and costs, and totalMaterialCost, totalLaborCost and totalCost."
	case "costEstimate":
		return "Provide materials with unit and total prices, plus totalMaterialCost and totalCost. Do not include labor."
	default:
		return "Provide materials and quantities only. Do not include prices or labor."
	}
}

func buildUserParts(input llm.AnalyzeInput) []ContentPart {
	parts := make([]ContentPart, 0, len(input.Images)+2)
	parts = append(parts, ContentPart{
		Type: "text",
		Text: fmt.Sprintf("Analyze these %d blueprint image(s) and produce the takeoff.", len(input.Images)),
	})
	if strings.TrimSpace(input.SheetText) != "" {
		parts = append(parts, ContentPart{
			Type: "text",
			Text: "Text extracted from the blueprint PDF sheets (schedules, legends, keyed notes):\n" + input.SheetText,
		})
	}
	for _, img := range input.Images {
		parts = append(parts, ContentPart{
			Type:     "image_url",
			ImageURL: &ImageURL{URL: dataURL(img.ContentType, img.Data)},
		})
	}
	return parts
}

func fixUserPrompt(raw string) string {
	return fmt.Sprintf("Fix this JSON to match the schema exactly. Output JSON only:\n%s", raw)
}

func textParts(text string) []ContentPart {
	return []ContentPart{{Type: "text", Text: text}}
}

func dataURL(contentType string, data []byte) string {
	if strings.TrimSpace(contentType) == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
