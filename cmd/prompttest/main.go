package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"takeoff-backend/internal/config"
	"takeoff-backend/internal/llm"
	openai "takeoff-backend/internal/llm/openai"
	"takeoff-backend/internal/shared/util"
	"takeoff-backend/internal/takeoff"
)

func main() {
	cfg := config.Load()

	trade := flag.String("trade", "electrical", "Trade (electrical, plumbing, carpentry, hvac, drywall, flooring, roofing, sheathing, acoustics, other)")
	level := flag.String("level", "takeoff", "Analysis level (takeoff, costEstimate, fullEstimate)")
	projectType := flag.String("project", "", "Project type (optional)")
	imagePaths := flag.String("images", "", "Comma-separated blueprint image/PDF paths; omit to print the prompt contract only")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	flag.Parse()

	normalizedTrade := takeoff.NormalizeTrade(*trade)
	normalizedLevel := takeoff.NormalizeLevel(*level)

	if strings.TrimSpace(*imagePaths) == "" {
		printContract(normalizedTrade, normalizedLevel)
		return
	}

	images, err := loadImages(*imagePaths)
	if err != nil {
		exitErr(err.Error())
	}

	client, err := buildClient(*provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	service := takeoff.NewService(client, takeoff.NewResultCache(cfg.CacheTTL), takeoff.NewEngine(takeoff.Rates{
		TaxRate:           cfg.TaxRate,
		OverheadRate:      cfg.OverheadRate,
		ProfitRate:        cfg.ProfitRate,
		LaborHourlyRate:   cfg.LaborHourlyRate,
		LaborOverheadRate: cfg.LaborOverheadRate,
	}))
	service.Timeout = cfg.UpstreamTimeout
	service.MaxRetries = cfg.MaxRetries

	result, err := service.Analyze(context.Background(), takeoff.AnalysisRequest{
		Images:      images,
		Trade:       normalizedTrade,
		Level:       normalizedLevel,
		ProjectType: *projectType,
	})
	if err != nil {
		exitErr(fmt.Sprintf("analyze: %v (%s)", err, result.ErrorMessage))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	fmt.Println(string(pretty))
}

func printContract(trade takeoff.Trade, level takeoff.AnalysisLevel) {
	instructions, _ := llm.TradeInstructions(string(trade))
	fmt.Printf("# Trade instructions (%s)\n\n%s\n\n# Output schema (%s)\n\n%s\n", trade, instructions, level, takeoff.SchemaJSON(level))
}

func loadImages(raw string) ([]takeoff.ImageInput, error) {
	paths := strings.Split(raw, ",")
	images := make([]takeoff.ImageInput, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %v", path, err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "image/jpeg"
		}
		name, err := util.SanitizeFileName(filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("image name %s: %v", path, err)
		}
		images = append(images, takeoff.ImageInput{
			Name:        name,
			ContentType: contentType,
			Data:        data,
		})
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no readable images in %q", raw)
	}
	return images, nil
}

func buildClient(provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
	os.Exit(1)
}
