package takeoff

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"takeoff-backend/internal/extract"
	"takeoff-backend/internal/llm"
	"takeoff-backend/internal/preprocess"
	"takeoff-backend/internal/shared/telemetry"
)

// preprocessConcurrency bounds the per-request image preprocessing fan-out.
const preprocessConcurrency = 4

// Service runs the blueprint takeoff pipeline: fingerprint cache, image
// preparation, the upstream reasoning call with retries, normalization,
// estimation and validation.
type Service struct {
	LLM        llm.Client
	Cache      *ResultCache
	Engine     *Engine
	Timeout    time.Duration
	MaxRetries int
}

// NewService wires a pipeline with default timeout and retry policy.
func NewService(client llm.Client, cache *ResultCache, engine *Engine) *Service {
	if cache == nil {
		cache = NewResultCache(DefaultCacheTTL)
	}
	if engine == nil {
		engine = NewEngine(DefaultRates())
	}
	return &Service{
		LLM:        client,
		Cache:      cache,
		Engine:     engine,
		Timeout:    DefaultUpstreamTimeout,
		MaxRetries: DefaultMaxRetries,
	}
}

// Analyze runs one blueprint analysis end to end. On upstream failure after
// retries the returned result has Status failed and an actionable
// ErrorMessage, alongside the error itself. Nothing is cached on failure or
// cancellation.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	trade := NormalizeTrade(string(req.Trade))
	level := NormalizeLevel(string(req.Level))
	now := time.Now().UTC()

	if len(req.Images) == 0 {
		completed := now
		return AnalysisResult{
			ID:           uuid.NewString(),
			Trade:        trade,
			Level:        level,
			Materials:    []MaterialItem{},
			Notes:        []InstallationNote{},
			Status:       StatusFailed,
			ErrorCode:    ErrorCodeValidation,
			ErrorMessage: ErrNoImages.Error(),
			CreatedAt:    now,
			CompletedAt:  &completed,
		}, ErrNoImages
	}

	key := CacheKey(req)
	if cached, ok := s.Cache.Get(key); ok {
		telemetry.Info("analysis cache hit", map[string]any{
			"key":   key[:12],
			"trade": string(trade),
			"level": string(level),
		})
		return cached, nil
	}

	result := AnalysisResult{
		ID:        uuid.NewString(),
		Trade:     trade,
		Level:     level,
		Status:    StatusProcessing,
		CreatedAt: now,
	}

	parts, sheetText := s.prepareInputs(ctx, req)
	input := llm.AnalyzeInput{
		Images:      parts,
		Trade:       string(trade),
		Level:       string(level),
		ProjectType: req.ProjectType,
		SheetText:   sheetText,
		Schema:      SchemaJSON(level),
	}

	raw, attempts, err := callWithRetry(ctx, s.LLM, input, s.timeout(), s.maxRetries())
	if err != nil {
		telemetry.Error("analysis failed", map[string]any{
			"analysis_id": result.ID,
			"attempts":    attempts,
			"error":       sanitizeError(err),
		})
		completed := time.Now().UTC()
		result.Status = StatusFailed
		result.ErrorCode = errorCodeFor(err)
		result.ErrorMessage = failureMessage(err, attempts)
		result.Materials = []MaterialItem{}
		result.Notes = []InstallationNote{}
		result.CompletedAt = &completed
		return result, err
	}

	normalized := Normalize(raw, trade, level)
	normalized.ID = result.ID
	normalized.CreatedAt = result.CreatedAt
	s.Engine.Enrich(&normalized)
	normalized.Findings = Validate(normalized.Materials)

	completed := time.Now().UTC()
	normalized.Status = StatusCompleted
	normalized.CompletedAt = &completed

	s.Cache.Put(key, normalized)
	telemetry.Info("analysis completed", map[string]any{
		"analysis_id": normalized.ID,
		"trade":       string(trade),
		"level":       string(level),
		"attempts":    attempts,
		"materials":   len(normalized.Materials),
	})
	return normalized, nil
}

// prepareInputs splits the upload into image parts and PDF sheet text.
// Images preprocess concurrently; any per-image failure falls back to the
// original bytes. PDF sheets contribute extracted text instead of pixels.
func (s *Service) prepareInputs(ctx context.Context, req AnalysisRequest) ([]llm.ImagePart, string) {
	type prepared struct {
		part  llm.ImagePart
		sheet string
		skip  bool
	}
	out := make([]prepared, len(req.Images))

	var g errgroup.Group
	g.SetLimit(preprocessConcurrency)
	for i, img := range req.Images {
		i, img := i, img
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i] = prepared{part: llm.ImagePart{Name: img.Name, ContentType: img.ContentType, Data: img.Data}}
				return nil
			}
			if extract.IsPDF(img.ContentType, img.Name, img.Data) {
				text, err := extract.SheetText(ctx, img.Data)
				if err != nil {
					telemetry.Warn("pdf sheet text extraction failed", map[string]any{
						"image": img.Name,
						"error": sanitizeError(err),
					})
					out[i] = prepared{skip: true}
					return nil
				}
				out[i] = prepared{sheet: text, skip: true}
				return nil
			}
			data, contentType, err := preprocess.Image(img.Data)
			if err != nil {
				telemetry.Warn("image preprocessing failed, using original bytes", map[string]any{
					"image": img.Name,
					"error": sanitizeError(err),
				})
				out[i] = prepared{part: llm.ImagePart{Name: img.Name, ContentType: img.ContentType, Data: img.Data}}
				return nil
			}
			out[i] = prepared{part: llm.ImagePart{Name: img.Name, ContentType: contentType, Data: data}}
			return nil
		})
	}
	_ = g.Wait()

	parts := make([]llm.ImagePart, 0, len(out))
	var sheets []string
	for _, p := range out {
		if p.sheet != "" {
			sheets = append(sheets, p.sheet)
		}
		if !p.skip {
			parts = append(parts, p.part)
		}
	}
	return parts, joinSheets(sheets)
}

func joinSheets(sheets []string) string {
	switch len(sheets) {
	case 0:
		return ""
	case 1:
		return sheets[0]
	}
	joined := sheets[0]
	for _, sheet := range sheets[1:] {
		joined += "\n\n---\n\n" + sheet
	}
	return joined
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultUpstreamTimeout
}

func (s *Service) maxRetries() int {
	if s.MaxRetries >= 0 {
		return s.MaxRetries
	}
	return DefaultMaxRetries
}

func failureMessage(err error, attempts int) string {
	if attempts > 1 {
		return fmt.Sprintf("blueprint analysis did not complete after %d attempts (%s); try again in a few minutes with clear, well-lit blueprint photos", attempts, sanitizeError(err))
	}
	return fmt.Sprintf("blueprint analysis failed (%s); try again with clear, well-lit blueprint photos", sanitizeError(err))
}
