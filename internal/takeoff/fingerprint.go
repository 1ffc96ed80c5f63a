package takeoff

import (
	"bytes"
	"fmt"

	"takeoff-backend/internal/shared/util"
)

// imageSampleBytes bounds how much of each image feeds the fingerprint.
// Whole-file hashing is deliberately avoided: a wrong hit only returns an
// equivalent stale result, so cheap beats exact here.
const imageSampleBytes = 100

// CacheKey derives a deterministic fingerprint for an analysis request from
// its parameters and a cheap sample of each image.
func CacheKey(req AnalysisRequest) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s|%s|%s", req.Trade, req.Level, req.ProjectType)
	for _, img := range req.Images {
		sample := img.Data
		if len(sample) > imageSampleBytes {
			sample = sample[:imageSampleBytes]
		}
		fmt.Fprintf(&buf, "|%s|%d|", img.Name, len(img.Data))
		buf.Write(sample)
	}
	return util.SHA256Hex(buf.Bytes())
}
