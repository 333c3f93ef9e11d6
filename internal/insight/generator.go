// Package insight calls an external generative-text service to turn a
// station summary into free-text recommendations. The service is treated as
// an opaque collaborator: one request, one response, no streaming.
package insight

import (
	"context"

	"stationpro-api/internal/reports"
)

// Generator produces a free-text analysis for a station summary, or fails.
// Failures are never fatal to the rest of the system; the caller converts
// them into a static message.
type Generator interface {
	Generate(ctx context.Context, summary reports.StationSummary) (string, error)
}
