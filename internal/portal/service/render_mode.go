package service

import "ratemynus-portal/internal/entity"

// RenderMode selects which body a module page shows.
type RenderMode string

const (
	RenderModeNotFound     RenderMode = "not_found"
	RenderModeNotAnalyzed  RenderMode = "not_analyzed"
	RenderModeInsufficient RenderMode = "insufficient"
	RenderModeFull         RenderMode = "full"
)

// SelectRenderMode picks the body for a loaded module. The insufficient
// flag is decided by the sentiment pipeline and taken as is; the comment
// count is never consulted here.
func SelectRenderMode(m *entity.Module) RenderMode {
	switch {
	case m == nil:
		return RenderModeNotFound
	case m.SentimentData == nil:
		return RenderModeNotAnalyzed
	case m.SentimentData.InsufficientData:
		return RenderModeInsufficient
	default:
		return RenderModeFull
	}
}
