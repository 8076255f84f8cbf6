package models

import "github.com/ajharbinger/forensic-omniscient/internal/scoring"

// Text formats accepted by the narrative endpoints
const (
	TextFormatPlain = "text"
	TextFormatHTML  = "html"
)

// TextAnalysisRequest submits an MD&A passage for complexity and keyword
// analysis. Empty text is valid and reads as a single empty sentence.
type TextAnalysisRequest struct {
	Text   string `json:"text"`
	Format string `json:"format" binding:"omitempty,oneof=text html"`
}

// KeywordScanRequest submits text for highlighting only
type KeywordScanRequest struct {
	Text   string `json:"text"`
	Format string `json:"format" binding:"omitempty,oneof=text html"`
}

// SimulationRequest selects one option per linguistic dimension
type SimulationRequest struct {
	Tone      string `json:"tone" binding:"required"`
	Structure string `json:"structure" binding:"required"`
	Focus     string `json:"focus" binding:"required"`
}

// VerdictRequest combines three previously computed scores
type VerdictRequest struct {
	Solvency  scoring.ScoreResult `json:"solvency"`
	Integrity scoring.ScoreResult `json:"integrity"`
	Quality   scoring.ScoreResult `json:"quality"`
}
