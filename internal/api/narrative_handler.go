package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
)

// NarrativeHandler serves the linguistic analyses
type NarrativeHandler struct {
	narrative services.NarrativeService
}

// NewNarrativeHandler creates a new narrative handler with service injection
func NewNarrativeHandler(narrative services.NarrativeService) *NarrativeHandler {
	return &NarrativeHandler{narrative: narrative}
}

// AnalyzeText returns the Fog Index and highlighted text
func (h *NarrativeHandler) AnalyzeText(c *gin.Context) {
	var req models.TextAnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.narrative.AnalyzeText(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// ScanKeywords returns the highlighted text and its flagged spans
func (h *NarrativeHandler) ScanKeywords(c *gin.Context) {
	var req models.KeywordScanRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.narrative.ScanKeywords(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// GetSimulationOptions lists the selectable tone, structure and focus
// options
func (h *NarrativeHandler) GetSimulationOptions(c *gin.Context) {
	respondOK(c, http.StatusOK, h.narrative.Options())
}

// Simulate scores a linguistic profile
func (h *NarrativeHandler) Simulate(c *gin.Context) {
	var req models.SimulationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.narrative.Simulate(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}
