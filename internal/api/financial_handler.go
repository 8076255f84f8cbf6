package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
)

// FinancialHandler serves the forensic financial models
type FinancialHandler struct {
	financial services.FinancialService
	export    services.ExportService
	batch     services.BatchService
}

// NewFinancialHandler creates a new financial handler with service injection
func NewFinancialHandler(financial services.FinancialService, export services.ExportService, batch services.BatchService) *FinancialHandler {
	return &FinancialHandler{financial: financial, export: export, batch: batch}
}

// GetSample returns the preloaded sample company
func (h *FinancialHandler) GetSample(c *gin.Context) {
	respondOK(c, http.StatusOK, h.financial.Sample())
}

// Solvency computes the Altman Z-Score
func (h *FinancialHandler) Solvency(c *gin.Context) {
	var in scoring.FinancialInputs
	if !bindJSON(c, &in) {
		return
	}
	result, err := h.financial.Solvency(in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Integrity computes the Beneish M-Score
func (h *FinancialHandler) Integrity(c *gin.Context) {
	var in scoring.FinancialInputs
	if !bindJSON(c, &in) {
		return
	}
	result, err := h.financial.Integrity(in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Quality computes the earnings quality ratio
func (h *FinancialHandler) Quality(c *gin.Context) {
	var in scoring.FinancialInputs
	if !bindJSON(c, &in) {
		return
	}
	result, err := h.financial.Quality(in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Verdict combines three scores into the auditor verdict
func (h *FinancialHandler) Verdict(c *gin.Context) {
	var req models.VerdictRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.financial.Verdict(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Analyze runs every model and returns the full report
func (h *FinancialHandler) Analyze(c *gin.Context) {
	var in scoring.FinancialInputs
	if !bindJSON(c, &in) {
		return
	}
	report, err := h.financial.Analyze(in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}

// Batch screens several companies concurrently. Entries that fail
// validation are reported inline and do not fail the request.
func (h *FinancialHandler) Batch(c *gin.Context) {
	var req models.BatchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.batch.AnalyzeBatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Report runs every model and returns the report as a download in the
// format named by the format query parameter
func (h *FinancialHandler) Report(c *gin.Context) {
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	var in scoring.FinancialInputs
	if !bindJSON(c, &in) {
		return
	}
	report, err := h.financial.Analyze(in)
	if err != nil {
		respondError(c, err)
		return
	}
	data, contentType, err := h.export.Render(report, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="forensic-report-%s.%s"`, report.ReportID, extension(format)))
	c.Data(http.StatusOK, contentType, data)
}

func extension(format services.ExportFormat) string {
	if format == services.FormatMarkdown {
		return "md"
	}
	return string(format)
}
