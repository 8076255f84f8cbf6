package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/metrics"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/narrative"
)

type narrativeService struct {
	maxTextLength int
	log           logger.Logger
}

// NewNarrativeService creates the linguistic analysis service. Texts longer
// than maxTextLength runes are rejected.
func NewNarrativeService(maxTextLength int, log logger.Logger) NarrativeService {
	return &narrativeService{maxTextLength: maxTextLength, log: log}
}

func (s *narrativeService) AnalyzeText(req models.TextAnalysisRequest) (narrative.TextAnalysisResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindText, time.Now())

	text, err := s.resolveText(req.Text, req.Format, "AnalyzeText")
	if err != nil {
		return narrative.TextAnalysisResult{}, err
	}
	result := narrative.AnalyzeText(text)
	metrics.RecordReadability(string(result.Verdict))
	return result, nil
}

func (s *narrativeService) ScanKeywords(req models.KeywordScanRequest) (narrative.Annotation, error) {
	defer metrics.ObserveAnalysis(metrics.KindKeywords, time.Now())

	text, err := s.resolveText(req.Text, req.Format, "ScanKeywords")
	if err != nil {
		return narrative.Annotation{}, err
	}
	return narrative.Annotate(text), nil
}

// Simulate scores the selected profile. Options outside the catalog are
// scored like any other string and logged.
func (s *narrativeService) Simulate(req models.SimulationRequest) (narrative.SimulationResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindSimulation, time.Now())

	opts := narrative.Options()
	for field, value := range map[string]string{
		narrative.FieldTone:      req.Tone,
		narrative.FieldStructure: req.Structure,
		narrative.FieldFocus:     req.Focus,
	} {
		if !opts.Contains(field, value) {
			s.log.Debug("simulation option outside catalog", "field", field, "option", value)
		}
	}

	result := narrative.ScoreSimulation(req.Tone, req.Structure, req.Focus)
	metrics.RecordSimulation(string(result.Level))
	return result, nil
}

func (s *narrativeService) Options() narrative.SimulationOptions {
	return narrative.Options()
}

// resolveText applies the length limit and converts HTML input to plain
// text.
func (s *narrativeService) resolveText(text, format, op string) (string, error) {
	if n := utf8.RuneCountInString(text); n > s.maxTextLength {
		return "", apperrors.ValidationError("text too long", nil).
			WithOperation(op).
			WithDetails(fmt.Sprintf("text has %d characters, limit is %d", n, s.maxTextLength))
	}
	if !utf8.ValidString(text) {
		return "", apperrors.InvalidInput("text is not valid UTF-8", nil).WithOperation(op)
	}

	switch format {
	case "", models.TextFormatPlain:
		return text, nil
	case models.TextFormatHTML:
		plain, err := narrative.ExtractText(strings.NewReader(text))
		if err != nil {
			return "", apperrors.InvalidInput("failed to read HTML", err).WithOperation(op)
		}
		return plain, nil
	default:
		return "", apperrors.InvalidInput("unsupported text format", nil).
			WithOperation(op).
			WithDetails(fmt.Sprintf("format %q, expected text or html", format))
	}
}
