package services

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ajharbinger/forensic-omniscient/internal/cache"
	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/metrics"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
	"github.com/ajharbinger/forensic-omniscient/internal/validation"
)

const reportCacheNamespace = "report"

// AnalysisReport is a scoring.Report stamped with an id for one request
type AnalysisReport struct {
	ReportID    string                  `json:"report_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Inputs      scoring.FinancialInputs `json:"inputs"`
	scoring.Report
}

type financialService struct {
	validate *validator.Validate
	reports  *cache.Cache[scoring.Report]
	log      logger.Logger
	now      func() time.Time
}

// NewFinancialService creates the financial analysis service. reports may
// be nil to disable caching.
func NewFinancialService(v *validator.Validate, reports *cache.Cache[scoring.Report], log logger.Logger) FinancialService {
	return &financialService{
		validate: v,
		reports:  reports,
		log:      log,
		now:      time.Now,
	}
}

func (s *financialService) Sample() scoring.FinancialInputs {
	return scoring.SampleInputs()
}

func (s *financialService) Solvency(in scoring.FinancialInputs) (scoring.SolvencyResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindSolvency, time.Now())
	if err := validateStruct(s.validate, in, "Solvency"); err != nil {
		return scoring.SolvencyResult{}, err
	}
	return scoring.ComputeSolvency(in), nil
}

func (s *financialService) Integrity(in scoring.FinancialInputs) (scoring.IntegrityResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindIntegrity, time.Now())
	if err := validateStruct(s.validate, in, "Integrity"); err != nil {
		return scoring.IntegrityResult{}, err
	}
	return scoring.ComputeIntegrity(in), nil
}

func (s *financialService) Quality(in scoring.FinancialInputs) (scoring.ScoreResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindQuality, time.Now())
	if err := validateStruct(s.validate, in, "Quality"); err != nil {
		return scoring.ScoreResult{}, err
	}
	return scoring.ComputeQuality(in), nil
}

func (s *financialService) Verdict(req models.VerdictRequest) (scoring.VerdictResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindVerdict, time.Now())
	if err := validateStruct(s.validate, req, "Verdict"); err != nil {
		return scoring.VerdictResult{}, err
	}
	verdict := scoring.ComputeVerdict(req.Solvency, req.Integrity, req.Quality)
	metrics.RecordVerdict(string(verdict.Level))
	return verdict, nil
}

// Analyze evaluates every model and stamps the result. Identical inputs are
// served from the report cache.
func (s *financialService) Analyze(in scoring.FinancialInputs) (*AnalysisReport, error) {
	defer metrics.ObserveAnalysis(metrics.KindReport, time.Now())
	if err := validateStruct(s.validate, in, "Analyze"); err != nil {
		return nil, err
	}

	report, err := s.evaluate(in)
	if err != nil {
		return nil, err
	}
	metrics.RecordVerdict(string(report.Verdict.Level))

	out := &AnalysisReport{
		ReportID:    uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Inputs:      in,
		Report:      report,
	}
	s.log.Debug("financial analysis complete",
		"report_id", out.ReportID,
		"verdict", report.Verdict.Level,
		"z_score", report.Solvency.Value,
		"m_score", report.Integrity.Value,
		"q_score", report.Quality.Value,
	)
	return out, nil
}

func (s *financialService) evaluate(in scoring.FinancialInputs) (scoring.Report, error) {
	if s.reports == nil {
		return scoring.Evaluate(in), nil
	}

	key, err := cache.Key(reportCacheNamespace, in)
	if err != nil {
		return scoring.Report{}, apperrors.InternalError("failed to derive cache key", err).WithOperation("Analyze")
	}
	if report, ok := s.reports.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return detach(report), nil
	}
	metrics.RecordCacheLookup(false)

	report := scoring.Evaluate(in)
	s.reports.Set(key, detach(report))
	return report, nil
}

// detach copies the slices of a report so cached entries never share
// backing arrays with a caller
func detach(report scoring.Report) scoring.Report {
	report.Radar = append([]scoring.RadarPoint(nil), report.Radar...)
	return report
}

func validationFailure(err error, op string) error {
	fields := validation.Describe(err)
	if len(fields) == 0 {
		return apperrors.ValidationError("invalid input", err).WithOperation(op)
	}
	return apperrors.ValidationError("invalid input", err).
		WithOperation(op).
		WithDetails(strings.Join(fields, ", "))
}
