package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ajharbinger/forensic-omniscient/internal/cache"
	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/narrative"
	"github.com/ajharbinger/forensic-omniscient/internal/repository"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
	"github.com/ajharbinger/forensic-omniscient/internal/validation"
	"github.com/ajharbinger/forensic-omniscient/pkg/config"
)

// Services contains all application services. Auth is nil when no account
// store is configured.
type Services struct {
	Financial FinancialService
	Narrative NarrativeService
	Export    ExportService
	Batch     BatchService
	Auth      AuthService
}

// FinancialService runs the forensic financial models
type FinancialService interface {
	Sample() scoring.FinancialInputs
	Solvency(in scoring.FinancialInputs) (scoring.SolvencyResult, error)
	Integrity(in scoring.FinancialInputs) (scoring.IntegrityResult, error)
	Quality(in scoring.FinancialInputs) (scoring.ScoreResult, error)
	Verdict(req models.VerdictRequest) (scoring.VerdictResult, error)
	Analyze(in scoring.FinancialInputs) (*AnalysisReport, error)
}

// NarrativeService runs the linguistic analyses
type NarrativeService interface {
	AnalyzeText(req models.TextAnalysisRequest) (narrative.TextAnalysisResult, error)
	ScanKeywords(req models.KeywordScanRequest) (narrative.Annotation, error)
	Simulate(req models.SimulationRequest) (narrative.SimulationResult, error)
	Options() narrative.SimulationOptions
}

// ExportService renders analysis reports for download
type ExportService interface {
	Render(report *AnalysisReport, format ExportFormat) ([]byte, string, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	RefreshToken(ctx context.Context, token string) (*models.AuthResponse, error)
}

// NewServices wires the analysis services and, when repos is non-nil, the
// auth service.
func NewServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	reports, err := cache.New[scoring.Report](cfg.CacheEntries, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	v := validation.New()
	financial := NewFinancialService(v, reports, log)
	s := &Services{
		Financial: financial,
		Narrative: NewNarrativeService(cfg.MaxTextLength, log),
		Export:    NewExportService(),
		Batch:     NewBatchService(financial, v, cfg.BatchConcurrency, cfg.MaxBatchSize, log),
	}
	if repos != nil {
		s.Auth = NewAuthService(repos, cfg.JWTSecret)
	}
	return s, nil
}

// validateStruct runs v over s and converts failures into a validation
// AppError listing the offending fields.
func validateStruct(v *validator.Validate, s interface{}, op string) error {
	if err := v.Struct(s); err != nil {
		return validationFailure(err, op)
	}
	return nil
}
