package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/metrics"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
)

// Batch defaults used when the configured values are not positive
const (
	DefaultBatchConcurrency = 8
	DefaultMaxBatchSize     = 100
)

// BatchEntry is the outcome for one submitted company. Exactly one of
// Report and Error is set.
type BatchEntry struct {
	Index  int             `json:"index"`
	Name   string          `json:"name"`
	Ticker string          `json:"ticker,omitempty"`
	Report *AnalysisReport `json:"report,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// BatchStats summarizes one screening run
type BatchStats struct {
	StartTime time.Time                    `json:"start_time"`
	EndTime   time.Time                    `json:"end_time"`
	Duration  time.Duration                `json:"duration"`
	Submitted int                          `json:"submitted"`
	Succeeded int                          `json:"succeeded"`
	Failed    int                          `json:"failed"`
	Verdicts  map[scoring.VerdictLevel]int `json:"verdicts"`
}

// Summary formats the counters for logs
func (s *BatchStats) Summary() string {
	return fmt.Sprintf("submitted=%d, succeeded=%d, failed=%d, critical=%d, fraud=%d, warning=%d, safe=%d, duration=%v",
		s.Submitted, s.Succeeded, s.Failed,
		s.Verdicts[scoring.VerdictCritical], s.Verdicts[scoring.VerdictFraud],
		s.Verdicts[scoring.VerdictWarning], s.Verdicts[scoring.VerdictSafe],
		s.Duration.Round(time.Millisecond))
}

// BatchResult holds one entry per submitted company, in submission order
type BatchResult struct {
	Stats   BatchStats   `json:"stats"`
	Entries []BatchEntry `json:"entries"`
}

// BatchService screens many companies concurrently
type BatchService interface {
	AnalyzeBatch(ctx context.Context, req models.BatchRequest) (*BatchResult, error)
}

type batchService struct {
	financial     FinancialService
	validate      *validator.Validate
	maxConcurrent int
	maxCompanies  int
	log           logger.Logger
	now           func() time.Time
}

// NewBatchService creates a batch screener that runs at most maxConcurrent
// analyses at once and accepts at most maxCompanies per request.
func NewBatchService(financial FinancialService, v *validator.Validate, maxConcurrent, maxCompanies int, log logger.Logger) BatchService {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultBatchConcurrency
	}
	if maxCompanies <= 0 {
		maxCompanies = DefaultMaxBatchSize
	}
	return &batchService{
		financial:     financial,
		validate:      v,
		maxConcurrent: maxConcurrent,
		maxCompanies:  maxCompanies,
		log:           log,
		now:           time.Now,
	}
}

// AnalyzeBatch runs the full analysis for every company. A company that
// fails validation is reported in its entry and the rest of the batch
// continues. Cancelling ctx stops scheduling new companies and fails the
// whole request.
func (s *batchService) AnalyzeBatch(ctx context.Context, req models.BatchRequest) (*BatchResult, error) {
	defer metrics.ObserveAnalysis(metrics.KindBatch, time.Now())

	n := len(req.Companies)
	if n == 0 {
		return nil, apperrors.ValidationError("no companies submitted", nil).WithOperation("AnalyzeBatch")
	}
	if n > s.maxCompanies {
		return nil, apperrors.ValidationError("too many companies", nil).
			WithOperation("AnalyzeBatch").
			WithDetails(fmt.Sprintf("%d submitted, limit is %d", n, s.maxCompanies))
	}

	stats := BatchStats{
		StartTime: s.now(),
		Submitted: n,
		Verdicts:  make(map[scoring.VerdictLevel]int),
	}
	entries := make([]BatchEntry, n)

	sem := semaphore.NewWeighted(int64(s.maxConcurrent))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, company := range req.Companies {
		entries[i] = BatchEntry{Index: i, Name: company.DisplayName(), Ticker: company.Ticker}

		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, apperrors.ServiceError("batch cancelled", err).WithOperation("AnalyzeBatch")
		}

		wg.Add(1)
		go func(i int, company models.Company) {
			defer wg.Done()
			defer sem.Release(1)

			report, err := s.analyze(company)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				entries[i].Error = entryError(err)
				stats.Failed++
				return
			}
			entries[i].Report = report
			stats.Succeeded++
			stats.Verdicts[report.Verdict.Level]++
		}(i, company)
	}

	wg.Wait()
	stats.EndTime = s.now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	s.log.Info("batch screening complete", "summary", stats.Summary())
	return &BatchResult{Stats: stats, Entries: entries}, nil
}

func (s *batchService) analyze(company models.Company) (*AnalysisReport, error) {
	if err := validateStruct(s.validate, company, "AnalyzeBatch"); err != nil {
		return nil, err
	}
	return s.financial.Analyze(company.Inputs)
}

// entryError is the client-safe description of a failed entry
func entryError(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || apperrors.HTTPStatus(err) >= 500 {
		return "analysis failed"
	}
	if appErr.Details != "" {
		return appErr.Message + ": " + appErr.Details
	}
	return appErr.Message
}
