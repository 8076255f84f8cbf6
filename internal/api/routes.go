package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajharbinger/forensic-omniscient/internal/auth"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
	"github.com/ajharbinger/forensic-omniscient/internal/validation"
	"github.com/ajharbinger/forensic-omniscient/pkg/config"
)

var registerValidators sync.Once

// Dependencies are the collaborators the routes are built from. DB may be
// nil.
type Dependencies struct {
	Config   *config.Config
	Services *services.Services
	DB       HealthChecker
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, deps Dependencies) error {
	if deps.Config == nil || deps.Services == nil {
		return fmt.Errorf("config and services are required")
	}

	var regErr error
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			regErr = fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
			return
		}
		regErr = validation.Register(v)
	})
	if regErr != nil {
		return fmt.Errorf("failed to register validators: %w", regErr)
	}

	healthHandler := NewHealthHandler(deps.DB)
	financialHandler := NewFinancialHandler(deps.Services.Financial, deps.Services.Export, deps.Services.Batch)
	narrativeHandler := NewNarrativeHandler(deps.Services.Narrative)

	r.GET("/health", healthHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	analysis := r.Group("/api/v1")
	if deps.Services.Auth != nil {
		authHandler := NewAuthHandlerV2(deps.Services.Auth, deps.Config.IsProduction())

		public := r.Group("/api/v1/auth")
		{
			public.POST("/login", authHandler.Login)
			public.POST("/register", authHandler.Register)
			public.POST("/refresh", authHandler.RefreshToken)
			public.POST("/logout", authHandler.Logout)
		}

		analysis.Use(auth.JWTMiddleware(auth.NewJWTService(deps.Config.JWTSecret)))
		analysis.Use(auth.CSRFMiddleware())
	}

	financial := analysis.Group("/financial")
	{
		financial.GET("/sample", financialHandler.GetSample)
		financial.POST("/solvency", financialHandler.Solvency)
		financial.POST("/integrity", financialHandler.Integrity)
		financial.POST("/quality", financialHandler.Quality)
		financial.POST("/verdict", financialHandler.Verdict)
		financial.POST("/analyze", financialHandler.Analyze)
		financial.POST("/report", financialHandler.Report)
		financial.POST("/batch", financialHandler.Batch)
	}

	text := analysis.Group("/narrative")
	{
		text.POST("/text", narrativeHandler.AnalyzeText)
		text.POST("/keywords", narrativeHandler.ScanKeywords)
		text.GET("/simulation/options", narrativeHandler.GetSimulationOptions)
		text.POST("/simulation", narrativeHandler.Simulate)
	}

	return nil
}
