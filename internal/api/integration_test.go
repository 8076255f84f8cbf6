package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/middleware"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
	"github.com/ajharbinger/forensic-omniscient/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:    "development",
		MaxRequestSize: 1 << 20,
		MaxTextLength:  5000,
		CacheEntries:   64,
		CacheTTL:       time.Minute,

		BatchConcurrency: 2,
		MaxBatchSize:     3,
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	svcs, err := services.NewServices(cfg, logger.Discard(), nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	require.NoError(t, SetupRoutes(r, Dependencies{Config: cfg, Services: svcs}))
	return r
}

type envelope struct {
	Result    json.RawMessage `json:"result"`
	Timestamp time.Time       `json:"timestamp"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	Details   string          `json:"details"`
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "forensic-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestFinancialEndpoints(t *testing.T) {
	r := newTestRouter(t)
	sample := scoring.SampleInputs()

	t.Run("sample", func(t *testing.T) {
		w, env := doRequest(t, r, "GET", "/api/v1/financial/sample", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got scoring.FinancialInputs
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Equal(t, sample, got)
		assert.False(t, env.Timestamp.IsZero())
	})

	t.Run("solvency", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/financial/solvency", sample)
		require.Equal(t, http.StatusOK, w.Code)
		var got scoring.SolvencyResult
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.InDelta(t, 10.9826, got.Value, 1e-3)
		assert.Equal(t, scoring.StatusSafe, got.Status)
		assert.InDelta(t, 0.3468, got.Components.Liquidity, 1e-3)
	})

	t.Run("integrity", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/financial/integrity", sample)
		require.Equal(t, http.StatusOK, w.Code)
		var got scoring.IntegrityResult
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.InDelta(t, -3.1918, got.Value, 1e-3)
	})

	t.Run("quality", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/financial/quality", sample)
		require.Equal(t, http.StatusOK, w.Code)
		var got scoring.ScoreResult
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.InDelta(t, 1.3362, got.Value, 1e-3)
	})

	t.Run("verdict", func(t *testing.T) {
		body := map[string]interface{}{
			"solvency":  map[string]float64{"value": 2.5},
			"integrity": map[string]float64{"value": -1.9},
			"quality":   map[string]float64{"value": 0.5},
		}
		w, env := doRequest(t, r, "POST", "/api/v1/financial/verdict", body)
		require.Equal(t, http.StatusOK, w.Code)
		var got scoring.VerdictResult
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Equal(t, scoring.VerdictFraud, got.Level)
	})

	t.Run("analyze", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/financial/analyze", sample)
		require.Equal(t, http.StatusOK, w.Code)
		var got services.AnalysisReport
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Len(t, got.ReportID, 36)
		assert.Equal(t, scoring.VerdictSafe, got.Verdict.Level)
		assert.Len(t, got.Radar, 3)
	})

	t.Run("zero inputs never fail", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/financial/analyze", scoring.FinancialInputs{})
		require.Equal(t, http.StatusOK, w.Code)
		var got services.AnalysisReport
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Equal(t, scoring.VerdictCritical, got.Verdict.Level)
	})
}

func TestFinancialEndpoints_Errors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name           string
		path           string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{name: "malformed json", path: "/api/v1/financial/solvency", body: `{"revenue_cy":`, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_INPUT"},
		{name: "wrong type", path: "/api/v1/financial/solvency", body: `{"revenue_cy":"lots"}`, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_INPUT"},
		{name: "empty body", path: "/api/v1/financial/analyze", body: "", expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_INPUT"},
		{name: "overflowing number", path: "/api/v1/financial/analyze", body: `{"total_assets":1e400}`, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_INPUT"},
		{name: "unknown export format", path: "/api/v1/financial/report?format=xlsx", body: scoring.SampleInputs(), expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doRequest(t, r, "POST", tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedCode, env.Code)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestReportEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doRequest(t, r, "POST", "/api/v1/financial/report?format=csv", scoring.SampleInputs())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "section", records[0][0])

	w, _ = doRequest(t, r, "POST", "/api/v1/financial/report?format=markdown", scoring.SampleInputs())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".md")
	assert.Contains(t, w.Body.String(), "## Verdict: LOW RISK")
}

func TestNarrativeEndpoints(t *testing.T) {
	r := newTestRouter(t)

	t.Run("text", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/text", map[string]string{
			"text": "Headwinds could persist. We believe recovery follows.",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.EqualValues(t, 7, got["word_count"])
		assert.EqualValues(t, 2, got["sentence_count"])
		assert.EqualValues(t, 1, got["risk_term_count"])
		assert.EqualValues(t, 2, got["vague_term_count"])
		assert.Contains(t, got["annotated"], `<span class="risk-high">Headwinds</span>`)
	})

	t.Run("html text", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/text", map[string]string{
			"text":   "<p>Revenue <i>decline</i>.</p>",
			"format": "html",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Equal(t, `Revenue <span class="risk-high">decline</span>.`, got["annotated"])
	})

	t.Run("bad format", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/text", map[string]string{"text": "x", "format": "pdf"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Code)
		assert.Contains(t, env.Details, "format")
	})

	t.Run("empty text", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/text", map[string]string{"text": ""})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.EqualValues(t, 0, got["word_count"])
		assert.EqualValues(t, 1, got["sentence_count"])
		assert.InDelta(t, 0.4, got["fog_index"], 1e-9)
		assert.Equal(t, "Clear", got["verdict"])
		assert.Equal(t, "", got["annotated"])
		assert.Empty(t, got["spans"])
	})

	t.Run("empty keywords", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/keywords", map[string]string{})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Equal(t, "", got["annotated"])
		assert.EqualValues(t, 0, got["risk_count"])
		assert.EqualValues(t, 0, got["vague_count"])
	})

	t.Run("text too long", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/text", map[string]string{"text": strings.Repeat("a ", 3000)})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Code)
	})

	t.Run("keywords", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/keywords", map[string]string{"text": "LOSS and loss"})
		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.EqualValues(t, 2, got["risk_count"])
		assert.Len(t, got["spans"], 2)
	})

	t.Run("simulation options", func(t *testing.T) {
		w, env := doRequest(t, r, "GET", "/api/v1/narrative/simulation/options", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got map[string][]string
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.Len(t, got["tones"], 6)
		assert.Len(t, got["structures"], 5)
		assert.Len(t, got["focuses"], 5)
	})

	t.Run("simulation", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/simulation", map[string]string{
			"tone":      "Confused / Contradictory (Critical Risk)",
			"structure": "Incomprehensible Word Salad (Fog > 22)",
			"focus":     "One-time Events & Excuses",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Result, &got))
		assert.EqualValues(t, 100, got["score"])
		assert.EqualValues(t, 120, got["raw_score"])
		assert.Equal(t, "High", got["level"])
	})

	t.Run("simulation missing field", func(t *testing.T) {
		w, env := doRequest(t, r, "POST", "/api/v1/narrative/simulation", map[string]string{"tone": "x"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, env.Details, "structure: required")
	})
}

func TestBatchEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := map[string]interface{}{
		"companies": []map[string]interface{}{
			{"name": "Sample Ltd", "inputs": scoring.SampleInputs()},
			{"ticker": "EMPTY", "inputs": map[string]float64{}},
		},
	}
	w, env := doRequest(t, r, "POST", "/api/v1/financial/batch", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got services.BatchResult
	require.NoError(t, json.Unmarshal(env.Result, &got))
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Sample Ltd", got.Entries[0].Name)
	assert.Equal(t, scoring.VerdictSafe, got.Entries[0].Report.Verdict.Level)
	assert.Equal(t, "EMPTY", got.Entries[1].Name)
	assert.Equal(t, scoring.VerdictCritical, got.Entries[1].Report.Verdict.Level)
	assert.Equal(t, 2, got.Stats.Succeeded)

	w, env = doRequest(t, r, "POST", "/api/v1/financial/batch", map[string]interface{}{"companies": []interface{}{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Details, "companies: min=1")

	tooMany := map[string]interface{}{"companies": []map[string]string{{}, {}, {}, {}}}
	w, env = doRequest(t, r, "POST", "/api/v1/financial/batch", tooMany)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "4 submitted, limit is 3", env.Details)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	doRequest(t, r, "POST", "/api/v1/financial/analyze", scoring.SampleInputs())

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.Header.Set("User-Agent", "prometheus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "forensic_analyses_total")
}
