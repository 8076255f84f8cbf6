package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/forensic-omniscient/internal/narrative"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFinancialCommand(t *testing.T) {
	t.Run("sample company", func(t *testing.T) {
		out, err := execute(t, "", "financial")
		require.NoError(t, err)
		assert.Contains(t, out, "Solvency (Z-Score)")
		assert.Contains(t, out, "10.98")
		assert.Contains(t, out, "LOW RISK")
		assert.Contains(t, out, "Solvency 100 | Integrity 100 | Quality 100")
	})

	t.Run("csv export", func(t *testing.T) {
		out, err := execute(t, "", "financial", "--format", "csv")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "section,metric,value,status,threshold"))
	})

	t.Run("markdown export", func(t *testing.T) {
		out, err := execute(t, "", "financial", "-o", "md")
		require.NoError(t, err)
		assert.Contains(t, out, "## Verdict: LOW RISK")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "", "financial", "-o", "xlsx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported export format")
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeFile(t, "distressed.yaml", "revenue_cy: 100\nrevenue_py: 100\ntotal_assets: 1000\ntotal_liabilities: 900\n")
		out, err := execute(t, "", "financial", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "CRITICAL RISK")
	})

	t.Run("json on stdin", func(t *testing.T) {
		data, err := json.Marshal(scoring.SampleInputs())
		require.NoError(t, err)
		out, err := execute(t, string(data), "financial", "-f", "-", "-o", "json")
		require.NoError(t, err)

		var report map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Contains(t, report, "report_id")
	})

	t.Run("nan rejected", func(t *testing.T) {
		path := writeFile(t, "nan.yaml", "revenue_cy: .nan\n")
		_, err := execute(t, "", "financial", "--file", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "revenue_cy: finite")
	})
}

func TestBatchCommand(t *testing.T) {
	companies := `companies:
  - name: Sample Ltd
    inputs:
      revenue_cy: 162990
      revenue_py: 153670
      cogs: 123754
      net_income: 26713
      total_assets: 147795
      total_liabilities: 51977
      current_assets: 95000
      current_liabilities: 43750
      receivables_cy: 31158
      receivables_py: 30193
      retained_earnings: 93745
      market_value_equity: 667000
      operating_cash_flow: 35694
  - ticker: NAN
    inputs:
      net_income: .nan
`
	out, err := execute(t, companies, "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample Ltd")
	assert.Contains(t, out, "LOW RISK")
	assert.Contains(t, out, "error: invalid input: net_income: finite")
	assert.Contains(t, out, "1 screened, 1 failed")

	_, err = execute(t, "companies:\n  - nmae: typo\n", "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse companies")

	_, err = execute(t, "", "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("MAX_TEXT_LENGTH", "0")

	_, err := execute(t, "some text", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "MAX_TEXT_LENGTH")
}

func TestDecodeInputs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		check   func(t *testing.T, in scoring.FinancialInputs)
	}{
		{
			name:  "yaml",
			input: "revenue_cy: 162990\nnet_income: 26713\n",
			check: func(t *testing.T, in scoring.FinancialInputs) {
				assert.Equal(t, 162990.0, in.RevenueCY)
				assert.Equal(t, 26713.0, in.NetIncome)
			},
		},
		{
			name:  "json",
			input: `{"operating_cash_flow": 35694, "cogs": 123754}`,
			check: func(t *testing.T, in scoring.FinancialInputs) {
				assert.Equal(t, 35694.0, in.OperatingCashFlow)
				assert.Equal(t, 123754.0, in.COGS)
			},
		},
		{name: "unknown field", input: "revenue: 1\n", wantErr: "failed to parse inputs"},
		{name: "empty", input: "", wantErr: "empty"},
		{name: "not a number", input: "cogs: lots\n", wantErr: "failed to parse inputs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := decodeInputs(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, in)
		})
	}
}

func TestTextCommand(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		out, err := execute(t, "Headwinds could persist. We believe recovery follows.", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "7 words, 2 sentences")
		assert.Contains(t, out, "[Headwinds]")
		assert.Contains(t, out, "(could)")
		assert.Contains(t, out, "(believe)")
	})

	t.Run("html file", func(t *testing.T) {
		path := writeFile(t, "mdna.html", "<html><body><p>Litigation <b>pressures</b> remain.</p><script>loss()</script></body></html>")
		out, err := execute(t, "", "text", "--html", path, "-o", "json")
		require.NoError(t, err)

		var result narrative.TextAnalysisResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 3, result.WordCount)
		assert.Equal(t, 2, result.RiskTermCount)
		assert.Equal(t, `<span class="risk-high">Litigation</span> <span class="risk-high">pressures</span> remain.`, result.Annotated)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "", "text", filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open input")
	})
}

func TestKeywordsCommand(t *testing.T) {
	out, err := execute(t, "LOSS and loss, maybe.", "keywords", "-o", "json")
	require.NoError(t, err)

	var annotation narrative.Annotation
	require.NoError(t, json.Unmarshal([]byte(out), &annotation))
	assert.Equal(t, 2, annotation.RiskCount)
	assert.Equal(t, 1, annotation.VagueCount)

	out, err = execute(t, "LOSS and loss, maybe.", "keywords")
	require.NoError(t, err)
	assert.Contains(t, out, "[LOSS] and [loss], (maybe).")
	assert.Contains(t, out, "2 risk, 1 vague")
}

func TestSimulateCommand(t *testing.T) {
	opts := narrative.Options()

	out, err := execute(t, "", "simulate",
		"--tone", opts.Tones[5], "--structure", opts.Structures[4], "--focus", opts.Focuses[3])
	require.NoError(t, err)
	assert.Contains(t, out, "100/100")
	assert.Contains(t, out, "HIGH RISK: DECEPTION LIKELY")
	assert.Contains(t, out, "Externalizing blame.")

	out, err = execute(t, "", "simulate",
		"--tone", opts.Tones[0], "--structure", opts.Structures[0], "--focus", opts.Focuses[0], "-o", "json")
	require.NoError(t, err)
	var result narrative.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, narrative.RiskLow, result.Level)
	assert.Empty(t, result.Reasons)

	_, err = execute(t, "", "simulate", "--tone", opts.Tones[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestOptionsCommand(t *testing.T) {
	out, err := execute(t, "", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Tone (--tone)")
	for _, o := range narrative.Options().Focuses {
		assert.Contains(t, out, o)
	}
}
