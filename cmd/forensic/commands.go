package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/narrative"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
	"github.com/ajharbinger/forensic-omniscient/pkg/config"
)

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
)

// cli holds the flag values and the services shared by every command
type cli struct {
	services *services.Services

	logLevel  string
	file      string
	format    string
	html      bool
	tone      string
	structure string
	focus     string
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	rootCmd := &cobra.Command{
		Use:   "forensic",
		Short: "Forensic accounting checks for financial statements and MD&A text",
		Long: `forensic runs the Altman Z-Score, Beneish M-Score and earnings quality
models over statement figures, and measures the readability and hedging of
management discussion text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine; the environment may already be set
			_ = godotenv.Load()
			cfg := config.New()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			log := logger.New(cmd.ErrOrStderr(), app.logLevel, false)
			svcs, err := services.NewServices(cfg, log, nil)
			if err != nil {
				return err
			}
			app.services = svcs
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	financialCmd := &cobra.Command{
		Use:   "financial",
		Short: "Score statement figures from a YAML or JSON file (the sample company by default)",
		Args:  cobra.NoArgs,
		RunE:  app.runFinancial,
	}
	financialCmd.Flags().StringVarP(&app.file, "file", "f", "", "inputs file, - for stdin")
	financialCmd.Flags().StringVarP(&app.format, "format", "o", outputText, "output format: text, json, csv or markdown")

	textCmd := &cobra.Command{
		Use:   "text [file]",
		Short: "Measure the Fog Index and flag risk and vague terms (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  app.runText,
	}
	textCmd.Flags().BoolVar(&app.html, "html", false, "treat the input as HTML")
	textCmd.Flags().StringVarP(&app.format, "format", "o", outputText, "output format: text or json")

	keywordsCmd := &cobra.Command{
		Use:   "keywords [file]",
		Short: "Highlight risk and vague terms (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  app.runKeywords,
	}
	keywordsCmd.Flags().BoolVar(&app.html, "html", false, "treat the input as HTML")
	keywordsCmd.Flags().StringVarP(&app.format, "format", "o", outputText, "output format: text or json")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Score a tone, structure and focus profile for deception risk",
		Args:  cobra.NoArgs,
		RunE:  app.runSimulate,
	}
	simulateCmd.Flags().StringVar(&app.tone, "tone", "", "management tone option")
	simulateCmd.Flags().StringVar(&app.structure, "structure", "", "sentence structure option")
	simulateCmd.Flags().StringVar(&app.focus, "focus", "", "narrative focus option")
	simulateCmd.Flags().StringVarP(&app.format, "format", "o", outputText, "output format: text or json")
	_ = simulateCmd.MarkFlagRequired("tone")
	_ = simulateCmd.MarkFlagRequired("structure")
	_ = simulateCmd.MarkFlagRequired("focus")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Screen every company listed in a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE:  app.runBatch,
	}
	batchCmd.Flags().StringVarP(&app.file, "file", "f", "-", "companies file, - for stdin")
	batchCmd.Flags().StringVarP(&app.format, "format", "o", outputText, "output format: text or json")

	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "List the simulation options",
		Args:  cobra.NoArgs,
		RunE:  app.runOptions,
	}

	rootCmd.AddCommand(financialCmd, batchCmd, textCmd, keywordsCmd, simulateCmd, optionsCmd)
	return rootCmd
}

func (a *cli) runFinancial(cmd *cobra.Command, args []string) error {
	in := scoring.SampleInputs()
	if a.file != "" {
		r, closeFn, err := openInput(a.file, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer closeFn()
		if in, err = decodeInputs(r); err != nil {
			return err
		}
	}

	report, err := a.services.Financial.Analyze(in)
	if err != nil {
		return describeError(err)
	}

	out := cmd.OutOrStdout()
	if strings.EqualFold(a.format, outputText) {
		_, err = io.WriteString(out, renderReport(report))
		return err
	}

	format, err := services.ParseExportFormat(a.format)
	if err != nil {
		return describeError(err)
	}
	data, _, err := a.services.Export.Render(report, format)
	if err != nil {
		return describeError(err)
	}
	_, err = out.Write(data)
	return err
}

func (a *cli) runBatch(cmd *cobra.Command, args []string) error {
	r, closeFn, err := openInput(a.file, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeFn()

	req, err := decodeBatch(r)
	if err != nil {
		return err
	}
	result, err := a.services.Batch.AnalyzeBatch(cmd.Context(), req)
	if err != nil {
		return describeError(err)
	}

	switch a.format {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), result)
	case outputText:
		_, err = io.WriteString(cmd.OutOrStdout(), renderBatch(result))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", a.format)
	}
}

func (a *cli) runText(cmd *cobra.Command, args []string) error {
	text, err := a.readText(cmd, args)
	if err != nil {
		return err
	}
	result, err := a.services.Narrative.AnalyzeText(models.TextAnalysisRequest{Text: text, Format: models.TextFormatPlain})
	if err != nil {
		return describeError(err)
	}

	switch a.format {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), result)
	case outputText:
		_, err = io.WriteString(cmd.OutOrStdout(), renderTextAnalysis(text, result))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", a.format)
	}
}

func (a *cli) runKeywords(cmd *cobra.Command, args []string) error {
	text, err := a.readText(cmd, args)
	if err != nil {
		return err
	}
	annotation, err := a.services.Narrative.ScanKeywords(models.KeywordScanRequest{Text: text, Format: models.TextFormatPlain})
	if err != nil {
		return describeError(err)
	}

	switch a.format {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), annotation)
	case outputText:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n",
			narrative.Render(text, annotation.Spans, terminalMarker),
			styles.Muted.Render(fmt.Sprintf("%d risk, %d vague", annotation.RiskCount, annotation.VagueCount)))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", a.format)
	}
}

func (a *cli) runSimulate(cmd *cobra.Command, args []string) error {
	result, err := a.services.Narrative.Simulate(models.SimulationRequest{
		Tone:      a.tone,
		Structure: a.structure,
		Focus:     a.focus,
	})
	if err != nil {
		return describeError(err)
	}

	switch a.format {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), result)
	case outputText:
		_, err = io.WriteString(cmd.OutOrStdout(), renderSimulation(result))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", a.format)
	}
}

func (a *cli) runOptions(cmd *cobra.Command, args []string) error {
	_, err := io.WriteString(cmd.OutOrStdout(), renderOptions(a.services.Narrative.Options()))
	return err
}

// readText returns the text named by args[0], or stdin, converted from
// HTML when --html is set
func (a *cli) readText(cmd *cobra.Command, args []string) (string, error) {
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	r, closeFn, err := openInput(name, cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	defer closeFn()

	if a.html {
		return narrative.ExtractText(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func openInput(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
