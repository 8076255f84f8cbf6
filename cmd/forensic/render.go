package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ajharbinger/forensic-omniscient/internal/narrative"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
)

var (
	colorSafe    = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F4D03F")
	colorRisk    = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#7F8C8D")
)

var styles = struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Safe    lipgloss.Style
	Warning lipgloss.Style
	Risk    lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true),
	Label:   lipgloss.NewStyle().Width(22),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Safe:    lipgloss.NewStyle().Foreground(colorSafe).Bold(true),
	Warning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
	Risk:    lipgloss.NewStyle().Foreground(colorRisk).Bold(true),
	Box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
}

func statusStyle(status scoring.Status) lipgloss.Style {
	switch status {
	case scoring.StatusSafe:
		return styles.Safe
	case scoring.StatusWarning:
		return styles.Warning
	default:
		return styles.Risk
	}
}

func verdictStyle(level scoring.VerdictLevel) lipgloss.Style {
	switch level {
	case scoring.VerdictSafe:
		return styles.Safe
	case scoring.VerdictWarning:
		return styles.Warning
	default:
		return styles.Risk
	}
}

func renderReport(report *services.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", styles.Title.Render("Forensic report"), styles.Muted.Render(report.ReportID))
	for _, s := range report.Scores() {
		fmt.Fprintf(&b, "%s %10.2f  %-8s %s\n",
			styles.Label.Render(s.Label), s.Value,
			statusStyle(s.Status).Render(string(s.Status)),
			styles.Muted.Render(s.Threshold))
	}

	c := report.Integrity.Components
	fmt.Fprintf(&b, "\n%s DSRI %.2f%s  SGI %.2f%s\n",
		styles.Label.Render("Integrity drivers"),
		c.DSRI, elevatedMark(c.DSRIElevated), c.SGI, elevatedMark(c.SGIElevated))

	axes := make([]string, 0, len(report.Radar))
	for _, p := range report.Radar {
		axes = append(axes, fmt.Sprintf("%s %.0f", p.Axis, p.Value))
	}
	fmt.Fprintf(&b, "%s %s\n\n", styles.Label.Render("Radar"), strings.Join(axes, " | "))

	v := report.Verdict
	b.WriteString(styles.Box.Render(verdictStyle(v.Level).Render(v.Title) + "\n" + v.Message))
	b.WriteString("\n")
	return b.String()
}

func elevatedMark(elevated bool) string {
	if elevated {
		return styles.Risk.Render(" (elevated)")
	}
	return ""
}

// terminalMarker brackets risk terms and parenthesizes vague terms so the
// highlight survives when color is unavailable
func terminalMarker(category narrative.Category, match string) string {
	if category == narrative.CategoryRisk {
		return styles.Risk.Render("[" + match + "]")
	}
	return styles.Warning.Render("(" + match + ")")
}

func readabilityStyle(r narrative.Readability) lipgloss.Style {
	switch r {
	case narrative.ReadabilityClear:
		return styles.Safe
	case narrative.ReadabilityComplex:
		return styles.Warning
	default:
		return styles.Risk
	}
}

func renderTextAnalysis(text string, result narrative.TextAnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %.2f  %s\n", styles.Label.Render("Fog index"), result.Index,
		readabilityStyle(result.Verdict).Render(string(result.Verdict)))
	fmt.Fprintf(&b, "%s\n", styles.Muted.Render(result.Caption))
	fmt.Fprintf(&b, "%s %d words, %d sentences, %d complex\n",
		styles.Label.Render("Counts"), result.WordCount, result.SentenceCount, result.ComplexWordCount)
	fmt.Fprintf(&b, "%s %d risk, %d vague\n\n",
		styles.Label.Render("Flagged terms"), result.RiskTermCount, result.VagueTermCount)
	b.WriteString(narrative.Render(text, result.Spans, terminalMarker))
	b.WriteString("\n")
	return b.String()
}

func renderSimulation(result narrative.SimulationResult) string {
	style := styles.Safe
	switch result.Level {
	case narrative.RiskHigh:
		style = styles.Risk
	case narrative.RiskMedium:
		style = styles.Warning
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/100  %s\n", styles.Label.Render("Deception risk"), result.Score, style.Render(result.Conclusion))
	for _, reason := range result.Reasons {
		fmt.Fprintf(&b, "  - %s\n", reason)
	}
	fmt.Fprintf(&b, "%s\n", styles.Muted.Render(result.Guidance))
	return b.String()
}

func renderOptions(opts narrative.SimulationOptions) string {
	var b strings.Builder
	section := func(title string, options []string) {
		fmt.Fprintf(&b, "%s\n", styles.Title.Render(title))
		for _, o := range options {
			fmt.Fprintf(&b, "  %s\n", o)
		}
	}
	section("Tone (--tone)", opts.Tones)
	section("Structure (--structure)", opts.Structures)
	section("Focus (--focus)", opts.Focuses)
	return b.String()
}

func renderBatch(result *services.BatchResult) string {
	var b strings.Builder

	for _, e := range result.Entries {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("#%d", e.Index+1)
		}
		if e.Report == nil {
			fmt.Fprintf(&b, "%s %s\n", styles.Label.Render(name), styles.Risk.Render("error: "+e.Error))
			continue
		}
		r := e.Report
		fmt.Fprintf(&b, "%s Z %6.2f  M %6.2f  Q %5.2f  %s\n",
			styles.Label.Render(name),
			r.Solvency.Value, r.Integrity.Value, r.Quality.Value,
			verdictStyle(r.Verdict.Level).Render(r.Verdict.Title))
	}

	s := result.Stats
	fmt.Fprintf(&b, "\n%s\n", styles.Muted.Render(fmt.Sprintf("%d screened, %d failed", s.Succeeded, s.Failed)))
	return b.String()
}
