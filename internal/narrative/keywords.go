package narrative

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category classifies a flagged term
type Category string

const (
	CategoryRisk  Category = "risk"
	CategoryVague Category = "vague"
)

// RiskTerms is negative or risk vocabulary
var RiskTerms = []string{
	"loss", "decline", "challenging", "headwinds", "litigation",
	"fail", "unable", "volatilities", "constrained", "pressures",
}

// VagueTerms is hedging and jargon vocabulary
var VagueTerms = []string{
	"believe", "estimate", "anticipate", "maybe", "could", "contingent",
	"endeavored", "mitigate", "aforementioned", "synergistic",
	"rationalization", "precipitate",
}

// Span is one flagged occurrence of a term. Start and End are byte offsets
// into the scanned text.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Term     string   `json:"term"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Marker renders a matched span. match keeps the source casing.
type Marker func(category Category, match string) string

// HTMLMarker wraps risk terms and vague terms in the dashboard's highlight
// classes.
func HTMLMarker(category Category, match string) string {
	class := "risk-med"
	if category == CategoryRisk {
		class = "risk-high"
	}
	return `<span class="` + class + `">` + match + `</span>`
}

// Annotation is the result of a keyword scan
type Annotation struct {
	Annotated  string `json:"annotated"`
	Spans      []Span `json:"spans"`
	RiskCount  int    `json:"risk_count"`
	VagueCount int    `json:"vague_count"`
}

type termMatcher struct {
	term     string
	category Category
	pattern  *regexp.Regexp
}

// matchers hold every risk term ahead of every vague term
var matchers = buildMatchers()

func buildMatchers() []termMatcher {
	out := make([]termMatcher, 0, len(RiskTerms)+len(VagueTerms))
	add := func(terms []string, category Category) {
		for _, term := range terms {
			out = append(out, termMatcher{
				term:     term,
				category: category,
				pattern:  regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term)),
			})
		}
	}
	add(RiskTerms, CategoryRisk)
	add(VagueTerms, CategoryVague)
	return out
}

// FindSpans locates every whole-word, case-insensitive occurrence of the
// risk and vague terms. Risk terms claim text first; a later match that
// overlaps a claimed span is dropped. Spans come back ordered by offset.
func FindSpans(text string) []Span {
	var spans []Span
	for _, m := range matchers {
		for _, loc := range m.pattern.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if !isWholeWord(text, start, end) || overlaps(spans, start, end) {
				continue
			}
			spans = append(spans, Span{
				Start:    start,
				End:      end,
				Term:     m.term,
				Text:     text[start:end],
				Category: m.category,
			})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// Render writes text with each span passed through marker. Bytes outside
// the spans are copied unchanged. Spans that are out of range or overlap an
// earlier span are ignored.
func Render(text string, spans []Span, marker Marker) string {
	if len(spans) == 0 {
		return text
	}
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	var b strings.Builder
	b.Grow(len(text) + len(ordered)*32)
	cursor := 0
	for _, s := range ordered {
		if s.Start < cursor || s.End > len(text) || s.Start >= s.End {
			continue
		}
		b.WriteString(text[cursor:s.Start])
		b.WriteString(marker(s.Category, text[s.Start:s.End]))
		cursor = s.End
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// Annotate scans text and renders it with HTMLMarker.
func Annotate(text string) Annotation {
	return AnnotateWith(text, HTMLMarker)
}

// AnnotateWith scans text and renders it with the given marker.
func AnnotateWith(text string, marker Marker) Annotation {
	spans := FindSpans(text)
	a := Annotation{
		Annotated: Render(text, spans, marker),
		Spans:     spans,
	}
	for _, s := range spans {
		if s.Category == CategoryRisk {
			a.RiskCount++
		} else {
			a.VagueCount++
		}
	}
	if a.Spans == nil {
		a.Spans = []Span{}
	}
	return a
}

// ScanKeywords returns text with risk and vague terms highlighted.
func ScanKeywords(text string) string {
	return Annotate(text).Annotated
}

func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func overlaps(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}
