package narrative

// TextAnalysisResult is the complexity reading and keyword annotation of a
// single text
type TextAnalysisResult struct {
	FogResult
	Annotated      string `json:"annotated"`
	Spans          []Span `json:"spans"`
	RiskTermCount  int    `json:"risk_term_count"`
	VagueTermCount int    `json:"vague_term_count"`
}

// AnalyzeText computes the Fog Index of text and highlights its risk and
// vague vocabulary.
func AnalyzeText(text string) TextAnalysisResult {
	return AnalyzeTextWith(text, HTMLMarker)
}

// AnalyzeTextWith is AnalyzeText with a custom span marker.
func AnalyzeTextWith(text string, marker Marker) TextAnalysisResult {
	annotation := AnnotateWith(text, marker)
	return TextAnalysisResult{
		FogResult:      ComputeFog(text),
		Annotated:      annotation.Annotated,
		Spans:          annotation.Spans,
		RiskTermCount:  annotation.RiskCount,
		VagueTermCount: annotation.VagueCount,
	}
}
