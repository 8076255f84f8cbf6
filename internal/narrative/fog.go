package narrative

import (
	"regexp"
	"unicode/utf8"
)

// Readability is the verdict attached to a Fog Index
type Readability string

const (
	ReadabilityClear      Readability = "Clear"
	ReadabilityComplex    Readability = "Complex"
	ReadabilityObfuscated Readability = "Obfuscated"
)

const (
	// Words longer than this many runes stand in for words of three or more
	// syllables.
	complexWordLength = 7

	FogObfuscatedAbove = 18.0
	FogComplexAbove    = 14.0
)

var (
	wordPattern        = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceTerminator = regexp.MustCompile(`[.!?]+`)
)

// FogResult is a Gunning Fog reading of a block of text
type FogResult struct {
	Index            float64     `json:"fog_index"`
	WordCount        int         `json:"word_count"`
	SentenceCount    int         `json:"sentence_count"`
	ComplexWordCount int         `json:"complex_word_count"`
	Verdict          Readability `json:"verdict"`
	Caption          string      `json:"caption"`
}

// ComputeFog calculates the Gunning Fog Index of text.
//
// Sentences are counted as runs of terminal punctuation, so trailing text
// without a full stop does not open a new sentence. Both the sentence count
// and the word count used in the ratios are floored at one; the reported
// word count is the real one.
func ComputeFog(text string) FogResult {
	words := wordPattern.FindAllString(text, -1)

	complexWords := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) > complexWordLength {
			complexWords++
		}
	}

	sentences := len(sentenceTerminator.FindAllStringIndex(text, -1))
	if sentences < 1 {
		sentences = 1
	}

	wordDenominator := len(words)
	if wordDenominator < 1 {
		wordDenominator = 1
	}

	fog := 0.4 * (float64(wordDenominator)/float64(sentences) +
		100*float64(complexWords)/float64(wordDenominator))

	verdict, caption := classifyFog(fog)
	return FogResult{
		Index:            fog,
		WordCount:        len(words),
		SentenceCount:    sentences,
		ComplexWordCount: complexWords,
		Verdict:          verdict,
		Caption:          caption,
	}
}

func classifyFog(fog float64) (Readability, string) {
	switch {
	case fog > FogObfuscatedAbove:
		return ReadabilityObfuscated, "The text is highly complex, often used to hide poor performance."
	case fog > FogComplexAbove:
		return ReadabilityComplex, "Standard corporate language, but lacks clarity."
	default:
		return ReadabilityClear, "Communication is direct and transparent."
	}
}
