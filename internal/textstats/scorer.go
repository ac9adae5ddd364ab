package textstats

import (
	"strings"
)

// Scorer estimates translation quality on a [0, 10] scale. Implementations
// must be deterministic given the same inputs.
type Scorer interface {
	Score(sourceText, translatedText, sourceLang, targetLang string) float64
}

// Expected translated/source length ratio ranges per language pair. Pairs not
// listed use the default range.
var expectedLengthRatios = map[[2]string][2]float64{
	{"en", "zh"}: {0.4, 0.8},
	{"zh", "en"}: {1.2, 2.5},
	{"ja", "zh"}: {0.6, 1.2},
	{"ko", "zh"}: {0.6, 1.2},
	{"fr", "en"}: {0.8, 1.3},
	{"de", "en"}: {0.7, 1.2},
}

var defaultLengthRatio = [2]float64{0.5, 2.0}

// HeuristicScorer combines length-ratio plausibility, completeness, and
// repetition signals. It is a fallback for engines that do not report their
// own quality score.
type HeuristicScorer struct{}

func (HeuristicScorer) Score(sourceText, translatedText, sourceLang, targetLang string) float64 {
	source := strings.TrimSpace(sourceText)
	translated := strings.TrimSpace(translatedText)
	if source == "" || translated == "" {
		return 0
	}

	score := lengthRatioScore(source, translated, sourceLang, targetLang)*0.4 +
		completenessScore(source, translated)*0.35 +
		repetitionScore(translated)*0.25

	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func lengthRatioScore(source, translated, sourceLang, targetLang string) float64 {
	sourceLen := float64(len([]rune(source)))
	translatedLen := float64(len([]rune(translated)))
	if sourceLen == 0 {
		return 0
	}

	bounds, ok := expectedLengthRatios[[2]string{sourceLang, targetLang}]
	if !ok {
		bounds = defaultLengthRatio
	}

	ratio := translatedLen / sourceLen
	switch {
	case ratio >= bounds[0] && ratio <= bounds[1]:
		return 10
	case ratio < bounds[0]:
		return 10 * ratio / bounds[0]
	default:
		return 10 * bounds[1] / ratio
	}
}

func completenessScore(source, translated string) float64 {
	score := 10.0

	// Trailing ellipsis usually means the provider truncated the output.
	if strings.HasSuffix(translated, "...") || strings.HasSuffix(translated, "…") {
		score -= 3
	}

	// A large word overlap with a long source suggests untranslated text.
	if len([]rune(source)) > 20 {
		sourceWords := fieldSet(source)
		translatedWords := fieldSet(translated)
		if len(sourceWords) > 0 {
			overlap := 0
			for word := range sourceWords {
				if _, ok := translatedWords[word]; ok {
					overlap++
				}
			}
			if float64(overlap) > float64(len(sourceWords))*0.7 {
				score -= 4
			}
		}
	}

	if float64(len([]rune(translated))) < float64(len([]rune(source)))*0.1 {
		score -= 5
	}

	if score < 0 {
		return 0
	}
	return score
}

func repetitionScore(translated string) float64 {
	words := strings.Fields(strings.ToLower(translated))
	if len(words) < 2 {
		return 10
	}
	unique := make(map[string]struct{}, len(words))
	for _, word := range words {
		unique[word] = struct{}{}
	}
	if float64(len(words))/float64(len(unique)) > 2.0 {
		return 6
	}
	return 10
}

func fieldSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}
