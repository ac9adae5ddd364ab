// Package textstats computes deterministic text metrics for translation
// results: word and character counts, frequency-weighted keywords, and
// readability heuristics.
package textstats

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// DefaultKeywordLimit bounds keyword extraction when no limit is configured.
const DefaultKeywordLimit = 5

// Languages whose scripts do not delimit words with spaces. Word counts for
// these are derived from letter runes instead of whitespace tokens.
var logographicLanguages = map[string]struct{}{
	"zh": {},
	"ja": {},
	"th": {},
	"km": {},
	"lo": {},
	"my": {},
}

var (
	tokenPattern    = regexp.MustCompile(`[\p{L}\p{N}]+`)
	sentencePattern = regexp.MustCompile(`[.!?。！？]+`)
)

// Estimator computes metrics for a result. Zero-cost to share; all methods
// are pure functions of their input.
type Estimator struct {
	keywordLimit int
	scorer       Scorer
}

// NewEstimator builds an estimator. A zero keywordLimit falls back to
// DefaultKeywordLimit; a nil scorer falls back to the heuristic scorer.
func NewEstimator(keywordLimit int, scorer Scorer) *Estimator {
	if keywordLimit <= 0 {
		keywordLimit = DefaultKeywordLimit
	}
	if scorer == nil {
		scorer = HeuristicScorer{}
	}
	return &Estimator{keywordLimit: keywordLimit, scorer: scorer}
}

// WordCount counts words with language-aware tokenization: whitespace tokens
// for space-delimited scripts, letter runes for logographic scripts.
func (e *Estimator) WordCount(text, lang string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	if _, logographic := logographicLanguages[lang]; logographic {
		count := 0
		for _, r := range trimmed {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				count++
			}
		}
		return count
	}
	return len(strings.Fields(trimmed))
}

// CharacterCount counts runes, not bytes.
func (e *Estimator) CharacterCount(text string) int {
	return len([]rune(text))
}

// Keywords extracts the top-N frequency-weighted terms, excluding stopwords.
// Order is deterministic: descending frequency, ties by first occurrence.
func (e *Estimator) Keywords(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return []string{}
	}

	type termStat struct {
		term  string
		count int
		first int
	}
	stats := make(map[string]*termStat, len(tokens))
	for i, token := range tokens {
		if isStopword(token) {
			continue
		}
		if len([]rune(token)) < 2 {
			continue
		}
		if stat, seen := stats[token]; seen {
			stat.count++
		} else {
			stats[token] = &termStat{term: token, count: 1, first: i}
		}
	}

	ordered := make([]*termStat, 0, len(stats))
	for _, stat := range stats {
		ordered = append(ordered, stat)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].first < ordered[j].first
	})

	limit := e.keywordLimit
	if limit > len(ordered) {
		limit = len(ordered)
	}
	keywords := make([]string, 0, limit)
	for _, stat := range ordered[:limit] {
		keywords = append(keywords, stat.term)
	}
	return keywords
}

// Readability reports named heuristic metrics for a text. The set is
// deterministic given the same input.
func (e *Estimator) Readability(text, lang string) map[string]float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]float64{}
	}

	sentences := 0
	for _, part := range sentencePattern.Split(trimmed, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	words := e.WordCount(trimmed, lang)
	chars := e.CharacterCount(trimmed)

	metrics := map[string]float64{
		"sentence_count":      float64(sentences),
		"avg_sentence_length": float64(words) / float64(sentences),
	}
	if words > 0 {
		metrics["avg_word_length"] = float64(chars) / float64(words)
	}
	return metrics
}

// Score runs the configured quality scorer. The value is a heuristic in
// [0, 10], not an authoritative quality judgement.
func (e *Estimator) Score(sourceText, translatedText, sourceLang, targetLang string) float64 {
	return e.scorer.Score(sourceText, translatedText, sourceLang, targetLang)
}
