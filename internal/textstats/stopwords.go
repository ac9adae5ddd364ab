package textstats

// Keyword extraction skips these high-frequency function words. The set mixes
// English and Chinese terms because those are the dominant language pairs.
var stopwords = map[string]struct{}{
	// English
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "it": {}, "its": {},
	"you": {}, "your": {}, "we": {}, "our": {}, "they": {}, "their": {},
	"he": {}, "she": {}, "his": {}, "her": {}, "not": {}, "no": {},
	"as": {}, "if": {}, "so": {}, "than": {}, "then": {}, "there": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "how": {},
	"all": {}, "any": {}, "both": {}, "each": {}, "from": {}, "into": {},
	"about": {}, "more": {}, "most": {}, "other": {}, "some": {}, "such": {},

	// Chinese
	"的": {}, "了": {}, "在": {}, "是": {}, "我": {}, "你": {},
	"他": {}, "她": {}, "它": {}, "们": {}, "和": {}, "与": {},
	"或": {}, "但": {}, "如果": {}, "因为": {}, "这": {}, "那": {},
	"也": {}, "都": {}, "很": {}, "就": {},
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
