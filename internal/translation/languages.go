package translation

import (
	"sort"

	"verba.fyi/verba/internal/language"
)

// LanguageOption is one selectable language exposed to API consumers.
type LanguageOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type languageLabel struct {
	english string
	native  string
}

var supportedLanguageLabels = map[string]languageLabel{
	"ar": {english: "Arabic", native: "العربية"},
	"cs": {english: "Czech", native: "Čeština"},
	"de": {english: "German", native: "Deutsch"},
	"en": {english: "English", native: "English"},
	"es": {english: "Spanish", native: "Español"},
	"fr": {english: "French", native: "Français"},
	"hi": {english: "Hindi", native: "हिन्दी"},
	"id": {english: "Indonesian", native: "Bahasa Indonesia"},
	"it": {english: "Italian", native: "Italiano"},
	"ja": {english: "Japanese", native: "日本語"},
	"ko": {english: "Korean", native: "한국어"},
	"nl": {english: "Dutch", native: "Nederlands"},
	"pl": {english: "Polish", native: "Polski"},
	"pt": {english: "Portuguese", native: "Português"},
	"ru": {english: "Russian", native: "Русский"},
	"sv": {english: "Swedish", native: "Svenska"},
	"th": {english: "Thai", native: "ไทย"},
	"tr": {english: "Turkish", native: "Türkçe"},
	"uk": {english: "Ukrainian", native: "Українська"},
	"vi": {english: "Vietnamese", native: "Tiếng Việt"},
	"zh": {english: "Chinese", native: "中文"},
}

// SupportedLanguageCodes returns the sorted ISO 639-1 codes the core accepts.
func SupportedLanguageCodes() []string {
	codes := make([]string, 0, len(supportedLanguageLabels))
	for code := range supportedLanguageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsSupportedLanguage reports whether a normalized code is accepted.
func IsSupportedLanguage(code string) bool {
	_, ok := supportedLanguageLabels[language.NormalizeCode(code)]
	return ok
}

// LanguageOptions lists selectable languages for API consumers, "auto" first.
func LanguageOptions() []LanguageOption {
	options := make([]LanguageOption, 0, len(supportedLanguageLabels)+1)
	options = append(options, LanguageOption{Code: LangAuto, Label: "Auto detect"})
	for _, code := range SupportedLanguageCodes() {
		options = append(options, LanguageOption{
			Code:  code,
			Label: supportedLanguageLabels[code].english,
		})
	}
	return options
}

// LanguageName returns the English name for a supported code. Unknown codes
// fall back to the code itself.
func LanguageName(code string) string {
	if labels, ok := supportedLanguageLabels[language.NormalizeCode(code)]; ok {
		return labels.english
	}
	return code
}
