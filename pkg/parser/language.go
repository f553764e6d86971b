package parser

import (
	"strings"
)

// Language represents the language of a component script block.
type Language int

const (
	// LanguageTypeScript represents TypeScript (lang="ts", "typescript" or "tsx")
	LanguageTypeScript Language = iota
	// LanguageJavaScript represents plain JavaScript (no lang attribute, "js", "jsx")
	LanguageJavaScript
	// LanguageUnknown represents any other lang value (coffee, livescript, ...)
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// IsStaticallyTyped reports whether scripts in this language qualify for
// extraction.
func (l Language) IsStaticallyTyped() bool {
	return l == LanguageTypeScript
}

// FromScriptLang maps the lang attribute of a <script> block to a Language.
// The second return value is true when the TSX grammar must be used.
//
// A missing lang attribute means JavaScript, matching how Vue tooling treats
// <script> without lang.
func FromScriptLang(tag string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "ts", "typescript":
		return LanguageTypeScript, false
	case "tsx":
		return LanguageTypeScript, true
	case "", "js", "javascript", "jsx":
		return LanguageJavaScript, false
	default:
		return LanguageUnknown, false
	}
}

// ParseLanguageString converts a language string to a Language type.
// Returns LanguageUnknown if the string is not recognized.
func ParseLanguageString(lang string) Language {
	switch strings.ToLower(lang) {
	case "typescript", "ts":
		return LanguageTypeScript
	case "javascript", "js":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// SupportedLanguages returns the languages ParserManager has grammars for.
func SupportedLanguages() []Language {
	return []Language{
		LanguageTypeScript,
	}
}
