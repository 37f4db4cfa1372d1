package composer

import (
	"strings"

	"golang.org/x/text/language"
)

// Language selects the label set and reading direction of a message.
type Language string

const (
	French Language = "fr"
	Hebrew Language = "he"

	// DefaultLanguage is used when the caller gives no usable hint.
	DefaultLanguage = French
)

// Languages lists the supported languages, default first.
var Languages = []Language{French, Hebrew}

var matcher = language.NewMatcher([]language.Tag{language.French, language.Hebrew})

// ParseLanguage accepts "fr", "he" and regional variants such as "fr-FR" or
// "he-IL". The legacy "iw" code for Hebrew is accepted too.
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "fr":
		return French, true
	case "he", "iw":
		return Hebrew, true
	}
	return "", false
}

// NegotiateLanguage picks a supported language from an Accept-Language
// header, falling back to DefaultLanguage.
func NegotiateLanguage(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return Languages[index]
}

// Direction returns "ltr" or "rtl".
func (l Language) Direction() string {
	return labelsFor(l).Direction
}

// Placeholder is the token substituted for blank display fields.
func (l Language) Placeholder() string {
	return labelsFor(l).Placeholder
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}
