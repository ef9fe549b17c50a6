package util

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	entityReplacer = strings.NewReplacer("&nbsp;", "", "&amp;", "")
	reZeroWidth    = regexp.MustCompile("\u200b")
)

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// StripEntities removes the two entity spellings the portal leaks into plain
// text fields. Nothing else is decoded.
func StripEntities(s string) string {
	return entityReplacer.Replace(s)
}

func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func RemoveZeroWidth(s string) string {
	return reZeroWidth.ReplaceAllString(s, "")
}

// StripPunctuation keeps letters, numbers, underscores and whitespace.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// StripPunctuationStrict is StripPunctuation that also drops underscores,
// used for title and alias values.
func StripPunctuationStrict(s string) string {
	return strings.ReplaceAll(StripPunctuation(s), "_", "")
}

// CleanText is the shared plain-text pipeline: entities, whitespace runs, trim.
func CleanText(s string) string {
	return CollapseSpaces(StripEntities(s))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
