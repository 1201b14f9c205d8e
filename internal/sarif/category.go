package sarif

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// UncategorizedID is the category of results whose rule has no relationship targets.
	UncategorizedID = "__UNCATEGORIZED__"
	// UncategorizedLabel is the display label of UncategorizedID.
	UncategorizedLabel = "Uncategorized"

	categorySeparator = " › "
)

// categoryAcronyms maps upper-cased category segments to their display form.
var categoryAcronyms = map[string]string{
	"CSHARP":     "C#",
	"CS":         "C#",
	"VBNET":      "VB.NET",
	"FSHARP":     "F#",
	"JAVASCRIPT": "JavaScript",
	"TYPESCRIPT": "TypeScript",
	"CPP":        "C++",
}

const maxAcronymLetters = 3

var (
	lowerUpperBoundary  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymWordBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
)

// HumanizeCategory turns a category id such as "JAVASCRIPT.SOME_RULE" into a breadcrumb label
// ("JavaScript › Some Rule").
func HumanizeCategory(categoryID string) string {
	if categoryID == "" || categoryID == UncategorizedID {
		return UncategorizedLabel
	}

	parts := strings.Split(categoryID, ".")
	for i, part := range parts {
		parts[i] = humanizeSegment(part)
	}
	return strings.Join(parts, categorySeparator)
}

func humanizeSegment(segment string) string {
	if label, ok := categoryAcronyms[strings.ToUpper(segment)]; ok {
		return label
	}

	words := strings.ReplaceAll(segment, "_", " ")
	if isShouting(words) {
		return titleShoutingWords(words)
	}

	words = lowerUpperBoundary.ReplaceAllString(words, "${1} ${2}")
	return acronymWordBoundary.ReplaceAllString(words, "${1} ${2}")
}

// titleShoutingWords title-cases each word of an all-caps segment. Words with at most
// maxAcronymLetters letters ("XSS", "CWE") are taken for acronyms and kept.
func titleShoutingWords(segment string) string {
	caser := cases.Title(language.Und)
	words := strings.Split(segment, " ")
	for i, word := range words {
		if letterCount(word) > maxAcronymLetters {
			words[i] = caser.String(word)
		}
	}
	return strings.Join(words, " ")
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// isShouting reports whether s has letters and none of them are lowercase.
func isShouting(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
