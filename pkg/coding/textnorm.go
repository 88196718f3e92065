package coding

import (
	"regexp"
	"strings"
)

var (
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// stopwords is the lightweight set removed before matching. Both
// triggers and response text pass through the same normalization, so
// removal never breaks a phrase on one side only.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "we": {}, "with": {},
}

// Normalize lowercases text, strips punctuation with Unicode awareness,
// collapses whitespace, and removes a small stopword set. Trigger
// matching operates on normalized text, which makes it case-insensitive
// and robust to punctuation variants ("burned-out" matches "burned out").
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	noPunct := nonWordRe.ReplaceAllString(lowered, " ")
	squeezed := strings.TrimSpace(spacesRe.ReplaceAllString(noPunct, " "))
	if squeezed == "" {
		return ""
	}

	tokens := strings.Split(squeezed, " ")
	filtered := tokens[:0]
	for _, tok := range tokens {
		if _, ok := stopwords[tok]; ok {
			continue
		}
		filtered = append(filtered, tok)
	}
	return strings.Join(filtered, " ")
}
