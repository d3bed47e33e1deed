package scorer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	markupPattern  = regexp.MustCompile(`<[^>]+>`)
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"can": true, "could": true, "should": true, "may": true, "might": true, "must": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "what": true, "which": true, "who": true, "when": true, "where": true,
	"why": true, "how": true, "this": true, "that": true, "these": true, "those": true,
	"am": true,
}

// ExtractKeywords counts the significant lower-cased tokens of text.
// Markup tags and punctuation are discarded, as are stop words and
// tokens shorter than three characters.
func ExtractKeywords(text string) map[string]int {
	text = markupPattern.ReplaceAllString(text, " ")
	text = nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	keywords := make(map[string]int)
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) < 3 || stopWords[word] {
			continue
		}
		keywords[word]++
	}
	return keywords
}
