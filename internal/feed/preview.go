package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Preview renders HTML content as plain text, cut to at most max runes.
func Preview(html string, max int) string {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}

	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if max > 0 && len(runes) > max {
		return strings.TrimSpace(string(runes[:max])) + "..."
	}
	return text
}
