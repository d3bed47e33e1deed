package scorer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Check is one rule of the quality rubric.
type Check struct {
	Name   string
	Bonus  float64
	Passed bool
}

// QualityReport lists every rubric rule and the clamped total.
type QualityReport struct {
	Score  float64
	Checks []Check
}

// Quality scores a question's form in [0, 1]. It never looks at answers or votes.
func Quality(title, content string, tagCount int) float64 {
	return AnalyzeQuality(title, content, tagCount).Score
}

func AnalyzeQuality(title, content string, tagCount int) QualityReport {
	titleWords := len(strings.Fields(title))
	contentWords := len(strings.Fields(content))

	checks := []Check{
		{"title length", 0.2, titleWords >= 5 && titleWords <= 15},
		{"detailed body", 0.2, contentWords >= 20},
		{"code sample", 0.1, strings.Contains(content, "```") || strings.Contains(content, "<code>")},
		{"asks a question", 0.1, strings.Contains(title, "?")},
		{"tagged", 0.1, tagCount >= 2},
		{"long body", 0.1, utf8.RuneCountInString(content) > 100},
		{"well formed title", 0.1, wellFormed(title)},
	}

	var score float64
	for _, c := range checks {
		if c.Passed {
			score += c.Bonus
		}
	}
	if score > 1.0 {
		score = 1.0
	}

	return QualityReport{Score: score, Checks: checks}
}

// wellFormed reports whether the title starts upper-case and ends with '?' or '.'.
func wellFormed(title string) bool {
	if title == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(title)
	last := title[len(title)-1]
	return unicode.IsUpper(first) && (last == '?' || last == '.')
}
