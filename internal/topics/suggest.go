package topics

import (
	"strings"

	"github.com/julienpequegnot/qaboard/internal/tag"
)

var keywordTags = []struct {
	keyword string
	tags    []string
}{
	{"python", []string{"python", "programming"}},
	{"javascript", []string{"javascript", "web-development", "frontend"}},
	{"react", []string{"react", "javascript", "frontend"}},
	{"flask", []string{"flask", "python", "web-development"}},
	{"django", []string{"django", "python", "web-development"}},
	{"sql", []string{"sql", "database"}},
	{"database", []string{"database", "sql"}},
	{"api", []string{"api", "rest", "backend"}},
	{"html", []string{"html", "frontend", "web-development"}},
	{"css", []string{"css", "frontend", "web-development"}},
	{"docker", []string{"docker", "devops", "containers"}},
	{"git", []string{"git", "version-control"}},
	{"machine learning", []string{"machine-learning", "ai", "python"}},
	{"ai", []string{"ai", "machine-learning"}},
	{"security", []string{"security", "authentication"}},
	{"testing", []string{"testing", "unit-testing"}},
	{"performance", []string{"performance", "optimization"}},
}

// CandidateTags lists tag names whose keyword occurs anywhere in the text,
// without duplicates, in table order. Matching is by plain substring, so
// "ai" also fires inside "email".
func CandidateTags(title, content string) []string {
	text := strings.ToLower(title + " " + content)

	seen := make(map[string]bool)
	var names []string
	for _, entry := range keywordTags {
		if !strings.Contains(text, entry.keyword) {
			continue
		}
		for _, name := range entry.tags {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

type Suggester struct {
	tags Tags
}

func NewSuggester(tags Tags) *Suggester {
	return &Suggester{tags: tags}
}

// Suggest truncates the candidates to limit, then keeps only those that exist as tags.
func (s *Suggester) Suggest(title, content string, limit int) ([]tag.Tag, error) {
	names := CandidateTags(title, content)
	if limit >= 0 && len(names) > limit {
		names = names[:limit]
	}

	var found []tag.Tag
	for _, name := range names {
		t, err := s.tags.FindByName(name)
		if err != nil {
			return nil, err
		}
		if t != nil {
			found = append(found, *t)
		}
	}
	return found, nil
}
