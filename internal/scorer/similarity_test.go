package scorer

import (
	"math"
	"testing"
)

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("database indexes explained", "database indexes explained"); got != 1.0 {
		t.Errorf("expected 1.0, got %f", got)
	}
	if got := Similarity("is it", "is it"); got != 0 {
		t.Errorf("expected 0 for text without keywords, got %f", got)
	}
}

func TestSimilarityIsSymmetricAndBounded(t *testing.T) {
	texts := []string{
		"",
		"python flask routing",
		"flask blueprints and routing in python",
		"rust ownership rules",
		"<code>SELECT * FROM users</code> sql users",
	}

	for _, a := range texts {
		for _, b := range texts {
			ab := Similarity(a, b)
			ba := Similarity(b, a)
			if ab != ba {
				t.Errorf("asymmetric: Similarity(%q, %q)=%f vs %f", a, b, ab, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("out of range: Similarity(%q, %q)=%f", a, b, ab)
			}
		}
	}
}

func TestSimilarityJaccard(t *testing.T) {
	// {python, flask, routing} vs {flask, blueprints, routing, python}
	got := Similarity("python flask routing", "flask blueprints and routing in python")
	if math.Abs(got-0.75) > 1e-9 {
		t.Errorf("expected 0.75, got %f", got)
	}

	if got := Similarity("python flask", "rust cargo"); got != 0 {
		t.Errorf("expected 0 for disjoint texts, got %f", got)
	}
}
