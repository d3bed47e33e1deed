package recommend

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/julienpequegnot/qaboard/internal/answer"
	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/database"
	"github.com/julienpequegnot/qaboard/internal/link"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/tag"
	"github.com/julienpequegnot/qaboard/internal/user"
	"github.com/julienpequegnot/qaboard/internal/vote"
)

type fixture struct {
	db        *database.DB
	users     *user.Repository
	questions *question.Repository
	tags      *tag.Repository
	answers   *answer.Repository
	votes     *vote.Repository
	links     *link.Repository
	engine    *Engine
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:        db,
		users:     user.NewRepository(db),
		questions: question.NewRepository(db),
		tags:      tag.NewRepository(db),
		answers:   answer.NewRepository(db),
		votes:     vote.NewRepository(db),
		links:     link.NewRepository(db),
	}
	f.engine = NewEngine(f.questions, f.users, f.links, config.Default().Scoring)
	return f
}

func (f *fixture) ask(t *testing.T, userID int64, title, content string, tags ...string) int64 {
	t.Helper()
	q, err := f.questions.Add(userID, title, content)
	if err != nil {
		t.Fatalf("failed to add question: %v", err)
	}
	if err := f.tags.Attach(q.ID, tags); err != nil {
		t.Fatalf("failed to tag question: %v", err)
	}
	return q.ID
}

func TestSimilarQuestions(t *testing.T) {
	f := setup(t)
	alice, _ := f.users.Add("alice", "")

	target := f.ask(t, alice.ID, "Flask routing with blueprints", "How do blueprints register routes in flask?")
	near := f.ask(t, alice.ID, "Flask blueprints", "Registering routes with blueprints")
	f.ask(t, alice.ID, "Rust lifetimes", "Borrow checker complains about lifetimes")

	results, err := f.engine.SimilarQuestions(target, 5)
	if err != nil {
		t.Fatalf("failed to find similar: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 similar question, got %d", len(results))
	}
	if results[0].Question.ID != near {
		t.Errorf("expected question %d, got %d", near, results[0].Question.ID)
	}
	if results[0].Score <= 0.1 || results[0].Score > 1 {
		t.Errorf("unexpected score %f", results[0].Score)
	}
}

func TestSimilarQuestionsNoOverlap(t *testing.T) {
	f := setup(t)
	alice, _ := f.users.Add("alice", "")

	target := f.ask(t, alice.ID, "Kubernetes ingress", "nginx controller annotations")
	f.ask(t, alice.ID, "Pandas dataframe", "merge columns")

	results, err := f.engine.SimilarQuestions(target, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSimilarQuestionsUnknownID(t *testing.T) {
	f := setup(t)

	results, err := f.engine.SimilarQuestions(999, 5)
	if err != nil {
		t.Fatalf("expected no error for unknown question, got %v", err)
	}
	if results != nil {
		t.Errorf("expected empty result, got %v", results)
	}
}

func TestForUser(t *testing.T) {
	f := setup(t)
	alice, _ := f.users.Add("alice", "")
	bob, _ := f.users.Add("bob", "")

	own := f.ask(t, alice.ID, "My python question", "", "python", "flask")
	answeredByAlice := f.ask(t, bob.ID, "Bob asks about databases", "", "database")
	f.answers.Add(answeredByAlice, alice.ID, "Use an index")

	match := f.ask(t, bob.ID, "Flask sessions", "", "python", "flask")
	partial := f.ask(t, bob.ID, "SQL joins", "", "database", "sql")
	f.ask(t, bob.ID, "Rust", "", "rust")

	results, err := f.engine.ForUser(alice.ID, 10)
	if err != nil {
		t.Fatalf("failed to recommend: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 recommendations, got %d: %+v", len(results), results)
	}
	if results[0].Question.ID != match {
		t.Errorf("expected best match %d first, got %d", match, results[0].Question.ID)
	}
	// user tags {python, flask, database}: 2/3 * 0.7
	if math.Abs(results[0].Score-0.7*2.0/3.0) > 1e-9 {
		t.Errorf("unexpected score %f", results[0].Score)
	}
	if results[1].Question.ID != partial {
		t.Errorf("expected %d second, got %d", partial, results[1].Question.ID)
	}
	for _, r := range results {
		if r.Question.ID == own || r.Question.ID == answeredByAlice {
			t.Errorf("recommended question %d the user already touched", r.Question.ID)
		}
	}
}

func TestForUserPopularityAlone(t *testing.T) {
	f := setup(t)
	alice, _ := f.users.Add("alice", "")
	bob, _ := f.users.Add("bob", "")
	carol, _ := f.users.Add("carol", "")

	busy := f.ask(t, bob.ID, "Busy question", "", "go")
	for i := 0; i < 4; i++ {
		f.answers.Add(busy, carol.ID, "answer")
	}
	f.votes.Cast(busy, carol.ID)

	results, err := f.engine.ForUser(alice.ID, 10)
	if err != nil {
		t.Fatalf("failed to recommend: %v", err)
	}
	// 0.3 * (4*0.1 + 1*0.05) = 0.135
	if len(results) != 1 || math.Abs(results[0].Score-0.135) > 1e-9 {
		t.Errorf("expected one popularity-driven result scoring 0.135, got %+v", results)
	}
}

func TestForUserUnknown(t *testing.T) {
	f := setup(t)

	results, err := f.engine.ForUser(42, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %d", len(results))
	}
}

func TestTagOverlap(t *testing.T) {
	userTags := map[string]bool{"go": true, "sql": true}

	if got := TagOverlap(userTags, []string{"go", "sql", "http", "json"}); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := TagOverlap(map[string]bool{}, nil); got != 0 {
		t.Errorf("expected 0 with no tags, got %f", got)
	}
}

func TestRefreshLinks(t *testing.T) {
	f := setup(t)
	alice, _ := f.users.Add("alice", "")

	a := f.ask(t, alice.ID, "Docker compose networking", "containers cannot reach each other")
	b := f.ask(t, alice.ID, "Docker networking between containers", "compose setup")
	f.ask(t, alice.ID, "Unrelated", "gardening tips")

	written, err := f.engine.RefreshLinks(0.1)
	if err != nil {
		t.Fatalf("failed to refresh links: %v", err)
	}
	if written != 1 {
		t.Errorf("expected 1 link, got %d", written)
	}

	related, _ := f.links.RelatedIDs(a, 5)
	if len(related) != 1 || related[0] != b {
		t.Errorf("expected %d related to %d, got %v", b, a, related)
	}
}
