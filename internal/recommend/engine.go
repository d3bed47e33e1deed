// Package recommend ranks questions related to a question or of interest to a user.
package recommend

import (
	"database/sql"
	"errors"
	"sort"

	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/scorer"
	"github.com/julienpequegnot/qaboard/internal/user"
)

type Questions interface {
	Get(id int64) (*question.Question, error)
	ListAll() ([]question.Question, error)
	ListExcept(id int64) ([]question.Question, error)
	ListExcluding(ids []int64) ([]question.Question, error)
	ListByUser(userID int64) ([]question.Question, error)
	ListAnsweredBy(userID int64) ([]question.Question, error)
}

type Users interface {
	Get(id int64) (*user.User, error)
}

type Links interface {
	Upsert(questionIDA, questionIDB int64, strength float64) error
}

// Scored pairs a question with the score that ranked it.
type Scored struct {
	Question question.Question
	Score    float64
}

type Engine struct {
	questions Questions
	users     Users
	links     Links
	cfg       config.ScoringConfig
}

func NewEngine(questions Questions, users Users, links Links, cfg config.ScoringConfig) *Engine {
	return &Engine{questions: questions, users: users, links: links, cfg: cfg}
}

// SimilarQuestions ranks every other question by keyword overlap with questionID.
func (e *Engine) SimilarQuestions(questionID int64, limit int) ([]Scored, error) {
	current, err := e.questions.Get(questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	candidates, err := e.questions.ListExcept(questionID)
	if err != nil {
		return nil, err
	}

	target := scorer.ExtractKeywords(current.Text())
	var results []Scored
	for _, q := range candidates {
		similarity := scorer.KeywordSimilarity(target, scorer.ExtractKeywords(q.Text()))
		if similarity > e.cfg.SimilarThreshold {
			results = append(results, Scored{Question: q, Score: similarity})
		}
	}

	return top(results, limit), nil
}

// ForUser recommends questions the user has neither asked nor answered,
// blending overlap with the user's tags and question popularity.
func (e *Engine) ForUser(userID int64, limit int) ([]Scored, error) {
	if _, err := e.users.Get(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	authored, err := e.questions.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	answered, err := e.questions.ListAnsweredBy(userID)
	if err != nil {
		return nil, err
	}

	userTags := make(map[string]bool)
	var seen []int64
	for _, q := range append(authored, answered...) {
		for _, t := range q.Tags {
			userTags[t] = true
		}
		seen = append(seen, q.ID)
	}

	candidates, err := e.questions.ListExcluding(seen)
	if err != nil {
		return nil, err
	}

	w := e.cfg.Recommend
	var results []Scored
	for _, q := range candidates {
		tagSimilarity := TagOverlap(userTags, q.Tags)
		popularity := scorer.Popularity(q.AnswerCount, q.VoteCount, e.cfg.Popularity)
		score := tagSimilarity*w.Tags + popularity*w.Popularity
		if score > w.Threshold {
			results = append(results, Scored{Question: q, Score: score})
		}
	}

	return top(results, limit), nil
}

// TagOverlap is |user ∩ candidate| / max(|user|, |candidate|, 1).
func TagOverlap(userTags map[string]bool, candidate []string) float64 {
	distinct := make(map[string]bool, len(candidate))
	common := 0
	for _, t := range candidate {
		if distinct[t] {
			continue
		}
		distinct[t] = true
		if userTags[t] {
			common++
		}
	}
	return float64(common) / float64(max(len(userTags), len(distinct), 1))
}

// RefreshLinks stores every pair of questions whose similarity exceeds
// threshold and returns how many pairs were written.
func (e *Engine) RefreshLinks(threshold float64) (int, error) {
	all, err := e.questions.ListAll()
	if err != nil {
		return 0, err
	}

	keywords := make([]map[string]int, len(all))
	for i, q := range all {
		keywords[i] = scorer.ExtractKeywords(q.Text())
	}

	written := 0
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			similarity := scorer.KeywordSimilarity(keywords[i], keywords[j])
			if similarity <= threshold {
				continue
			}
			if err := e.links.Upsert(all[i].ID, all[j].ID, similarity); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

func top(results []Scored, limit int) []Scored {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
