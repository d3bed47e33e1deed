// Package search ranks free-text query hits by blended relevance.
package search

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/scorer"
	"github.com/julienpequegnot/qaboard/internal/tag"
)

type Questions interface {
	SearchText(query string) ([]question.Question, error)
	ListByTags(tagIDs []int64) ([]question.Question, error)
}

type Tags interface {
	MatchFold(name string) ([]tag.Tag, error)
}

// Result carries the final score and the signals it was blended from.
type Result struct {
	Question          question.Question
	Score             float64
	TitleSimilarity   float64
	ContentSimilarity float64
	Popularity        float64
	Recency           float64
}

type Ranker struct {
	questions Questions
	tags      Tags
	cfg       config.ScoringConfig
	now       func() time.Time
}

func NewRanker(questions Questions, tags Tags, cfg config.ScoringConfig) *Ranker {
	return &Ranker{
		questions: questions,
		tags:      tags,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Search returns up to limit questions matching query, best first. userID is
// accepted for personalisation but does not affect ranking yet.
func (r *Ranker) Search(query string, userID int64, limit int) ([]Result, error) {
	candidates, err := r.candidates(query)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	results := make([]Result, 0, len(candidates))
	for _, q := range candidates {
		results = append(results, r.rank(query, q, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// candidates unions substring hits with questions carrying a tag named query.
func (r *Ranker) candidates(query string) ([]question.Question, error) {
	byText, err := r.questions.SearchText(query)
	if err != nil {
		return nil, err
	}

	tags, err := r.tags.MatchFold(query)
	if err != nil {
		return nil, err
	}
	var byTag []question.Question
	if len(tags) > 0 {
		ids := make([]int64, len(tags))
		for i, t := range tags {
			ids[i] = t.ID
		}
		if byTag, err = r.questions.ListByTags(ids); err != nil {
			return nil, err
		}
	}

	seen := make(map[int64]bool, len(byText)+len(byTag))
	var merged []question.Question
	for _, q := range append(byText, byTag...) {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		merged = append(merged, q)
	}
	return merged, nil
}

func (r *Ranker) rank(query string, q question.Question, now time.Time) Result {
	w := r.cfg.Search
	lowerQuery := strings.ToLower(query)

	titleSim := scorer.Similarity(query, q.Title)
	if strings.Contains(strings.ToLower(q.Title), lowerQuery) {
		titleSim *= w.TitleBoost
	}
	contentSim := scorer.Similarity(query, q.Content)
	if strings.Contains(strings.ToLower(q.Content), lowerQuery) {
		contentSim *= w.ContentBoost
	}

	popularity := scorer.Popularity(q.AnswerCount, q.VoteCount, r.cfg.Popularity)
	recency := Recency(now.Sub(q.CreatedAt), w.RecencyDays)

	return Result{
		Question:          q,
		Score:             titleSim*w.Title + contentSim*w.Content + popularity*w.Popularity + recency*w.Recency,
		TitleSimilarity:   titleSim,
		ContentSimilarity: contentSim,
		Popularity:        popularity,
		Recency:           recency,
	}
}

// Recency decays linearly from 1 to 0 over horizonDays whole days of age.
func Recency(age time.Duration, horizonDays int) float64 {
	if horizonDays <= 0 {
		return 0
	}
	days := math.Floor(age.Hours() / 24)
	return math.Max(0, 1-days/float64(horizonDays))
}
