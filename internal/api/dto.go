package api

import (
	"time"

	"github.com/julienpequegnot/qaboard/internal/answer"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/recommend"
	"github.com/julienpequegnot/qaboard/internal/scorer"
	"github.com/julienpequegnot/qaboard/internal/search"
	"github.com/julienpequegnot/qaboard/internal/tag"
	"github.com/julienpequegnot/qaboard/internal/topics"
)

type questionJSON struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
	AnswerCount int       `json:"answer_count"`
	VoteCount   int       `json:"vote_count"`
}

func toQuestion(q question.Question) questionJSON {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return questionJSON{
		ID:          q.ID,
		UserID:      q.UserID,
		Title:       q.Title,
		Content:     q.Content,
		CreatedAt:   q.CreatedAt,
		Tags:        tags,
		AnswerCount: q.AnswerCount,
		VoteCount:   q.VoteCount,
	}
}

func toQuestions(qs []question.Question) []questionJSON {
	out := make([]questionJSON, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestion(q))
	}
	return out
}

type scoredJSON struct {
	Question questionJSON `json:"question"`
	Score    float64      `json:"score"`
}

func toScored(results []recommend.Scored) []scoredJSON {
	out := make([]scoredJSON, 0, len(results))
	for _, s := range results {
		out = append(out, scoredJSON{Question: toQuestion(s.Question), Score: s.Score})
	}
	return out
}

type searchJSON struct {
	Question          questionJSON `json:"question"`
	Score             float64      `json:"score"`
	TitleSimilarity   float64      `json:"title_similarity"`
	ContentSimilarity float64      `json:"content_similarity"`
	Popularity        float64      `json:"popularity"`
	Recency           float64      `json:"recency"`
}

func toSearch(results []search.Result) []searchJSON {
	out := make([]searchJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchJSON{
			Question:          toQuestion(r.Question),
			Score:             r.Score,
			TitleSimilarity:   r.TitleSimilarity,
			ContentSimilarity: r.ContentSimilarity,
			Popularity:        r.Popularity,
			Recency:           r.Recency,
		})
	}
	return out
}

type trendJSON struct {
	Tag      string         `json:"tag"`
	Activity int            `json:"activity"`
	Samples  []questionJSON `json:"recent_questions"`
}

func toTrends(trends []topics.Trend) []trendJSON {
	out := make([]trendJSON, 0, len(trends))
	for _, t := range trends {
		out = append(out, trendJSON{Tag: t.Tag.Name, Activity: t.Activity, Samples: toQuestions(t.Samples)})
	}
	return out
}

type tagJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTags(tags []tag.Tag) []tagJSON {
	out := make([]tagJSON, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagJSON{ID: t.ID, Name: t.Name})
	}
	return out
}

type checkJSON struct {
	Name   string  `json:"name"`
	Bonus  float64 `json:"bonus"`
	Passed bool    `json:"passed"`
}

type qualityJSON struct {
	QuestionID int64       `json:"question_id"`
	Score      float64     `json:"score"`
	Checks     []checkJSON `json:"checks"`
}

func toQuality(questionID int64, report scorer.QualityReport) qualityJSON {
	checks := make([]checkJSON, 0, len(report.Checks))
	for _, c := range report.Checks {
		checks = append(checks, checkJSON{Name: c.Name, Bonus: c.Bonus, Passed: c.Passed})
	}
	return qualityJSON{QuestionID: questionID, Score: report.Score, Checks: checks}
}

type answerJSON struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	UserID     int64     `json:"user_id"`
	Content    string    `json:"content"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAnswer(a answer.Answer) answerJSON {
	return answerJSON{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		UserID:     a.UserID,
		Content:    a.Content,
		IsAccepted: a.IsAccepted,
		CreatedAt:  a.CreatedAt,
	}
}

type askRequest struct {
	UserID  int64    `json:"user_id" validate:"required,gt=0"`
	Title   string   `json:"title" validate:"required,max=300"`
	Content string   `json:"content" validate:"max=50000"`
	Tags    []string `json:"tags" validate:"max=10,dive,max=50"`
}

type answerRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=50000"`
}

type voteRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

type suggestRequest struct {
	Title   string `json:"title" validate:"max=300"`
	Content string `json:"content" validate:"max=50000"`
	Limit   int    `json:"limit" validate:"omitempty,min=1,max=20"`
}
