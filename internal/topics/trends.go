package topics

import (
	"sort"
	"time"

	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/tag"
)

type Questions interface {
	ListCreatedSince(cutoff time.Time) ([]question.Question, error)
	RecentByTag(tagID int64, limit int) ([]question.Question, error)
}

type Tags interface {
	FindByName(name string) (*tag.Tag, error)
}

type Trend struct {
	Tag      tag.Tag
	Activity int
	Samples  []question.Question
}

// Aggregator counts engagement-weighted tag activity over a recent window.
type Aggregator struct {
	questions Questions
	tags      Tags
	samples   int
	now       func() time.Time
}

func NewAggregator(questions Questions, tags Tags, samples int) *Aggregator {
	return &Aggregator{
		questions: questions,
		tags:      tags,
		samples:   samples,
		now:       time.Now,
	}
}

// Trending returns the most active tags of the last days, each question
// adding its answer count plus one to every tag it carries.
func (a *Aggregator) Trending(days, limit int) ([]Trend, error) {
	cutoff := a.now().UTC().AddDate(0, 0, -days)
	recent, err := a.questions.ListCreatedSince(cutoff)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, q := range recent {
		for _, name := range q.Tags {
			if _, ok := counts[name]; !ok {
				order = append(order, name)
			}
			counts[name] += q.AnswerCount + 1
		}
	}

	// ties keep first-seen order
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}

	trends := make([]Trend, 0, len(order))
	for _, name := range order {
		t, err := a.tags.FindByName(name)
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}
		samples, err := a.questions.RecentByTag(t.ID, a.samples)
		if err != nil {
			return nil, err
		}
		trends = append(trends, Trend{Tag: *t, Activity: counts[name], Samples: samples})
	}
	return trends, nil
}
