package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/metrics"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/user"
)

type Users interface {
	Ensure(username, email string) (*user.User, error)
}

type Questions interface {
	Exists(title string) (bool, error)
	AddAt(userID int64, title, content string, createdAt time.Time) (*question.Question, error)
	Delete(id int64) error
}

type Tags interface {
	Attach(questionID int64, names []string) error
}

// Result summarises one import run.
type Result struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer stores feed entries as questions owned by a single import user.
type Importer struct {
	fetcher   *Fetcher
	users     Users
	questions Questions
	tags      Tags
	username  string
}

func NewImporter(fetcher *Fetcher, users Users, questions Questions, tags Tags, username string) *Importer {
	return &Importer{
		fetcher:   fetcher,
		users:     users,
		questions: questions,
		tags:      tags,
		username:  username,
	}
}

// Import fetches feedURL and adds every entry whose title is not stored yet.
func (i *Importer) Import(ctx context.Context, feedURL string) (Result, error) {
	var res Result

	entries, err := i.fetcher.FetchFeed(ctx, feedURL)
	if err != nil {
		return res, err
	}
	res.Fetched = len(entries)

	owner, err := i.users.Ensure(i.username, "")
	if err != nil {
		return res, fmt.Errorf("failed to ensure import user: %w", err)
	}

	for _, e := range entries {
		if e.Title == "" {
			res.Skipped++
			continue
		}
		exists, err := i.questions.Exists(e.Title)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}

		q, err := i.questions.AddAt(owner.ID, e.Title, e.Content, e.PublishedAt)
		if err != nil {
			return res, err
		}
		if err := i.tags.Attach(q.ID, e.Categories); err != nil {
			if derr := i.questions.Delete(q.ID); derr != nil {
				logging.Error().Err(derr).Int64("question_id", q.ID).Msg("failed to remove untagged question")
			}
			return res, err
		}
		res.Imported++
		metrics.FeedItemsImported.WithLabelValues(feedURL).Inc()
	}

	logging.Info().
		Str("feed", feedURL).
		Int("fetched", res.Fetched).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("feed imported")
	return res, nil
}
