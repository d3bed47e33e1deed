// Package qa implements the write paths of the board and fires their side effects.
package qa

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julienpequegnot/qaboard/internal/answer"
	"github.com/julienpequegnot/qaboard/internal/badge"
	"github.com/julienpequegnot/qaboard/internal/database"
	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/notify"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/tag"
	"github.com/julienpequegnot/qaboard/internal/user"
	"github.com/julienpequegnot/qaboard/internal/vote"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyTitle   = errors.New("title is required")
	ErrEmptyContent = errors.New("content is required")
)

type Service struct {
	users      *user.Repository
	questions  *question.Repository
	tags       *tag.Repository
	answers    *answer.Repository
	votes      *vote.Repository
	dispatcher *notify.Dispatcher
	awarder    *badge.Awarder
}

// NewService wires the write paths. dispatcher and awarder may be nil.
func NewService(db *database.DB, dispatcher *notify.Dispatcher, awarder *badge.Awarder) *Service {
	return &Service{
		users:      user.NewRepository(db),
		questions:  question.NewRepository(db),
		tags:       tag.NewRepository(db),
		answers:    answer.NewRepository(db),
		votes:      vote.NewRepository(db),
		dispatcher: dispatcher,
		awarder:    awarder,
	}
}

func (s *Service) Ask(userID int64, title, content string, tags []string) (*question.Question, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	q, err := s.questions.Add(userID, title, content)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Attach(q.ID, normalizeTags(tags)); err != nil {
		if derr := s.questions.Delete(q.ID); derr != nil {
			logging.Error().Err(derr).Int64("question_id", q.ID).Msg("failed to remove untagged question")
		}
		return nil, err
	}

	hydrated, err := s.questions.Get(q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload question: %w", err)
	}

	if s.dispatcher != nil {
		if _, err := s.dispatcher.NotifyNewQuestion(*hydrated); err != nil {
			logging.Warn().Err(err).Int64("question_id", q.ID).Msg("new question notification failed")
		}
	}
	s.checkBadges(userID)
	return hydrated, nil
}

func (s *Service) Answer(questionID, userID int64, content string) (*answer.Answer, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	q, err := s.question(questionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	a, err := s.answers.Add(questionID, userID, content)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.NotifyNewAnswer(*q); err != nil {
			logging.Warn().Err(err).Int64("answer_id", a.ID).Msg("new answer notification failed")
		}
	}
	s.checkBadges(userID)
	return a, nil
}

// Accept marks an answer as the accepted one for its question.
func (s *Service) Accept(answerID int64) (*answer.Answer, error) {
	a, err := s.answers.Get(answerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("answer %d: %w", answerID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := s.answers.Accept(answerID); err != nil {
		return nil, err
	}
	a.IsAccepted = true

	q, err := s.question(a.QuestionID)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.NotifyAcceptedAnswer(*a, *q); err != nil {
			logging.Warn().Err(err).Int64("answer_id", a.ID).Msg("accepted answer notification failed")
		}
	}
	s.checkBadges(a.UserID)
	return a, nil
}

// Vote records userID's vote on a question. It reports false for a repeat vote.
func (s *Service) Vote(questionID, userID int64) (bool, error) {
	q, err := s.question(questionID)
	if err != nil {
		return false, err
	}
	if err := s.requireUser(userID); err != nil {
		return false, err
	}

	created, err := s.votes.Cast(questionID, userID)
	if err != nil || !created {
		return created, err
	}

	s.checkBadges(userID)
	if q.UserID != userID {
		s.checkBadges(q.UserID)
	}
	return true, nil
}

func (s *Service) question(id int64) (*question.Question, error) {
	q, err := s.questions.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return q, err
}

func (s *Service) requireUser(id int64) error {
	_, err := s.users.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return err
}

func (s *Service) checkBadges(userID int64) {
	if s.awarder == nil {
		return
	}
	if _, err := s.awarder.CheckAndAward(userID); err != nil {
		logging.Warn().Err(err).Int64("user_id", userID).Msg("badge check failed")
	}
}

// normalizeTags trims names, dropping blanks and repeats. Case is kept.
func normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
