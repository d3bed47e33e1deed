package badge

import (
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/metrics"
	"github.com/julienpequegnot/qaboard/internal/user"
)

type Users interface {
	Get(id int64) (*user.User, error)
	List() ([]user.User, error)
	Stats(id int64) (*user.Stats, error)
}

// Store is the badge persistence the awarder needs; *Repository satisfies it.
type Store interface {
	List() ([]Badge, error)
	EarnedIDs(userID int64) (map[int64]bool, error)
	Award(userID, badgeID int64) (bool, error)
}

type Notifier interface {
	NotifyBadgeEarned(userID int64, badgeName string) error
}

// Reputation is 5 points per vote received plus 15 per accepted answer.
func Reputation(s user.Stats) int {
	return 5*s.VotesReceived + 15*s.AcceptedAnswers
}

type Awarder struct {
	users            Users
	badges           Store
	notifier         Notifier
	earlyAdopterDays int
	now              func() time.Time
}

func NewAwarder(users Users, badges Store, notifier Notifier, earlyAdopterDays int) *Awarder {
	return &Awarder{
		users:            users,
		badges:           badges,
		notifier:         notifier,
		earlyAdopterDays: earlyAdopterDays,
		now:              time.Now,
	}
}

// Progress maps each requirement type to the user's current value.
func (a *Awarder) Progress(u *user.User, s user.Stats) map[string]int {
	early := 0
	days := math.Floor(a.now().UTC().Sub(u.CreatedAt).Hours() / 24)
	if days <= float64(a.earlyAdopterDays) {
		early = 1
	}

	return map[string]int{
		RequirementQuestions:       s.Questions,
		RequirementAnswers:         s.Answers,
		RequirementAcceptedAnswers: s.AcceptedAnswers,
		RequirementReputation:      Reputation(s),
		RequirementVotes:           s.VotesCast,
		RequirementEarlyAdopter:    early,
	}
}

// CheckAndAward grants every badge the user now qualifies for and returns
// the names of the newly earned ones. Unknown users earn nothing.
func (a *Awarder) CheckAndAward(userID int64) ([]string, error) {
	u, err := a.users.Get(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stats, err := a.users.Stats(userID)
	if err != nil {
		return nil, err
	}
	progress := a.Progress(u, *stats)

	all, err := a.badges.List()
	if err != nil {
		return nil, err
	}
	held, err := a.badges.EarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var earned []string
	for _, b := range all {
		if held[b.ID] {
			continue
		}
		value, known := progress[b.RequirementType]
		if !known || value < b.RequirementValue {
			continue
		}
		awarded, err := a.badges.Award(userID, b.ID)
		if err != nil {
			return earned, err
		}
		if !awarded {
			continue
		}
		earned = append(earned, b.Name)
		metrics.BadgesAwarded.WithLabelValues(b.Name).Inc()
		a.notify(userID, b.Name)
	}
	return earned, nil
}

func (a *Awarder) notify(userID int64, name string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.NotifyBadgeEarned(userID, name); err != nil {
		logging.Warn().Err(err).Int64("user_id", userID).Str("badge", name).Msg("badge notification failed")
	}
}

// AwardAll runs CheckAndAward for every user and returns the total number of badges granted.
func (a *Awarder) AwardAll() (int, error) {
	users, err := a.users.List()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, u := range users {
		earned, err := a.CheckAndAward(u.ID)
		if err != nil {
			return total, err
		}
		total += len(earned)
	}
	logging.Info().Int("users", len(users)).Int("awarded", total).Msg("badge sweep finished")
	return total, nil
}
