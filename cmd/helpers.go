package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julienpequegnot/qaboard/internal/answer"
	"github.com/julienpequegnot/qaboard/internal/badge"
	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/database"
	"github.com/julienpequegnot/qaboard/internal/link"
	"github.com/julienpequegnot/qaboard/internal/notification"
	"github.com/julienpequegnot/qaboard/internal/notify"
	"github.com/julienpequegnot/qaboard/internal/qa"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/recommend"
	"github.com/julienpequegnot/qaboard/internal/score"
	"github.com/julienpequegnot/qaboard/internal/tag"
	"github.com/julienpequegnot/qaboard/internal/user"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// app bundles the config, database and repositories a command needs.
type app struct {
	cfg           *config.Config
	db            *database.DB
	users         *user.Repository
	questions     *question.Repository
	tags          *tag.Repository
	answers       *answer.Repository
	notifications *notification.Repository
	badges        *badge.Repository
	links         *link.Repository
	scores        *score.Repository
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.New(config.DBPath())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:           cfg,
		db:            db,
		users:         user.NewRepository(db),
		questions:     question.NewRepository(db),
		tags:          tag.NewRepository(db),
		answers:       answer.NewRepository(db),
		notifications: notification.NewRepository(db),
		badges:        badge.NewRepository(db),
		links:         link.NewRepository(db),
		scores:        score.NewRepository(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) dispatcher(pusher notify.Pusher) *notify.Dispatcher {
	return notify.NewDispatcher(a.notifications, a.answers, pusher)
}

func (a *app) awarder(notifier badge.Notifier) *badge.Awarder {
	return badge.NewAwarder(a.users, a.badges, notifier, a.cfg.Badges.EarlyAdopterDays)
}

// service wires the write paths. Commands run without a live transport, so
// notifications are only persisted.
func (a *app) service() *qa.Service {
	d := a.dispatcher(nil)
	return qa.NewService(a.db, d, a.awarder(d))
}

func (a *app) engine() *recommend.Engine {
	return recommend.NewEngine(a.questions, a.users, a.links, a.cfg.Scoring)
}

// lookupUser resolves a username or numeric id.
func (a *app) lookupUser(ref string) (*user.User, error) {
	var (
		u   *user.User
		err error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		u, err = a.users.Get(id)
	} else {
		u, err = a.users.GetByUsername(ref)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user not found: %s", ref)
	}
	return u, err
}

func parseID(arg, kind string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, arg)
	}
	return id, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printQuestionHeader(scoreLabel string) {
	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-4s  %-6s  %-10s  %-50s  %s", "#", scoreLabel, "DATE", "TITLE", "TAGS")))
	fmt.Println(strings.Repeat("─", 100))
}

func printQuestionRow(q question.Question, score string) {
	fmt.Printf(" %s  %s  %s  %-50s  %s\n",
		idStyle.Render(fmt.Sprintf("%-4d", q.ID)),
		scoreStyle.Render(fmt.Sprintf("%-6s", score)),
		dateStyle.Render(q.CreatedAt.Format("2006-01-02")),
		truncate(q.Title, 50),
		tagStyle.Render(strings.Join(q.Tags, ", ")),
	)
}

func printScored(results []recommend.Scored, empty string) {
	if len(results) == 0 {
		fmt.Println(empty)
		return
	}
	printQuestionHeader("SCORE")
	for _, r := range results {
		printQuestionRow(r.Question, fmt.Sprintf("%.3f", r.Score))
	}
}
