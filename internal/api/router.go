// Package api exposes the scoring features and write paths over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/database"
	"github.com/julienpequegnot/qaboard/internal/link"
	"github.com/julienpequegnot/qaboard/internal/notification"
	"github.com/julienpequegnot/qaboard/internal/qa"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/recommend"
	"github.com/julienpequegnot/qaboard/internal/score"
	"github.com/julienpequegnot/qaboard/internal/search"
	"github.com/julienpequegnot/qaboard/internal/tag"
	"github.com/julienpequegnot/qaboard/internal/topics"
	"github.com/julienpequegnot/qaboard/internal/user"
)

type Handler struct {
	questions     *question.Repository
	notifications *notification.Repository
	links         *link.Repository
	scores        *score.Repository
	engine        *recommend.Engine
	ranker        *search.Ranker
	trends        *topics.Aggregator
	suggester     *topics.Suggester
	service       *qa.Service
	ws            http.HandlerFunc
}

// NewHandler builds every read model over db. ws serves /ws and may be nil.
func NewHandler(db *database.DB, cfg config.ScoringConfig, service *qa.Service, ws http.HandlerFunc) *Handler {
	questions := question.NewRepository(db)
	tags := tag.NewRepository(db)
	links := link.NewRepository(db)

	return &Handler{
		questions:     questions,
		notifications: notification.NewRepository(db),
		links:         links,
		scores:        score.NewRepository(db),
		engine:        recommend.NewEngine(questions, user.NewRepository(db), links, cfg),
		ranker:        search.NewRanker(questions, tags, cfg),
		trends:        topics.NewAggregator(questions, tags, cfg.TrendingSamples),
		suggester:     topics.NewSuggester(tags),
		service:       service,
		ws:            ws,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestMetrics)

	r.Handle("/metrics", promhttp.Handler())
	if h.ws != nil {
		r.Get("/ws", h.ws)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", h.Search)
		r.Get("/trending", h.Trending)
		r.Post("/tags/suggest", h.SuggestTags)

		r.Route("/questions", func(r chi.Router) {
			r.Post("/", h.Ask)
			r.Get("/{id}/similar", h.Similar)
			r.Get("/{id}/quality", h.Quality)
			r.Get("/{id}/related", h.Related)
			r.Post("/{id}/answers", h.Answer)
			r.Post("/{id}/votes", h.Vote)
		})

		r.Post("/answers/{id}/accept", h.Accept)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/recommendations", h.Recommendations)
			r.Get("/notifications", h.Notifications)
			r.Post("/notifications/read", h.MarkNotificationsRead)
		})
	})

	return r
}
