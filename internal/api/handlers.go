package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/julienpequegnot/qaboard/internal/metrics"
	"github.com/julienpequegnot/qaboard/internal/notification"
	"github.com/julienpequegnot/qaboard/internal/scorer"
)

const defaultLimit = 5

func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, defaultLimit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusOK, []scoredJSON{})
		return
	}

	defer metrics.ObserveRanking("similar", time.Now())
	results, err := h.engine.SimilarQuestions(id, limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toScored(results))
}

// Quality analyzes a question and caches the score.
func (h *Handler) Quality(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	q, err := h.questions.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	report := scorer.AnalyzeQuality(q.Title, q.Content, len(q.Tags))
	if err := h.scores.Upsert(q.ID, report.Score); err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toQuality(q.ID, report))
}

// Related lists questions linked by a previous link refresh, strongest first.
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, defaultLimit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusOK, []questionJSON{})
		return
	}

	ids, err := h.links.RelatedIDs(id, limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	qs, err := h.questions.GetMany(ids)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toQuestions(qs))
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, 10)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusOK, []scoredJSON{})
		return
	}

	defer metrics.ObserveRanking("recommend", time.Now())
	results, err := h.engine.ForUser(id, limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toScored(results))
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, 20)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	id, _ := pathID(r, "id")

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notes, err := h.notifications.ListForUser(id, unreadOnly, limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if notes == nil {
		notes = []notification.Notification{}
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	n, err := h.notifications.MarkAllRead(id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"marked": n})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, 10)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	query := r.URL.Query().Get("q")
	userID := int64(queryInt(r, "user_id", 0))

	defer metrics.ObserveRanking("search", time.Now())
	results, err := h.ranker.Search(query, userID, limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSearch(results))
}

func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, 10)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	days := queryInt(r, "days", 7)
	if err := validate.Var(days, "min=1,max=3650"); err != nil {
		respondFailure(w, r, err)
		return
	}

	defer metrics.ObserveRanking("trending", time.Now())
	trends, err := h.trends.Trending(days, limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTrends(trends))
}

func (h *Handler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeBody(r, &req); err != nil {
		respondFailure(w, r, err)
		return
	}
	if req.Limit == 0 {
		req.Limit = 5
	}

	tags, err := h.suggester.Suggest(req.Title, req.Content, req.Limit)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTags(tags))
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		respondFailure(w, r, err)
		return
	}

	q, err := h.service.Ask(req.UserID, req.Title, req.Content, req.Tags)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toQuestion(*q))
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		respondFailure(w, r, err)
		return
	}

	a, err := h.service.Answer(id, req.UserID, req.Content)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAnswer(*a))
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "answer not found")
		return
	}

	a, err := h.service.Accept(id)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAnswer(*a))
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		respondFailure(w, r, err)
		return
	}

	created, err := h.service.Vote(id, req.UserID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	respondJSON(w, status, map[string]bool{"created": created})
}
