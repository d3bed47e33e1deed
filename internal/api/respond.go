package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/metrics"
	"github.com/julienpequegnot/qaboard/internal/qa"
)

var validate = validator.New()

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("failed to write response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

// respondFailure maps service errors to a status. Anything unrecognised is a 500.
func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, errBadBody):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &verrs):
		respondError(w, http.StatusBadRequest, verrs.Error())
	case errors.Is(err, qa.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, qa.ErrEmptyTitle), errors.Is(err, qa.ErrEmptyContent):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logging.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads a JSON body into v and validates it.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadBody
	}
	return validate.Struct(v)
}

var errBadBody = errors.New("invalid JSON body")

// limitParam reads limit from the query, falling back to def, and bounds it.
func limitParam(r *http.Request, def int) (int, error) {
	limit := queryInt(r, "limit", def)
	return limit, validate.Var(limit, "min=1,max=100")
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// requestMetrics records latency per route pattern so ids do not explode label cardinality.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
	})
}
