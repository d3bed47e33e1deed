package hub

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request for the user named by the user_id query parameter.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "user_id query parameter required", http.StatusBadRequest)
		return
	}

	u, err := h.users.Get(userID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		metrics.WSErrors.WithLabelValues("upgrade").Inc()
		logging.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := NewClient(h, conn, u.ID, u.Username)
	h.Register(c)
	h.Greet(c)
	c.Start()
}
