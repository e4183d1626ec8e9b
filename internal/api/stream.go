package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/litescript/ls-starmap/internal/metrics"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamBuffer     = 64
	streamReadLimit  = 512
)

// handleEventStream pushes territory events to a websocket client as they
// are recorded. Clients only listen; anything they send is discarded.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	// Subscribe first so no event between handshake and loop is missed.
	events, cancel := s.state.Subscribe(streamBuffer)
	defer cancel()

	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      s.checkStreamOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.log.Debug("event stream upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()
	s.log.Debug("event stream client connected from %s", sanitizeLogValue(r.RemoteAddr))

	closed := make(chan struct{})
	go s.drainStream(conn, closed)

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return

		case e, ok := <-events:
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				return
			}
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				s.log.Error("failed to marshal event %s: %v", e.ID, err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drainStream reads until the client goes away, keeping the read deadline
// fresh on every pong, then closes done.
func (s *Server) drainStream(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(streamReadLimit)
	if err := conn.SetReadDeadline(time.Now().Add(streamPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("event stream closed: %v", err)
			}
			return
		}
	}
}

// checkStreamOrigin accepts configured CORS origins. Requests without an
// Origin header come from non-browser clients and are accepted.
func (s *Server) checkStreamOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	s.log.Warn("event stream rejected origin %s", sanitizeLogValue(origin))
	return false
}
