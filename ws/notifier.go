package ws

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Frame is the wire shape on the push channel, both directions.
type Frame struct {
	Event string `json:"event"`
	Data  Detail `json:"data,omitempty"`
}

// Detail identifies the sender of a client-emitted frame so the backend can
// skip echoing it back.
type Detail struct {
	ClientID      string `json:"clientId,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Notifier keeps the push-channel connection and feeds incoming events to
// the dispatcher. Emitting is best-effort: a failed notification is logged
// and forgotten, never surfaced to the action that triggered it.
type Notifier struct {
	urlStr   string
	jar      http.CookieJar
	dispatch *Dispatcher
	clientID string

	mu   sync.Mutex
	conn *websocket.Conn

	log zerolog.Logger
}

// NewNotifier builds a notifier for the given ws:// or wss:// endpoint. The
// cookie jar must be the API client's jar so the connection authenticates
// with the same session cookie as the REST calls.
func NewNotifier(urlStr string, jar http.CookieJar, dispatch *Dispatcher) *Notifier {
	return &Notifier{
		urlStr:   urlStr,
		jar:      jar,
		dispatch: dispatch,
		clientID: uuid.NewString(),
		log:      log.With().Str("component", "ws").Logger(),
	}
}

// Connect dials the push channel and starts the read pump. Idempotent:
// reconnecting replaces any prior connection.
func (n *Notifier) Connect(ctx context.Context) error {
	n.mu.Lock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
	n.mu.Unlock()

	dialer := websocket.Dialer{Jar: n.jar}
	header := http.Header{}
	header.Set("X-Client-ID", n.clientID)
	conn, _, err := dialer.DialContext(ctx, n.urlStr, header)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()

	n.log.Info().Str("url", n.urlStr).Msg("push channel connected")
	go n.readPump(ctx, conn)
	return nil
}

// Close drops the connection, if any.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}

// Emit sends a best-effort change notification after a successful mutation.
func (n *Notifier) Emit(event string) {
	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()
	if conn == nil {
		return
	}
	frame := Frame{Event: event, Data: Detail{
		ClientID:      n.clientID,
		CorrelationID: uuid.NewString(),
	}}
	if err := conn.WriteJSON(frame); err != nil {
		n.log.Debug().Str("event", event).Err(err).Msg("emit failed")
	}
}

// readPump decodes frames until the connection drops. Loss is logged; no
// reconnect policy here, that is left to whoever calls Connect again.
func (n *Notifier) readPump(ctx context.Context, conn *websocket.Conn) {
	defer func() {
		n.mu.Lock()
		if n.conn == conn {
			n.conn = nil
		}
		n.mu.Unlock()
		conn.Close()
	}()
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			n.log.Warn().Err(err).Msg("push channel lost")
			return
		}
		if frame.Data.ClientID == n.clientID {
			// Our own notification echoed back.
			continue
		}
		if frame.Event == "" {
			continue
		}
		n.dispatch.Dispatch(ctx, frame.Event)
	}
}

// ParseURL validates a push-channel endpoint early, at wiring time.
func ParseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		u.Scheme = "ws"
	}
	return u.String(), nil
}
