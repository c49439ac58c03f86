package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024 // 64KB
)

// ChangeKind identifies which entity kind a change event concerns.
type ChangeKind string

const (
	ChangeLabels    ChangeKind = "labels"
	ChangeGroups    ChangeKind = "groups"
	ChangeColumns   ChangeKind = "columns"
	ChangeArtifacts ChangeKind = "artifacts"
	ChangeTasks     ChangeKind = "tasks"
)

// ChangeEvent is a server push notifying that a collection changed and
// cached copies should be refetched.
type ChangeEvent struct {
	Kind      ChangeKind `json:"kind"`
	ProjectID string     `json:"project_id"`
	TaskID    string     `json:"task_id,omitempty"`
}

// Listener maintains a websocket subscription to board change events.
type Listener struct {
	url    string
	logger *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	events chan ChangeEvent
	done   chan struct{}
	closed bool
}

// NewListener creates a change listener for the given service base URL.
// The subscription is project-scoped; the caller owns reconnect policy.
func NewListener(baseURL, apiToken, projectID string, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	wsURL := strings.TrimRight(baseURL, "/")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL += "/api/projects/" + projectID + "/events"

	header := http.Header{}
	if apiToken != "" {
		header.Set("Authorization", "Bearer "+apiToken)
	}
	header.Set("X-Client-ID", uuid.NewString())

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: status %d: %w", wsURL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	l := &Listener{
		url:    wsURL,
		logger: logger,
		conn:   conn,
		events: make(chan ChangeEvent, 16),
		done:   make(chan struct{}),
	}

	go l.readLoop()
	go l.pingLoop()
	return l, nil
}

// Events returns the channel of change events. It is closed when the
// connection drops or Close is called.
func (l *Listener) Events() <-chan ChangeEvent {
	return l.events
}

// Close terminates the subscription.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.done)
	return l.conn.Close()
}

func (l *Listener) readLoop() {
	defer close(l.events)

	l.conn.SetReadLimit(maxMessageSize)
	_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		return l.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.logger.Warn("board event stream closed", "url", l.url, "error", err)
			}
			return
		}

		var ev ChangeEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			l.logger.Warn("unparseable board event", "error", err)
			continue
		}
		select {
		case l.events <- ev:
		case <-l.done:
			return
		default:
			// Consumer is behind; dropping is safe because events only
			// trigger refetch, and the next event refetches the same data.
		}
	}
}

func (l *Listener) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			err := l.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			l.mu.Unlock()
			if err != nil {
				return
			}
		case <-l.done:
			return
		}
	}
}

// WatchContext closes the listener when ctx is done.
func (l *Listener) WatchContext(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			_ = l.Close()
		case <-l.done:
		}
	}()
}
