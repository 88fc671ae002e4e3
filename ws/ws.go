// Package ws is a market stream client. Subscriptions deliver decoded
// messages to caller-owned channels and may be made before the connection
// is up; they are sent to the server once Start succeeds.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const (
	defaultPingInterval = 50 * time.Second
	writeTimeout        = 5 * time.Second
)

var (
	ErrAlreadyStarted = errors.New("websocket client already started")
	ErrClosed         = errors.New("websocket client closed")
)

type Config struct {
	URL    string
	Logger *zap.Logger
}

// Client manages one WebSocket connection, its subscriptions and message
// routing
type Client struct {
	url                   string
	logger                *zap.Logger
	pingInterval          time.Duration
	conn                  *websocket.Conn
	subscriptionIDCounter int64
	activeSubscriptions   map[string][]*channelSubscription
	closed                bool
	stopChan              chan struct{}
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	mu                    sync.RWMutex
}

// New creates a new WebSocket client. Nothing is dialled until Start.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		url:                 cfg.URL,
		logger:              logger.Named("ws"),
		pingInterval:        defaultPingInterval,
		activeSubscriptions: make(map[string][]*channelSubscription),
		stopChan:            make(chan struct{}),
	}
}

// Start dials the server, sends the subscriptions queued so far and starts
// the read and ping loops. ctx bounds the dial only.
func (m *Client) Start(ctx context.Context) error {
	m.mu.RLock()
	started, closed := m.conn != nil, m.closed
	m.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if started {
		return ErrAlreadyStarted
	}

	conn, _, err := websocket.Dial(ctx, m.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if m.closed || m.conn != nil {
		m.mu.Unlock()
		cancel()
		conn.Close(websocket.StatusNormalClosure, "closing")
		if m.closed {
			return ErrClosed
		}
		return ErrAlreadyStarted
	}
	m.conn = conn
	m.cancel = cancel

	queued := make([]string, 0, len(m.activeSubscriptions))
	for identifier, subs := range m.activeSubscriptions {
		if len(subs) > 0 {
			queued = append(queued, identifier)
		}
	}
	m.mu.Unlock()

	m.logger.Debug("websocket connected",
		zap.String("url", m.url),
		zap.Int("queued", len(queued)),
	)

	for _, identifier := range queued {
		if err := m.send(conn, "subscribe", identifier); err != nil {
			m.logger.Warn("failed to send queued subscription",
				zap.String("topic", identifier),
				zap.Error(err),
			)
		}
	}

	m.wg.Add(2)
	go m.readLoop(loopCtx, conn)
	go m.pingLoop(loopCtx, conn)

	return nil
}

// Close closes the connection and waits for the loops to exit. Active
// subscriptions stop receiving; their channels are not closed.
func (m *Client) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.stopChan)

	conn, cancel := m.conn, m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close(websocket.StatusNormalClosure, "closing")
	}

	m.wg.Wait()
}

// readLoop handles incoming messages from the WebSocket
func (m *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer m.wg.Done()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			select {
			case <-m.stopChan:
				return
			default:
			}

			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				m.logger.Debug("websocket closed by server")
				return
			}
			m.logger.Warn("websocket read error", zap.Error(err))
			return
		}

		m.handleMessage(data)
	}
}

// pingLoop sends periodic pings to keep the connection alive
func (m *Client) pingLoop(ctx context.Context, conn *websocket.Conn) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.send(conn, "ping", ""); err != nil {
				select {
				case <-ctx.Done():
				default:
					m.logger.Warn("websocket ping error", zap.Error(err))
				}
				return
			}
		}
	}
}

// send writes one client request. An empty topic sends no params.
func (m *Client) send(conn *websocket.Conn, method string, topic string) error {
	req := request{Method: method}
	if topic != "" {
		req.Params = []string{topic}
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, data)
}
