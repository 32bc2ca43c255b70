package transport

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSFrame is one message read off a WebSocket connection.
type WSFrame struct {
	Data      []byte
	Timestamp time.Time
}

// WSConn is a single WebSocket connection, handed back to the engine's
// WebSocket.Connect action and stashed in Session.Assigns under the
// reserved "ws_conn" key. The engine never imports gorilla/websocket
// directly — only this interface.
type WSConn interface {
	Send(ctx context.Context, msg any) error
	Recv(ctx context.Context, timeout time.Duration) (*WSFrame, error)
	Close() error
}

// WSClient opens WebSocket connections against the target service.
type WSClient interface {
	Connect(ctx context.Context, url string) (WSConn, error)
}

// GorillaWSClient is the default WSClient, wrapping
// github.com/gorilla/websocket.
type GorillaWSClient struct {
	HandshakeTimeout time.Duration
}

// NewGorillaWSClient creates a WSClient with a 30s handshake timeout.
func NewGorillaWSClient() *GorillaWSClient {
	return &GorillaWSClient{HandshakeTimeout: 30 * time.Second}
}

func (c *GorillaWSClient) Connect(ctx context.Context, url string) (WSConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket connection failed: %w", err)
	}

	c2 := &gorillaConn{
		conn:   conn,
		frames: make(chan *WSFrame, 100),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go c2.readLoop()
	return c2, nil
}

// gorillaConn demultiplexes the read loop into a frames channel: a
// dedicated channel per message class, an idempotent Close via a done
// channel.
type gorillaConn struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	frames chan *WSFrame
	errs   chan error
	done   chan struct{}
	closed bool
}

func (c *gorillaConn) readLoop() {
	defer close(c.frames)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case c.errs <- fmt.Errorf("read error: %w", err):
			default:
			}
			return
		}
		frame := &WSFrame{Data: data, Timestamp: time.Now()}
		select {
		case <-c.done:
			return
		case c.frames <- frame:
		}
	}
}

func (c *gorillaConn) Send(ctx context.Context, msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("connection closed")
	}
	if raw, ok := msg.([]byte); ok {
		return c.conn.WriteMessage(websocket.TextMessage, raw)
	}
	return c.conn.WriteJSON(msg)
}

func (c *gorillaConn) Recv(ctx context.Context, timeout time.Duration) (*WSFrame, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case frame, ok := <-c.frames:
		if !ok {
			return nil, fmt.Errorf("connection closed")
		}
		return frame, nil
	case err := <-c.errs:
		return nil, err
	case <-timer.C:
		return nil, ErrWSRecvTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ErrWSRecvTimeout is returned by Recv when no frame arrives within the
// requested timeout, surfaced by the engine as action error :ws_recv_timeout.
var ErrWSRecvTimeout = fmt.Errorf("ws_recv_timeout")

// baseURLWSClient prepends a fixed base URL to every relative path passed
// to Connect, mirroring how transport.Client resolves HTTP actions' paths
// against BaseURL. Scenarios write relative ws_connect paths; cmd/stormcast
// supplies the target via WithBaseURL, same as it does for the HTTP client.
type baseURLWSClient struct {
	inner   WSClient
	baseURL string
}

// WithBaseURL wraps c so relative paths are resolved against baseURL before
// dialing. A path that is already absolute (contains "://") passes through
// unchanged.
func WithBaseURL(c WSClient, baseURL string) WSClient {
	return &baseURLWSClient{inner: c, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *baseURLWSClient) Connect(ctx context.Context, path string) (WSConn, error) {
	if strings.Contains(path, "://") {
		return c.inner.Connect(ctx, path)
	}
	return c.inner.Connect(ctx, c.baseURL+path)
}

func (c *gorillaConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client closing"))
	return c.conn.Close()
}
