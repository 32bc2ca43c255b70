package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/stormcast-dev/stormcast/internal/transport"
)

// wsConnAssignKey is the reserved Assigns key holding the live WebSocket
// connection. Forks do not duplicate it — session.fork skips it, so a
// child must call WSConnect again to get its own connection.
const wsConnAssignKey = "ws_conn"

// WSConnectAction opens a WebSocket connection and stores it in
// assigns[ws_conn]. Errors if already connected unless Reconnect is set.
type WSConnectAction struct {
	Path      string
	Reconnect bool
}

func (a *WSConnectAction) Key() string { return "ws_connect " + a.Path }

func (a *WSConnectAction) run(ctx context.Context, s *Session) error {
	if _, connected := s.Assigns[wsConnAssignKey]; connected && !a.Reconnect {
		return fmt.Errorf("already connected")
	}

	client, ok := wsClientFrom(ctx)
	if !ok {
		return fmt.Errorf("no WebSocket client configured for session %q", s.ID)
	}

	conn, err := client.Connect(ctx, a.Path)
	if err != nil {
		return err
	}

	s.Assigns[wsConnAssignKey] = conn
	return nil
}

// WSSendOptions configures a WSSendAction.
type WSSendOptions struct {
	AwaitAck bool
}

// WSSendAction sends a message over assigns[ws_conn] and records a timing
// metric under "ws_send <path>".
type WSSendAction struct {
	Path    string
	Message any
	Options WSSendOptions
}

func (a *WSSendAction) Key() string { return "ws_send " + a.Path }

func (a *WSSendAction) run(ctx context.Context, s *Session) error {
	conn, err := wsConnFrom(s)
	if err != nil {
		return err
	}

	start := time.Now()
	err = conn.Send(ctx, a.Message)
	s.AddMetric(metricKey("ws_send", a.Path), time.Since(start))
	return err
}

// WSRecvOptions configures a WSRecvAction. Timeout defaults to the
// session's timeout.
type WSRecvOptions struct {
	Timeout time.Duration
}

// WSRecvAction blocks for the next frame on assigns[ws_conn], storing it
// under results[self]. Timing out yields ws_recv_timeout.
type WSRecvAction struct {
	Name    string
	Options WSRecvOptions
}

func (a *WSRecvAction) Key() string {
	if a.Name != "" {
		return "ws_recv " + a.Name
	}
	return "ws_recv"
}

func (a *WSRecvAction) run(ctx context.Context, s *Session) error {
	conn, err := wsConnFrom(s)
	if err != nil {
		return err
	}

	timeout := a.Options.Timeout
	if timeout == 0 {
		timeout = s.Timeout()
	}

	frame, err := conn.Recv(ctx, timeout)
	if err != nil {
		if err == transport.ErrWSRecvTimeout {
			return fmt.Errorf("ws_recv_timeout")
		}
		return err
	}

	s.AddResult(a.Key(), frame)
	return nil
}

func wsConnFrom(s *Session) (transport.WSConn, error) {
	v, ok := s.Assigns[wsConnAssignKey]
	if !ok {
		return nil, fmt.Errorf("no ws_conn: call ws_connect first")
	}
	conn, ok := v.(transport.WSConn)
	if !ok {
		return nil, fmt.Errorf("ws_conn assign is not a WSConn")
	}
	return conn, nil
}

// WSConnect builds and runs a WebSocket.Connect action.
func (s *Session) WSConnect(ctx context.Context, path string, reconnect bool) *Session {
	return RunAction(ctx, s, &WSConnectAction{Path: path, Reconnect: reconnect})
}

// WSSend builds and runs a WebSocket.Send action.
func (s *Session) WSSend(ctx context.Context, path string, msg any, opts WSSendOptions) *Session {
	return RunAction(ctx, s, &WSSendAction{Path: path, Message: msg, Options: opts})
}

// WSRecv builds and runs a WebSocket.Recv action.
func (s *Session) WSRecv(ctx context.Context, name string, opts WSRecvOptions) *Session {
	return RunAction(ctx, s, &WSRecvAction{Name: name, Options: opts})
}
