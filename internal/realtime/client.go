package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"bookit/internal/domain"
	"bookit/internal/logger"
)

// Options configures a Client. Zero durations take the defaults below.
type Options struct {
	URL    string
	Tokens domain.TokenSource
	Dialer *websocket.Dialer

	// MaxReconnectAttempts bounds consecutive failed dials and connections
	// dropped before they became stable.
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	ReconnectDelayMax    time.Duration
	PingInterval         time.Duration
	WriteTimeout         time.Duration
	// StableAfter is how long an authenticated connection must last before
	// its drop stops counting against MaxReconnectAttempts.
	StableAfter time.Duration

	Logger *zap.Logger
}

const (
	defaultReconnectAttempts = 5
	defaultReconnectDelay    = time.Second
	defaultReconnectDelayMax = 5 * time.Second
	defaultPingInterval      = 25 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultStableAfter       = 10 * time.Second
)

// ErrAttemptsExhausted is reported through connect_error when reconnection gives up.
var ErrAttemptsExhausted = errors.New("reconnect attempts exhausted")

// transportEvents may be dispatched before the socket is authenticated.
var transportEvents = map[string]bool{
	domain.EventConnect:       true,
	domain.EventConnectError:  true,
	domain.EventDisconnect:    true,
	domain.EventAuthenticated: true,
	domain.EventError:         true,
}

type entry struct {
	id uint64
	fn domain.Handler
}

// Client is a reconnecting, authenticating socket.
type Client struct {
	opts Options
	log  *zap.Logger

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	authed    bool
	running   bool
	closed    bool
	cancel    context.CancelFunc
	done      chan struct{}
	handlers  map[string][]entry
	nextID    uint64

	// dispatching is set while handlers run on the connection loop.
	dispatching atomic.Bool

	writeMu sync.Mutex
}

var _ domain.Socket = (*Client)(nil)

// New returns an idle Client; nothing is dialled until Connect.
func New(opts Options) *Client {
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = defaultReconnectAttempts
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.ReconnectDelayMax < opts.ReconnectDelay {
		opts.ReconnectDelayMax = max(defaultReconnectDelayMax, opts.ReconnectDelay)
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.StableAfter <= 0 {
		opts.StableAfter = defaultStableAfter
	}
	if opts.Dialer == nil {
		opts.Dialer = &websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	}
	return &Client{
		opts:     opts,
		log:      logger.OrNop(opts.Logger).Named("socket"),
		handlers: make(map[string][]entry),
	}
}

// Connect starts the connection loop. It returns once the loop is running;
// progress is reported through connect, authenticated and connect_error.
// The loop stops when ctx is cancelled or Close is called.
func (c *Client) Connect(ctx context.Context) error {
	if c.opts.URL == "" {
		return errors.New("realtime: socket URL is required")
	}
	if c.token() == "" {
		return domain.ErrNoToken
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("realtime: client closed")
	}
	if c.running {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true
	go c.run(runCtx, c.done)
	return nil
}

// On registers handler for event. The returned function detaches it.
func (c *Client) On(event string, handler domain.Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.handlers[event] = append(c.handlers[event], entry{id: id, fn: handler})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		list := c.handlers[event]
		for i, e := range list {
			if e.id == id {
				c.handlers[event] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Emit sends one frame. It fails with domain.ErrNotConnected while dialling.
func (c *Client) Emit(event string, payload any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return domain.ErrNotConnected
	}
	return c.write(conn, event, payload)
}

// Connected reports whether the transport is up.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Authenticated reports whether the server accepted the token on this connection.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authed
}

// Close stops reconnecting and closes the transport.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn, cancel, done := c.conn, c.cancel, c.done
	c.mu.Unlock()

	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
	}
	if cancel != nil {
		cancel()
	}
	if c.dispatching.Load() {
		// A handler is running on the loop, possibly this one; waiting for
		// done could block until the timeout.
		return nil
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			c.log.Warn("connection loop did not stop in time")
		}
	}
	return nil
}

func (c *Client) token() string {
	if c.opts.Tokens == nil {
		return ""
	}
	return c.opts.Tokens.Token()
}

func (c *Client) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.ReconnectDelay
	b.MaxInterval = c.opts.ReconnectDelayMax
	b.Multiplier = 2
	b.RandomizationFactor = 0.5
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// run is the connection loop. Every handler is dispatched from this goroutine.
func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		close(done)
	}()

	b := c.newBackoff()
	failures, kicks := 0, 0
	for ctx.Err() == nil {
		token := c.token()
		if token == "" {
			c.dispatch(domain.EventConnectError, domain.ErrorPayload{Message: domain.ErrNoToken.Error()})
			return
		}

		conn, _, err := c.opts.Dialer.DialContext(ctx, c.opts.URL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			c.log.Warn("dial failed", zap.Int("attempt", failures), zap.Error(err))
			c.dispatch(domain.EventConnectError, domain.ErrorPayload{Message: err.Error()})
			if failures >= c.opts.MaxReconnectAttempts {
				c.dispatch(domain.EventConnectError, domain.ErrorPayload{Message: ErrAttemptsExhausted.Error()})
				return
			}
			if !sleep(ctx, b.NextBackOff()) {
				return
			}
			continue
		}

		up := time.Now()
		byServer, authed := c.serve(ctx, conn, token)
		if ctx.Err() != nil {
			return
		}
		// Only a connection that authenticated and stayed up resets the budget;
		// a server that accepts and then drops us counts as a failed attempt.
		if authed && time.Since(up) >= c.opts.StableAfter {
			failures, kicks = 0, 0
			b.Reset()
		}
		failures++
		if failures > c.opts.MaxReconnectAttempts {
			c.log.Warn("giving up after repeated disconnects", zap.Int("attempts", failures-1))
			c.dispatch(domain.EventConnectError, domain.ErrorPayload{Message: ErrAttemptsExhausted.Error()})
			return
		}
		if byServer {
			kicks++
			if kicks == 1 {
				c.log.Info("server closed the connection; reconnecting now")
				continue
			}
		} else {
			kicks = 0
		}
		if !sleep(ctx, b.NextBackOff()) {
			return
		}
	}
}

// serve runs one connection until it drops. It reports whether the server
// initiated the close and whether the connection ever authenticated.
func (c *Client) serve(ctx context.Context, conn *websocket.Conn, token string) (byServer, authed bool) {
	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.authed = false
	c.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()
	go c.ping(conn, stop)

	pongWait := 2 * c.opts.PingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.log.Debug("connected", zap.String("url", c.opts.URL))
	c.dispatch(domain.EventConnect, nil)
	if err := c.write(conn, domain.EventAuthenticate, domain.AuthenticatePayload{Token: token}); err != nil {
		c.log.Warn("authenticate frame failed", zap.Error(err))
	}

	var reason string
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				byServer = true
				reason = fmt.Sprintf("server closed: %d %s", ce.Code, ce.Text)
			} else {
				reason = err.Error()
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var f domain.Frame
		if err := json.Unmarshal(raw, &f); err != nil || f.Event == "" {
			c.log.Debug("dropping malformed frame", zap.ByteString("raw", raw))
			continue
		}
		c.receive(f)
		authed = authed || c.Authenticated()
	}

	c.mu.Lock()
	c.conn = nil
	c.connected = false
	c.authed = false
	closed := c.closed
	c.mu.Unlock()
	_ = conn.Close()

	if closed || ctx.Err() != nil {
		return false, authed
	}
	c.log.Info("disconnected", zap.String("reason", reason), zap.Bool("by_server", byServer))
	c.dispatch(domain.EventDisconnect, domain.DisconnectPayload{Reason: reason, ByServer: byServer})
	return byServer, authed
}

func (c *Client) receive(f domain.Frame) {
	if f.Event == domain.EventAuthenticated {
		var p domain.AuthenticatedPayload
		_ = json.Unmarshal(f.Data, &p)
		c.mu.Lock()
		c.authed = p.Success
		c.mu.Unlock()
		if !p.Success {
			c.log.Warn("socket authentication rejected", zap.String("error", p.Error))
		}
		c.dispatchRaw(f.Event, f.Data)
		return
	}

	if !transportEvents[f.Event] && !c.Authenticated() {
		c.log.Debug("dropping event before authentication", zap.String("event", f.Event))
		return
	}
	c.dispatchRaw(f.Event, f.Data)
}

func (c *Client) ping(conn *websocket.Conn, stop <-chan struct{}) {
	t := time.NewTicker(c.opts.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.opts.WriteTimeout))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (c *Client) write(conn *websocket.Conn, event string, payload any) error {
	f := domain.Frame{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s: %w", event, err)
		}
		f.Data = data
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	return nil
}

func (c *Client) dispatch(event string, payload any) {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	c.dispatchRaw(event, data)
}

func (c *Client) dispatchRaw(event string, data json.RawMessage) {
	c.mu.RLock()
	list := append([]entry(nil), c.handlers[event]...)
	c.mu.RUnlock()
	c.dispatching.Store(true)
	defer c.dispatching.Store(false)
	for _, e := range list {
		e.fn(data)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
