package element

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// DefaultSocketURL is the ELEMENT event socket base URL.
	DefaultSocketURL = "wss://element-iot.com"

	// DefaultPingInterval is the heartbeat interval. The periodic ping keeps
	// intermediary proxies from timing out the connection and gives the peer
	// a liveness signal.
	DefaultPingInterval = 31 * time.Second

	// socketWriteWait bounds control frame writes.
	socketWriteWait = 10 * time.Second
)

// StreamType selects which event feed a socket subscribes to.
type StreamType string

// Stream types accepted by NewSocket.
const (
	StreamReadings StreamType = "readings"
	StreamPackets  StreamType = "packets"
)

// SocketState is the connection lifecycle state.
type SocketState int32

// Socket states. Closed is terminal; a dropped socket is not reconnected
// and the consumer must construct a new Socket to resume the stream.
const (
	StateConnecting SocketState = iota
	StateOpen
	StateClosed
)

// String returns the state name.
func (s SocketState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Named events emitted to socket subscribers.
const (
	EventOpen     = "open"
	EventClose    = "close"
	EventError    = "error"
	EventReadings = "readings"
	EventPackets  = "packets"
)

// SocketEvent is delivered to subscribers. Body is set for readings/packets
// events, Err for error events.
type SocketEvent struct {
	Name string
	Body json.RawMessage
	Err  error
}

// SocketHandler consumes socket events. Delivery is fire-and-forget on the
// socket's read goroutine; handlers should not block.
type SocketHandler func(SocketEvent)

// eventFrame is element 0 of an inbound JSON array frame.
type eventFrame struct {
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body"`
}

// Socket maintains one long-lived WebSocket connection to an ELEMENT event
// feed. It dispatches decoded events to registered handlers and keeps the
// connection alive with a debounced heartbeat.
type Socket struct {
	apiKey       string
	baseURL      string
	streamType   StreamType
	tagID        string
	logger       *slog.Logger
	dialer       *websocket.Dialer
	pingInterval time.Duration

	conn  *websocket.Conn
	state atomic.Int32

	handlersMu sync.RWMutex
	handlers   map[string][]SocketHandler

	heartbeatMu sync.Mutex
	heartbeat   *time.Timer

	closeOnce sync.Once
	done      chan struct{}
}

// SocketOption configures a Socket.
type SocketOption func(*Socket)

// WithSocketURL sets a custom socket base URL. The URL must use a ws or
// wss scheme; NewSocket fails otherwise.
func WithSocketURL(url string) SocketOption {
	return func(s *Socket) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTag scopes the subscription to devices carrying the given tag.
func WithTag(tagID string) SocketOption {
	return func(s *Socket) {
		s.tagID = tagID
	}
}

// WithSocketLogger configures a structured logger for the socket.
func WithSocketLogger(logger *slog.Logger) SocketOption {
	return func(s *Socket) {
		s.logger = logger
	}
}

// WithDialer sets a custom WebSocket dialer.
func WithDialer(dialer *websocket.Dialer) SocketOption {
	return func(s *Socket) {
		s.dialer = dialer
	}
}

// WithPingInterval overrides the heartbeat interval (default 31s).
func WithPingInterval(interval time.Duration) SocketOption {
	return func(s *Socket) {
		if interval > 0 {
			s.pingInterval = interval
		}
	}
}

// NewSocket creates an event socket for the given feed. Construction fails
// before any connection attempt when the API key is empty, the base URL
// does not use a ws/wss scheme, or the stream type is unknown. Call
// Connect to establish the connection.
func NewSocket(apiKey string, streamType StreamType, opts ...SocketOption) (*Socket, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	s := &Socket{
		apiKey:       apiKey,
		baseURL:      DefaultSocketURL,
		streamType:   streamType,
		dialer:       websocket.DefaultDialer,
		pingInterval: DefaultPingInterval,
		handlers:     make(map[string][]SocketHandler),
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if !strings.HasPrefix(s.baseURL, "ws://") && !strings.HasPrefix(s.baseURL, "wss://") {
		return nil, ErrInvalidSocketURL
	}
	if streamType != StreamReadings && streamType != StreamPackets {
		return nil, ErrInvalidStreamType
	}

	s.state.Store(int32(StateConnecting))
	return s, nil
}

// URL returns the composed connection address, including the auth
// credential.
func (s *Socket) URL() string {
	url := s.baseURL + apiPrefix + "/"
	if s.tagID != "" {
		url += "tags/" + s.tagID + "/"
	}
	return url + string(s.streamType) + "/socket?auth=" + s.apiKey
}

// State returns the current connection state.
func (s *Socket) State() SocketState {
	return SocketState(s.state.Load())
}

// Done is closed when the socket reaches the Closed state.
func (s *Socket) Done() <-chan struct{} {
	return s.done
}

// On registers a handler for a named event (open, close, error, readings,
// packets). Handlers for the same event run in registration order.
func (s *Socket) On(event string, handler SocketHandler) {
	s.handlersMu.Lock()
	s.handlers[event] = append(s.handlers[event], handler)
	s.handlersMu.Unlock()
}

// OnReadings registers a handler for decoded reading events.
func (s *Socket) OnReadings(fn func(body json.RawMessage)) {
	s.On(EventReadings, func(ev SocketEvent) { fn(ev.Body) })
}

// OnPackets registers a handler for decoded packet events.
func (s *Socket) OnPackets(fn func(body json.RawMessage)) {
	s.On(EventPackets, func(ev SocketEvent) { fn(ev.Body) })
}

// OnError registers a handler for transport errors. Errors do not change
// the connection state; a close event follows separately if the connection
// is actually gone.
func (s *Socket) OnError(fn func(err error)) {
	s.On(EventError, func(ev SocketEvent) { fn(ev.Err) })
}

// Connect establishes the WebSocket connection, emits the open event and
// starts the heartbeat and the read loop.
func (s *Socket) Connect(ctx context.Context) error {
	if s.State() == StateClosed {
		return ErrSocketClosed
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.URL(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		s.closed()
		return fmt.Errorf("element: socket dial failed: %w", err)
	}

	s.conn = conn
	conn.SetPingHandler(func(appData string) error {
		// A peer ping is a liveness signal in its own right; reschedule so
		// we don't send a redundant ping right after it.
		s.schedulePing()
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(socketWriteWait))
	})

	s.state.Store(int32(StateOpen))
	s.emit(SocketEvent{Name: EventOpen})
	s.ping()

	go s.readLoop()
	return nil
}

// Disconnect requests a transport close. The close event is emitted through
// the same path as a peer-initiated close.
func (s *Socket) Disconnect() error {
	if s.conn == nil {
		s.closed()
		return nil
	}

	deadline := time.Now().Add(socketWriteWait)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logDebug("close message failed", slog.String("error", err.Error()))
	}
	return s.conn.Close()
}

// readLoop consumes inbound frames until the connection drops.
func (s *Socket) readLoop() {
	defer s.closed()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if !isExpectedClose(err) {
				s.emit(SocketEvent{Name: EventError, Err: err})
			}
			return
		}
		s.handleFrame(raw)
	}
}

// handleFrame decodes one inbound frame and dispatches it. Malformed frames
// and unknown event tags are logged and dropped; a single bad frame must
// not interrupt an otherwise healthy stream.
func (s *Socket) handleFrame(raw []byte) {
	// The server answers our pings with a literal text pong. Never JSON.
	if string(raw) == "pong" {
		return
	}

	var frame []eventFrame
	if err := json.Unmarshal(raw, &frame); err != nil || len(frame) == 0 {
		s.logDebug("dropping malformed frame", slog.String("frame", truncatePreview(raw)))
		return
	}

	switch frame[0].Event {
	case "reading_added":
		s.emit(SocketEvent{Name: EventReadings, Body: frame[0].Body})
	case "packet_added":
		s.emit(SocketEvent{Name: EventPackets, Body: frame[0].Body})
	default:
		s.logDebug("dropping unknown event", slog.String("event", frame[0].Event))
	}
}

// emit delivers an event to all handlers registered for its name, in
// registration order.
func (s *Socket) emit(ev SocketEvent) {
	s.handlersMu.RLock()
	handlers := s.handlers[ev.Name]
	s.handlersMu.RUnlock()

	for _, handler := range handlers {
		handler(ev)
	}
}

// ping sends a heartbeat and schedules the next one. A write failure is
// emitted as an error event but does not cancel the heartbeat; the
// connection is not assumed dead on a transport-level error alone.
func (s *Socket) ping() {
	if s.State() != StateOpen {
		return
	}
	if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(socketWriteWait)); err != nil {
		s.emit(SocketEvent{Name: EventError, Err: err})
	}
	s.schedulePing()
}

// schedulePing replaces the pending heartbeat timer. The single slot keeps
// exactly one timer outstanding no matter how pings interleave.
func (s *Socket) schedulePing() {
	s.heartbeatMu.Lock()
	defer s.heartbeatMu.Unlock()
	if s.heartbeat != nil {
		s.heartbeat.Stop()
	}
	s.heartbeat = time.AfterFunc(s.pingInterval, s.ping)
}

// cancelHeartbeat stops any pending heartbeat timer.
func (s *Socket) cancelHeartbeat() {
	s.heartbeatMu.Lock()
	defer s.heartbeatMu.Unlock()
	if s.heartbeat != nil {
		s.heartbeat.Stop()
		s.heartbeat = nil
	}
}

// closed runs the terminal transition: cancel the heartbeat, mark the
// socket Closed and emit the close event. Safe to call from any path;
// only the first call has effect.
func (s *Socket) closed() {
	s.closeOnce.Do(func() {
		s.cancelHeartbeat()
		s.state.Store(int32(StateClosed))
		close(s.done)
		s.emit(SocketEvent{Name: EventClose})
	})
}

// isExpectedClose reports whether a read error is a normal connection end
// rather than a transport failure.
func isExpectedClose(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}

func (s *Socket) logDebug(msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
