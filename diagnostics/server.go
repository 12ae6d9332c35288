package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait        = 1 * time.Second
	pingResolution   = 200 * time.Millisecond
	pongWait         = pingResolution * 4
	pubResolution    = 100 * time.Millisecond
	closeGracePeriod = 5 * time.Second
	subscriberBuffer = 4
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves maze/mission snapshots to any number of connected websocket
// clients. A single hub goroutine reads the source channel exactly once and
// fans each snapshot out to every currently-registered subscriber, since the
// client count grows and shrinks at runtime as viewers connect and
// disconnect rather than being fixed at startup.
type Server struct {
	addr string
	mux  *mux.Router
	log  *zap.SugaredLogger

	source <-chan Snapshot

	mu   sync.Mutex
	subs map[chan Snapshot]struct{}
}

// NewServer returns a Server listening on addr, broadcasting snapshots read
// from source. source should be fed by the run harness after every
// mission.Iterate call; it is never read anywhere else.
func NewServer(addr string, source <-chan Snapshot, log *zap.SugaredLogger) *Server {
	s := &Server{
		addr:   addr,
		mux:    mux.NewRouter(),
		log:    log,
		source: source,
		subs:   make(map[chan Snapshot]struct{}),
	}
	s.mux.HandleFunc("/", s.serveStatus).Methods(http.MethodGet)
	s.mux.HandleFunc("/ws", s.serveWebsocket).Methods(http.MethodGet)
	return s
}

func (s *Server) subscribe() chan Snapshot {
	ch := make(chan Snapshot, subscriberBuffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan Snapshot) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
	close(ch)
}

// hub reads source until ctx is cancelled or source closes, fanning every
// snapshot out to each currently-registered subscriber without blocking on
// a slow one.
func (s *Server) hub(ctx context.Context) {
	snapshots := channerics.OrDone(ctx.Done(), s.source)
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			s.mu.Lock()
			for ch := range s.subs {
				select {
				case ch <- snap:
				default:
					// Slow subscriber: drop this snapshot rather than block the hub.
				}
			}
			s.mu.Unlock()
		}
	}
}

// Serve runs the hub and the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	go s.hub(ctx)

	srv := &http.Server{Addr: s.addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGracePeriod)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) serveStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := len(s.subs)
	s.mu.Unlock()
	fmt.Fprintf(w, "micromouse diagnostics: %d connected client(s)\n", n)
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	updates := s.subscribe()
	defer s.unsubscribe(updates)

	c := newClient(ws, updates)
	if err := c.sync(r.Context()); err != nil {
		s.log.Debugw("diagnostics client disconnected", "error", err)
	}
}

// client publishes snapshots to a single websocket connection and runs the
// ping/pong liveness check alongside it.
type client struct {
	ws      *websocket.Conn
	updates <-chan Snapshot
	writeMu sync.Mutex
}

func newClient(ws *websocket.Conn, updates <-chan Snapshot) *client {
	return &client{ws: ws, updates: updates}
}

var errPongDeadlineExceeded = errors.New("diagnostics: pong deadline exceeded")

func (c *client) sync(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error { return c.pingPong(groupCtx) })
	group.Go(func() error { return c.publish(groupCtx) })
	group.Go(func() error { return c.drainReads(groupCtx) })

	err := group.Wait()
	_ = c.ws.Close()
	return err
}

// drainReads discards any client-sent messages; this server is
// publish-only, but a read loop must run for the pong handler to fire.
func (c *client) drainReads(ctx context.Context) error {
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (c *client) pingPong(ctx context.Context) error {
	pong := make(chan struct{}, 1)
	c.ws.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	ticker := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
			if time.Since(lastPong) > pongWait {
				return errPongDeadlineExceeded
			}
			c.writeMu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.writeMu.Unlock()
			if err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (c *client) publish(ctx context.Context) error {
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-c.updates:
			if !ok {
				return nil
			}
			if time.Since(last) < pubResolution {
				continue
			}
			last = time.Now()
			if err := c.writeJSON(snap); err != nil {
				return err
			}
		}
	}
}

// writeJSON recovers from a panic in the JSON encoder rather than letting a
// malformed snapshot take down the broadcaster.
func (c *client) writeJSON(snap Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("diagnostics: panic encoding snapshot: %v", r)
		}
	}()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err = c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(snap)
}
