package webhook

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultPath is the path the receiver serves webhooks on.
const DefaultPath = "/webhook"

// Receiver is a local HTTP server for webhook events. It is meant to sit
// behind a tunnel during development, since Surmado only delivers to https.
type Receiver struct {
	mu       sync.Mutex
	addr     string
	path     string
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewReceiver creates a receiver that will listen on addr and pass events to fn.
// An empty path uses DefaultPath.
func NewReceiver(addr, path string, fn EventFunc) *Receiver {
	if path == "" {
		path = DefaultPath
	}
	return &Receiver{
		addr:    addr,
		path:    path,
		handler: Handler(fn),
		errChan: make(chan error, 1),
	}
}

// Start begins listening. A port of 0 picks a free port; see Addr.
func (r *Receiver) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.server != nil {
		return errors.New("receiver already started")
	}

	mux := http.NewServeMux()
	mux.Handle(r.path, r.handler)

	listener, err := net.Listen("tcp", r.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.addr, err)
	}
	r.listener = listener
	r.addr = listener.Addr().String()

	r.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	server := r.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case r.errChan <- err:
			default:
			}
		}
	}()

	return nil
}

// Addr returns the listening address.
func (r *Receiver) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

// URL returns the local URL webhooks are served on.
func (r *Receiver) URL() string {
	return "http://" + r.Addr() + r.path
}

// Wait blocks until ctx is done or the server fails, then shuts down.
func (r *Receiver) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return r.Stop()
	case err := <-r.errChan:
		_ = r.Stop()
		return err
	}
}

// Stop shuts down the receiver.
func (r *Receiver) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := r.server.Shutdown(ctx)
	r.server = nil
	return err
}
