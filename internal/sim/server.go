package sim

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"golang.org/x/sync/errgroup"
)

// errStopped ends the accept loop after Close.
var errStopped = errors.New("sim: server stopped")

// Server accepts rigctld client connections and answers them from a shared Rig.
type Server struct {
	log *slog.Logger
	rig *Rig
	ln  net.Listener

	// Set by Start only.
	cancel   context.CancelFunc
	done     chan struct{}
	serveErr error
}

// Listen binds addr ("host:port"; port 0 picks a free one). The server
// does not accept connections until Serve is called.
func Listen(addr string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return &Server{
		log: logger.With("component", "sim", "addr", ln.Addr().String()),
		rig: NewRig(),
		ln:  ln,
	}, nil
}

// Start binds addr and serves in the background until ctx is cancelled or
// Close is called.
func Start(ctx context.Context, addr string, logger *slog.Logger) (*Server, error) {
	s, err := Listen(addr, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.serveErr = s.Serve(ctx)
	}()

	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Port returns the bound TCP port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Rig returns the simulated device shared by all connections.
func (s *Server) Rig() *Rig {
	return s.rig
}

// Serve accepts connections until ctx is cancelled or the listener is
// closed, then closes every open connection and waits for its handler.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("Simulated rigctld listening")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()

		return s.ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := s.ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}

				if errors.Is(err, net.ErrClosed) {
					return errStopped
				}

				return fmt.Errorf("accept: %w", err)
			}

			g.Go(func() error {
				s.serveConn(gctx, conn)

				return nil
			})
		}
	})

	err := g.Wait()

	s.log.Info("Simulated rigctld stopped")

	if err == nil || errors.Is(err, errStopped) || errors.Is(err, net.ErrClosed) {
		return nil
	}

	return err
}

// Close stops the server and waits for Serve to return.
func (s *Server) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done

		return s.serveErr
	}

	if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	log := s.log.With("peer", conn.RemoteAddr().String())
	log.Debug("Client connected")

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})

	defer func() {
		stop()
		_ = conn.Close()

		log.Debug("Client disconnected")
	}()

	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')

		if cmd := strings.TrimSpace(line); cmd == "q" || cmd == `\quit` {
			return
		}

		if line != "" {
			reply := s.rig.Respond(line)

			log.Debug("Handled request", "request", strings.TrimSpace(line), "reply", reply)

			if reply != "" {
				if _, werr := io.WriteString(conn, reply); werr != nil {
					return
				}
			}
		}

		if err != nil {
			return
		}
	}
}
