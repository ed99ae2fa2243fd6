package transport

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
	"github.com/wagiedev/rigctld-sdk-go/internal/protocol"
)

// maxResponseSize caps a single reply. dump_caps is the largest legitimate
// answer and stays far below this.
const maxResponseSize = 1024 * 1024 // 1MB

// TCPTransport implements config.Transport over one TCP socket.
type TCPTransport struct {
	log     *slog.Logger
	addr    string
	timeout time.Duration

	conn   net.Conn
	reader *bufio.Reader

	mu       sync.Mutex // Serializes exchanges
	poisoned error      // First failure; guarded by mu

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Compile-time verification that TCPTransport implements the Transport interface.
var _ config.Transport = (*TCPTransport)(nil)

// Open connects to rigctld at host:port.
//
// Returns ConnectionError with kind ConnectionRefused when nothing listens on
// the port and ConnectionTimeout when the dial deadline expires.
func Open(ctx context.Context, host string, port int, options *config.Options) (*TCPTransport, error) {
	opts := options.WithDefaults()
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	log := opts.Logger.With("component", "tcp_transport", "addr", addr)

	log.Debug("Dialing rigctld", "dial_timeout", opts.DialTimeout)

	dialer := &net.Dialer{Timeout: opts.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		log.Debug("Dial failed", "error", err)

		return nil, classifyDialError(addr, err)
	}

	log.Info("Connected to rigctld")

	return &TCPTransport{
		log:     log,
		addr:    addr,
		timeout: opts.Timeout,
		conn:    conn,
		reader:  bufio.NewReader(conn),
	}, nil
}

// Addr returns the remote host:port.
func (t *TCPTransport) Addr() string {
	return t.addr
}

// Exchange writes request and reads the reply through its RPRT line.
//
// The read deadline is the earlier of the configured timeout and the
// context deadline. Cancelling ctx interrupts a blocked read.
func (t *TCPTransport) Exchange(ctx context.Context, request []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.poisoned != nil {
		return nil, fmt.Errorf("%w (earlier failure: %v)", errors.ErrTransportPoisoned, t.poisoned)
	}

	if t.closed.Load() {
		return nil, errors.ErrTransportClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := ulid.Make().String()
	log := t.log.With("exchange_id", id)

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := t.conn.SetDeadline(deadline); err != nil {
		return nil, t.fail(log, fmt.Errorf("set deadline: %w", err))
	}

	// Wake a blocked read when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		_ = t.conn.SetDeadline(time.Now())
	})
	defer stop()

	log.Debug("Sending request", "request", string(request))

	if _, err := t.conn.Write(request); err != nil {
		return nil, t.fail(log, t.classifyIOError(ctx, err))
	}

	response := make([]byte, 0, 128)

	for {
		line, err := t.reader.ReadString('\n')
		response = append(response, line...)

		if len(response) > maxResponseSize {
			return nil, t.fail(log, fmt.Errorf("response exceeds %d bytes", maxResponseSize))
		}

		if protocol.IsTerminator(line) {
			break
		}

		if err != nil {
			return nil, t.fail(log, t.classifyIOError(ctx, err))
		}
	}

	log.Debug("Received response", "response", string(response))

	return response, nil
}

// Close closes the socket. It interrupts a blocked Exchange and is safe to
// call multiple times.
func (t *TCPTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		t.log.Debug("Closing connection")

		if err := t.conn.Close(); err != nil {
			t.closeErr = fmt.Errorf("close connection to %s: %w", t.addr, err)
		}
	})

	return t.closeErr
}

// fail poisons the transport and closes the socket. Caller must hold t.mu.
func (t *TCPTransport) fail(log *slog.Logger, err error) error {
	if t.closed.Load() {
		return errors.ErrTransportClosed
	}

	log.Warn("Exchange failed, discarding connection", "error", err)

	t.poisoned = err
	_ = t.Close()

	return err
}

func (t *TCPTransport) classifyIOError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			return &errors.ConnectionError{Kind: errors.ConnectionTimeout, Addr: t.addr, Err: ctxErr}
		}

		return ctxErr
	}

	if stderrors.Is(err, os.ErrDeadlineExceeded) {
		return &errors.ConnectionError{Kind: errors.ConnectionTimeout, Addr: t.addr, Err: err}
	}

	// EOF, reset and broken pipe all mean the daemon went away.
	return &errors.ConnectionError{Kind: errors.ConnectionClosed, Addr: t.addr, Err: err}
}

func classifyDialError(addr string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, os.ErrDeadlineExceeded) {
		return &errors.ConnectionError{Kind: errors.ConnectionTimeout, Addr: addr, Err: err}
	}

	if netErr, ok := stderrors.AsType[net.Error](err); ok && netErr.Timeout() {
		return &errors.ConnectionError{Kind: errors.ConnectionTimeout, Addr: addr, Err: err}
	}

	if stderrors.Is(err, context.Canceled) {
		return err
	}

	return &errors.ConnectionError{Kind: errors.ConnectionRefused, Addr: addr, Err: err}
}
