package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	dialTimeout   = 2 * time.Second
	writeTimeout  = time.Second
	retryInterval = 5 * time.Second
)

var errRetryCooldown = errors.New("logstash: retry cooldown in effect")

// LogstashWriter mirrors log output to a Logstash TCP input without ever
// blocking the caller. While Logstash is unreachable, writes are dropped and
// a reconnect is attempted at most once per retry interval. Safe for
// concurrent use.
type LogstashWriter struct {
	addr string

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

func NewLogstashWriter(addr string) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	return &LogstashWriter{addr: addr}, nil
}

// Write implements io.Writer. Failed writes report success to the caller:
// request logging must not fail because the log sink is down.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	data := make([]byte, len(p))
	copy(data, p)
	if data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if err := w.ensureConnLocked(); err != nil {
		return len(p), nil
	}

	_ = w.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := w.conn.Write(data); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(retryInterval)
		return len(p), nil
	}
	return len(p), nil
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *LogstashWriter) ensureConnLocked() error {
	if w.conn != nil {
		return nil
	}
	now := time.Now()
	if !w.nextRetry.IsZero() && now.Before(w.nextRetry) {
		return errRetryCooldown
	}
	conn, err := net.DialTimeout("tcp", w.addr, dialTimeout)
	if err != nil {
		w.nextRetry = now.Add(retryInterval)
		return err
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return nil
}
