package logging

import (
	"fmt"
	"io"
	"os"
)

// OpenFile creates a logger that appends to path. The returned closer
// must be called on shutdown; messages logged after Close are dropped.
func OpenFile(path string, level Level) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(Config{Level: level, Output: f, Prefix: "chonker"})
	return l, closerFunc(func() error {
		l.sink.mu.Lock()
		l.sink.closed = true
		l.sink.mu.Unlock()
		return f.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
