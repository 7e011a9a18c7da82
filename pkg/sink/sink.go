// Package sink provides thread-safe line-oriented output sinks shared by
// concurrently executing tasks.
package sink

import (
	"io"
	"sync"

	"github.com/jlin7/taskpool/pkg/types"
)

// SyncWriter serializes whole-line writes to an underlying io.Writer. It
// carries its own lock, independent of any queue lock, so output
// contention never blocks queue operations. Two concurrent WriteLine
// calls never interleave characters within a line.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ types.Sink = (*SyncWriter)(nil)

// NewSyncWriter creates a sink writing to w
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

// WriteLine writes one whole line, appending a newline
func (s *SyncWriter) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.w, line+"\n")
	return err
}
