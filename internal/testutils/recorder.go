package testutils

import (
	"sync"
)

// Recorder collects the order in which task executions begin. Safe for
// concurrent use from multiple workers.
type Recorder struct {
	mu  sync.Mutex
	ids []string
}

// NewRecorder creates a new empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one execution ID
func (r *Recorder) Record(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

// IDs returns a copy of the recorded IDs in recording order
func (r *Recorder) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of recorded executions
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
