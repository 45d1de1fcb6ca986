package session

import (
	"sort"
	"sync"

	"github.com/hupe1980/agentrelay/core"
)

// InMemoryStore is a volatile transcript store keeping run histories in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo setups. Returned slices are copies to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string][]core.Message
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{transcripts: make(map[string][]core.Message)}
}

// Record appends messages to a run's transcript, creating it lazily. It
// satisfies the engine's transcript sink contract.
func (s *InMemoryStore) Record(runID string, msgs ...core.Message) {
	if len(msgs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[runID] = append(s.transcripts[runID], msgs...)
}

// Messages returns a copy of the transcript for a run. The second return
// reports whether the run is known.
func (s *InMemoryStore) Messages(runID string) ([]core.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.transcripts[runID]
	if !ok {
		return nil, false
	}
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, true
}

// RunIDs returns the known run IDs in sorted order.
func (s *InMemoryStore) RunIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.transcripts))
	for id := range s.transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Delete removes a run's transcript. Deleting an unknown run is a no-op.
func (s *InMemoryStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transcripts, runID)
}

// Len returns the number of stored transcripts.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transcripts)
}
