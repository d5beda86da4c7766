package mem

import "sync"

// Safe is a mutex-protected wrapper around Arena for concurrent access.
// Every operation takes the same lock.
type Safe struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafe creates a locked arena (use nil for DefaultConfig).
func NewSafe(config *Config) (*Safe, error) {
	a, err := New(config)
	if err != nil {
		return nil, err
	}
	return &Safe{a: a}, nil
}

// Alloc thread-safely allocates n bytes.
func (s *Safe) Alloc(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(n)
}

// Free thread-safely releases memory obtained from Alloc.
func (s *Safe) Free(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free(b)
}

// Inspect thread-safely describes the block behind b.
func (s *Safe) Inspect(b []byte) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Inspect(b)
}

// Stats thread-safely returns a snapshot of the arena's counters.
func (s *Safe) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// FreeListEntryCount thread-safely counts non-empty buddy size classes.
func (s *Safe) FreeListEntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.FreeListEntryCount()
}

// FreeChunks thread-safely counts chunks in the small pool.
func (s *Safe) FreeChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.FreeChunks()
}

// Verify thread-safely checks the arena's free-list invariants.
func (s *Safe) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Verify()
}
