package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zalepa/ridership/ridership"
)

// batch is one upload's corpus. The corpus is read-only, so a batch can be
// shared between concurrent requests without copying.
type batch struct {
	id      string
	corpus  *ridership.Corpus
	failed  []ridership.FileError
	files   int
	created time.Time
}

// batchStore keeps recent batches in memory. Nothing survives a restart.
type batchStore struct {
	mu       sync.Mutex
	items    map[string]*batch
	order    []string // oldest first
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

func newBatchStore(capacity int, ttl time.Duration) *batchStore {
	return &batchStore{
		items:    make(map[string]*batch),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *batchStore) add(c *ridership.Corpus, failed []ridership.FileError, files int) *batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	for len(s.order) >= s.capacity {
		s.removeLocked(s.order[0])
	}

	b := &batch{
		id:      uuid.NewString(),
		corpus:  c,
		failed:  failed,
		files:   files,
		created: s.now(),
	}
	s.items[b.id] = b
	s.order = append(s.order, b.id)
	return b
}

func (s *batchStore) get(id string) (*batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(b.created) > s.ttl {
		s.removeLocked(id)
		return nil, false
	}
	return b, true
}

func (s *batchStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *batchStore) expireLocked() {
	now := s.now()
	for len(s.order) > 0 {
		b := s.items[s.order[0]]
		if now.Sub(b.created) <= s.ttl {
			return
		}
		s.removeLocked(b.id)
	}
}

func (s *batchStore) removeLocked(id string) {
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
