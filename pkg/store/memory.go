package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/netweave/pkg/netlist"
)

// MemoryStore keeps circuits in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]document
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]document)}
}

func (s *MemoryStore) Save(ctx context.Context, name string, c *netlist.Circuit) (Record, error) {
	doc, err := newDocument(name, c)
	if err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return doc.Record, nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*netlist.Circuit, Record, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, Record{}, notFound(id)
	}
	c, err := doc.circuit()
	if err != nil {
		return nil, Record{}, err
	}
	return c, doc.Record, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return notFound(id)
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	out := make([]Record, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Record)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
