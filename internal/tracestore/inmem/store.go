// Package inmem provides a process-local tracestore.Sink, the default when
// config.TraceSink is "memory" and no durable sink is configured.
package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/pvkg/pvqa/internal/tracestore"
)

// Store is a mutex-guarded map of query id to Record. It does not evict;
// callers that run this process long-lived with TraceSinkMemory should
// expect memory to grow with query volume.
type Store struct {
	mu      sync.RWMutex
	records map[string]tracestore.Record
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(map[string]tracestore.Record)}
}

func (s *Store) Append(_ context.Context, rec tracestore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.QueryID] = rec
	return nil
}

func (s *Store) Load(_ context.Context, queryID string) (tracestore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[queryID]
	if !ok {
		return tracestore.Record{}, fmt.Errorf("tracestore/inmem: no record for query %q", queryID)
	}
	return rec, nil
}
