package store

import (
	"context"
	"encoding/json"
	"sync"

	"problem-hunt-api/internal/model"
)

type memoryEntry struct {
	partitionKey string
	body         json.RawMessage
}

// Memory is the in-process Store used by tests. Safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{collections: map[string]map[string]memoryEntry{}}
}

func (s *Memory) Create(_ context.Context, collection string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = map[string]memoryEntry{}
		s.collections[collection] = docs
	}

	if _, exists := docs[doc.DocID()]; exists {
		return model.ErrConflict
	}

	docs[doc.DocID()] = memoryEntry{partitionKey: doc.DocPartitionKey(), body: body}
	return nil
}

func (s *Memory) Get(_ context.Context, collection string, id string, partitionKey string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.collections[collection][id]
	if !ok || entry.partitionKey != partitionKey {
		return nil, model.ErrNotFound
	}
	return entry.body, nil
}

func (s *Memory) Find(_ context.Context, collection string, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.collections[collection][id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return entry.body, nil
}

func (s *Memory) Query(_ context.Context, collection string, filter Filter) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]json.RawMessage, 0)
	for _, entry := range s.collections[collection] {
		if matchesFilter(entry.body, filter) {
			docs = append(docs, entry.body)
		}
	}
	return docs, nil
}

func (s *Memory) Replace(_ context.Context, collection string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return model.ErrNotFound
	}
	if _, exists := docs[doc.DocID()]; !exists {
		return model.ErrNotFound
	}

	docs[doc.DocID()] = memoryEntry{partitionKey: doc.DocPartitionKey(), body: body}
	return nil
}

func (s *Memory) Delete(_ context.Context, collection string, id string, partitionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.collections[collection][id]
	if !ok || entry.partitionKey != partitionKey {
		return model.ErrNotFound
	}

	delete(s.collections[collection], id)
	return nil
}

func matchesFilter(body json.RawMessage, filter Filter) bool {
	if len(filter) == 0 {
		return true
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}

	for key, want := range filter {
		got, ok := fields[key].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
