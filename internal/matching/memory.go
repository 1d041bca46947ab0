// internal/matching/memory.go

package matching

import (
	"context"
	"sort"
	"sync"
)

// MemoryInteractionStore keeps interactions in process. Used for local runs and tests.
type MemoryInteractionStore struct {
	mu     sync.RWMutex
	events []*InteractionEvent
}

func NewMemoryInteractionStore() *MemoryInteractionStore {
	return &MemoryInteractionStore{}
}

func (s *MemoryInteractionStore) Append(ctx context.Context, event *InteractionEvent) error {
	cp := *event
	cp.ContextData = copyContextData(event.ContextData)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, &cp)
	return nil
}

func (s *MemoryInteractionStore) RecentByUser(ctx context.Context, userID string, limit int) ([]*InteractionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*InteractionEvent
	// Walk backwards so equal timestamps keep newest-inserted first
	for i := len(s.events) - 1; i >= 0; i-- {
		if e := s.events[i]; e.UserID == userID {
			cp := *e
			cp.ContextData = copyContextData(e.ContextData)
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored interactions
func (s *MemoryInteractionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func copyContextData(c ContextData) ContextData {
	if c == nil {
		return nil
	}
	cp := make(ContextData, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// MemorySuccessPatternStore keeps success patterns in process
type MemorySuccessPatternStore struct {
	mu       sync.RWMutex
	patterns []*SuccessPattern
}

func NewMemorySuccessPatternStore() *MemorySuccessPatternStore {
	return &MemorySuccessPatternStore{}
}

func (s *MemorySuccessPatternStore) Append(ctx context.Context, pattern *SuccessPattern) error {
	cp := *pattern

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, &cp)
	return nil
}

func (s *MemorySuccessPatternStore) ListByUser(ctx context.Context, userID string, limit int) ([]*SuccessPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*SuccessPattern
	for i := len(s.patterns) - 1; i >= 0; i-- {
		if p := s.patterns[i]; p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored success patterns
func (s *MemorySuccessPatternStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}
