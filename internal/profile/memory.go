// internal/profile/memory.go

package profile

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for local runs and tests
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

// Put inserts or replaces a profile
func (s *MemoryStore) Put(p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p.Clone()
}

func (s *MemoryStore) GetProfile(ctx context.Context, id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Profile, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			result[id] = p.Clone()
		}
	}
	return result, nil
}

// Clone returns a deep copy of p
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.BirthDate != nil {
		t := *p.BirthDate
		c.BirthDate = &t
	}
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	if p.Bio != nil {
		bio := *p.Bio
		c.Bio = &bio
	}
	if p.AttachmentStyle != nil {
		style := *p.AttachmentStyle
		c.AttachmentStyle = &style
	}
	c.Interests = append([]string(nil), p.Interests...)
	c.PersonalityTraits = make(map[string]float64, len(p.PersonalityTraits))
	for k, v := range p.PersonalityTraits {
		c.PersonalityTraits[k] = v
	}
	return &c
}
