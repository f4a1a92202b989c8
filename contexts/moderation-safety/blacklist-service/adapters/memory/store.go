package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
	domainerrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"
)

// Store is an in-memory adapter for local runtime and tests.
type Store struct {
	mu    sync.RWMutex
	items map[string]entities.BlacklistItem
	now   func() time.Time
}

func NewStore(seed ...string) *Store {
	store := &Store{
		items: make(map[string]entities.BlacklistItem, len(seed)),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, raw := range seed {
		name, err := entities.NormalizeName(raw)
		if err != nil {
			continue
		}
		store.items[name] = entities.BlacklistItem{Name: name, CreatedAt: store.now()}
	}
	return store
}

func (s *Store) CreateItem(_ context.Context, item entities.BlacklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.Name]; exists {
		return domainerrors.ErrAlreadyExists
	}
	s.items[item.Name] = item
	return nil
}

func (s *Store) GetItem(_ context.Context, name string) (entities.BlacklistItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[name]
	return item, ok, nil
}

func (s *Store) ListItems(_ context.Context) ([]entities.BlacklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.BlacklistItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) Now() time.Time {
	return s.now()
}
