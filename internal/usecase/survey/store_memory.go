package survey

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// MemoryStore keeps sessions in process memory. Sessions expire after
// the configured TTL so an abandoned dialogue does not linger forever.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func memoryKey(userID int64) string {
	return fmt.Sprintf("survey:%d", userID)
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	v, ok := s.cache.Get(memoryKey(userID))
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	session, ok := v.(*Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type %T", v)
	}

	// Clone on the way out: the dispatcher reads sessions outside the
	// per-user lock, so the cached copy must never be shared.
	return session.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	s.cache.Set(memoryKey(session.UserID), session.Clone(), s.ttl)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.cache.Delete(memoryKey(userID))
	return nil
}
