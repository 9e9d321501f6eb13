package server

import (
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
)

const sessionCookie = "ssid"

// sessionStore maps session ids to user ids. Every successful lookup
// restarts the ttl. The get-then-set refresh and drop share one mutex, so a
// dropped session is never written back.
type sessionStore struct {
	mtx   sync.Mutex
	cache gcache.Cache
	ttl   time.Duration
}

func newSessionStore(size int, ttl time.Duration) *sessionStore {
	return &sessionStore{
		cache: gcache.New(size).LRU().Expiration(ttl).Build(),
		ttl:   ttl,
	}
}

func (s *sessionStore) create(uid int64) (string, error) {
	ssid := uuid.New().String()

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if err := s.cache.Set(ssid, uid); err != nil {
		return "", err
	}
	return ssid, nil
}

func (s *sessionStore) lookup(ssid string) optional.Option[int64] {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	val, err := s.cache.Get(ssid)
	if err != nil {
		return optional.None[int64]()
	}

	uid := val.(int64)
	_ = s.cache.Set(ssid, uid)
	return optional.Some(uid)
}

func (s *sessionStore) drop(ssid string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.cache.Remove(ssid)
}
