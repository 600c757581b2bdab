package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v2"
)

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart and are not shared between server instances.
type MemoryStore struct {
	mu    sync.Mutex
	cache *ttlcache.Cache
}

func NewMemoryStore() *MemoryStore {
	cache := ttlcache.NewCache()
	cache.SkipTTLExtensionOnHit(true)
	return &MemoryStore{cache: cache}
}

func (s *MemoryStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.cache.Get(key); err == nil {
		return false, nil
	} else if !errors.Is(err, ttlcache.ErrNotFound) {
		return false, err
	}

	if err := s.cache.SetWithTTL(key, value, ttl); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	val, err := s.cache.Get(key)
	if errors.Is(err, ttlcache.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Remove does not look at expiry, so an expired entry the janitor has
	// not collected yet must not count as present.
	if _, err := s.cache.Get(key); err != nil {
		if errors.Is(err, ttlcache.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.cache.Remove(key); err != nil {
		if errors.Is(err, ttlcache.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return s.cache.Close()
}
