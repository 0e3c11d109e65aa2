package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in process
type MemoryStore struct {
	mu         sync.RWMutex
	backendURL string
	keys       APIKeys
}

// NewMemoryStore seeds the store; an empty backendURL means unconfigured
func NewMemoryStore(backendURL string, keys map[string]string) *MemoryStore {
	s := &MemoryStore{backendURL: backendURL, keys: APIKeys{}}
	for k, v := range keys {
		if v != "" {
			s.keys[k] = v
		}
	}
	return s
}

func (s *MemoryStore) Get(context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(APIKeys, len(s.keys))
	for k, v := range s.keys {
		keys[k] = v
	}
	out := Settings{BackendURL: s.backendURL, Configured: s.backendURL != "", Keys: keys}
	if !out.Configured {
		out.BackendURL = DefaultBackendURL
	}
	return out, nil
}

func (s *MemoryStore) SetBackendURL(_ context.Context, raw string) error {
	u, err := ValidateBackendURL(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backendURL = u
	return nil
}

func (s *MemoryStore) UpdateKeys(_ context.Context, keys map[string]string) error {
	if err := validateKeyNames(keys); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range keys {
		if v == "" {
			delete(s.keys, k)
			continue
		}
		s.keys[k] = v
	}
	return nil
}
