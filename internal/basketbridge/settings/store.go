package settings

import (
	"sync"

	"basket-bridge/internal/basketbridge/retail"
)

type TokenInvalidator interface {
	Invalidate()
}

// Store holds the vendor configuration. Submissions take a snapshot at
// their start; updates replace the whole snapshot and drop the cached
// access token, since a token minted for the previous credentials must
// not be reused.
type Store struct {
	mux    sync.RWMutex
	cfg    retail.Config
	tokens TokenInvalidator
}

func New(initial retail.Config, tokens TokenInvalidator) *Store {
	return &Store{
		cfg:    initial,
		tokens: tokens,
	}
}

func (s *Store) Snapshot() retail.Config {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.cfg
}

func (s *Store) Update(cfg retail.Config) {
	s.mux.Lock()
	s.cfg = cfg
	s.mux.Unlock()
	s.tokens.Invalidate()
}
