package config

import (
	"sync/atomic"

	"github.com/openclaw/claw-runner/internal/models"
)

// Store holds the current config snapshot. Snapshots are never mutated after
// they are published; Reload swaps in a new one.
type Store struct {
	path string
	cur  atomic.Pointer[models.Config]
}

// NewStore creates a store for the config file at path, seeded with defaults.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.cur.Store(models.NewConfig())
	return s
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Current returns the current snapshot. Never nil.
func (s *Store) Current() *models.Config {
	return s.cur.Load()
}

// Reload re-reads the config file. On a malformed file the defaults are
// published and the parse error is returned for logging.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	s.cur.Store(cfg)
	return err
}
