package store

import "transcriba/internal/platform/logger"

// Option mutates the Store during Open
type Option func(*Store) error

// WithLogger attaches a logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
