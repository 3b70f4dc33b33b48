package core

import (
	"go.uber.org/zap"
)

// DefaultLookahead is the depth up to which graphs are searched for cycles when the system is validated
const DefaultLookahead = 7

// Option sets options for a System
type Option func(*Settings)

// Settings defines various settings for core features
type Settings struct {
	logger       *zap.Logger
	lookahead    int
	graphFactory GraphFactory
	metrics      *Metrics
}

// WithLogger sets a logger for the system. It defaults to a no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l == nil {
			s.logger = zap.NewNop()
			return
		}
		s.logger = l
	}
}

// WithLookahead sets the depth of the cycle check. It defaults to DefaultLookahead
func WithLookahead(depth int) Option {
	return func(s *Settings) {
		if depth <= 0 {
			s.lookahead = DefaultLookahead
			return
		}
		s.lookahead = depth
	}
}

// WithGraphFactory sets the constructor of new revision graphs. It defaults to NewGraph
func WithGraphFactory(factory GraphFactory) Option {
	return func(s *Settings) {
		if factory == nil {
			s.graphFactory = NewGraph
			return
		}
		s.graphFactory = factory
	}
}

// WithMetrics enables the collection of metrics
func WithMetrics(m *Metrics) Option {
	return func(s *Settings) {
		s.metrics = m
	}
}

func defaultSettings() Settings {
	return Settings{
		logger:       zap.NewNop(),
		lookahead:    DefaultLookahead,
		graphFactory: NewGraph,
	}
}

// MutationOption alters the way a single mutation of the system is carried out
type MutationOption func(*mutationSettings)

type mutationSettings struct {
	skipValidation bool
}

// SkipValidation applies a mutation in place, without validating the system.
//
// This allows for batches of mutations which are only valid as a whole. The caller is responsible
// for calling Validate afterwards: a failed mutation may leave the system partially modified.
func SkipValidation() MutationOption {
	return func(s *mutationSettings) {
		s.skipValidation = true
	}
}
