// Copyright © 2018 One Concern

// Package bdgr implements a storage.Store backed by an embedded badger key-value database.
package bdgr

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v3"
	"github.com/oneconcern/revmon/pkg/errors"
	"github.com/oneconcern/revmon/pkg/storage"
	"github.com/oneconcern/revmon/pkg/storage/status"
	"go.uber.org/zap"
)

const retryInterval = 10 * time.Millisecond

var _ storage.Store = &Store{}

// Store keeps objects in a badger DB
type Store struct {
	db   *badger.DB
	path string
	l    *zap.Logger
}

// Option for the badger store
type Option func(*Store)

// WithLogger sets a logger for the store
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.l = l
		}
	}
}

// New opens a badger-backed store in the given directory.
//
// An empty path opens an in-memory database.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}

	options := badger.DefaultOptions(path).
		WithLoggingLevel(badger.WARNING).
		WithLogger(nil)
	if path == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, status.ErrStorageAPI.Wrapf("opening badger DB at %q: %v", path, err)
	}
	s.db = db
	s.l.Debug("badger store opened", zap.String("path", path))
	return s, nil
}

// Close the underlying DB
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) String() string {
	if s.path == "" {
		return "badger@memory"
	}
	return "badger@" + s.path
}

func (s *Store) Has(_ context.Context, key string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, e := txn.Get([]byte(key))
		return e
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, status.ErrStorageAPI.Wrap(err)
	}
	return true, nil
}

func (s *Store) Get(_ context.Context, key string) (io.ReadCloser, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, e := txn.Get([]byte(key))
		if e != nil {
			return e
		}
		value, e = item.ValueCopy(nil)
		return e
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, status.ErrNotExists.Wrapf("key %q", key)
		}
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	return io.NopCloser(bytes.NewReader(value)), nil
}

// Put stores an object. Transaction conflicts are retried until the context is done.
func (s *Store) Put(ctx context.Context, key string, source io.Reader, exclusive bool) error {
	value, err := io.ReadAll(source)
	if err != nil {
		return status.ErrStorageAPI.Wrapf("reading object for %q: %v", key, err)
	}
	return s.retry(ctx, func(txn *badger.Txn) error {
		if exclusive {
			_, e := txn.Get([]byte(key))
			if e == nil {
				return status.ErrExists.Wrapf("key %q", key)
			}
			if !errors.Is(e, badger.ErrKeyNotFound) {
				return e
			}
		}
		return txn.Set([]byte(key), value)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.retry(ctx, func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Keys lists all keys, in lexical order
func (s *Store) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	return keys, nil
}

func (s *Store) Clear(_ context.Context) error {
	if err := s.db.DropAll(); err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

// retry runs an update transaction, retrying on conflicts
func (s *Store) retry(ctx context.Context, update func(*badger.Txn) error) error {
	return backoff.Retry(func() error {
		err := s.db.Update(update)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, badger.ErrConflict):
			s.l.Debug("badger transaction conflict: retrying")
			return err // retry
		case errors.Is(err, status.ErrExists):
			return backoff.Permanent(err)
		default:
			return backoff.Permanent(status.ErrStorageAPI.Wrap(err))
		}
	},
		backoff.WithContext(backoff.NewConstantBackOff(retryInterval), ctx),
	)
}
