package core

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/errors"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/oneconcern/revmon/pkg/storage"
	storagestatus "github.com/oneconcern/revmon/pkg/storage/status"
)

// SaveSystem archives the serialized form of a system under a name, replacing any prior version
func SaveSystem(ctx context.Context, store storage.Store, name string, s *System) error {
	if err := model.ValidateSystemName(name); err != nil {
		return err
	}
	doc := s.Serialize()
	return store.Put(ctx, model.GetArchivePathToSystem(name), bytes.NewBufferString(doc), storage.OverWrite)
}

// LoadSystem retrieves and parses an archived system
func LoadSystem(ctx context.Context, store storage.Store, name string, opts ...Option) (*System, error) {
	if err := model.ValidateSystemName(name); err != nil {
		return nil, err
	}
	rdr, err := store.Get(ctx, model.GetArchivePathToSystem(name))
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, status.ErrNotFound.Wrapf("system %q in %v", name, store)
		}
		return nil, err
	}
	defer rdr.Close()

	doc, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	return Parse(string(doc), opts...)
}

// ListSystems lists the names of all archived systems, in lexical order
func ListSystems(ctx context.Context, store storage.Store) ([]string, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if name, ok := model.GetSystemNameFromArchivePath(key); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeleteSystem removes an archived system
func DeleteSystem(ctx context.Context, store storage.Store, name string) error {
	if err := model.ValidateSystemName(name); err != nil {
		return err
	}
	key := model.GetArchivePathToSystem(name)
	has, err := store.Has(ctx, key)
	if err != nil {
		return err
	}
	if !has {
		return status.ErrNotFound.Wrapf("system %q in %v", name, store)
	}
	return store.Delete(ctx, key)
}

// CopySystem copies an archived system to another store. It fails if the destination exists already.
func CopySystem(ctx context.Context, from storage.Store, to storage.Store, name string) error {
	if err := model.ValidateSystemName(name); err != nil {
		return err
	}
	key := model.GetArchivePathToSystem(name)
	if _, err := storage.ReadTee(ctx, from, key, to, key); err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return status.ErrNotFound.Wrapf("system %q in %v", name, from)
		}
		return err
	}
	return nil
}
