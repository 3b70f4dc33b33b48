// Copyright © 2018 One Concern

package storage

import (
	"bytes"
	"context"
	"io"
)

const (
	// NoOverWrite fails a Put on an existing key
	NoOverWrite = true

	// OverWrite replaces the content of an existing key
	OverWrite = false
)

// Store implementations know how to write entries to a K/V model.
//
// Typically this is something file system-like, or an embedded key-value database.
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, bool) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	Clear(context.Context) error
}

// ReadTee reads from a source and duplicates the output to another destination store
func ReadTee(ctx context.Context, sStore Store, source string, dStore Store, destination string) ([]byte, error) {
	reader, err := sStore.Get(ctx, source)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	object, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	err = dStore.Put(ctx, destination, bytes.NewReader(object), NoOverWrite)
	if err != nil {
		return nil, err
	}
	return object, err
}
