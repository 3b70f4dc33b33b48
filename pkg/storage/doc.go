// Copyright © 2018 One Concern

// Package storage provides interface to handle backend storage objects.
//
// This package supports the following backends:
//   - local file system (localfs)
//   - embedded badger KV store (bdgr)
package storage
