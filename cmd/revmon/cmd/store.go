package cmd

import (
	"context"
	"path/filepath"

	"github.com/oneconcern/revmon/pkg/core"
	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/dlogger"
	"github.com/oneconcern/revmon/pkg/errors"
	"github.com/oneconcern/revmon/pkg/model"
	"github.com/oneconcern/revmon/pkg/storage"
	"github.com/oneconcern/revmon/pkg/storage/bdgr"
	"github.com/oneconcern/revmon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	storeLocalFS = "localfs"
	storeBadger  = "badger"
)

// openStore opens the archive store for a backend. The returned func releases the store.
func openStore(backend, path string, logger *zap.Logger) (storage.Store, func(), error) {
	store, closer, err := openBackend(backend, path, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.Instrument(store, storage.WithLogger(logger)), closer, nil
}

func openBackend(backend, path string, logger *zap.Logger) (storage.Store, func(), error) {
	switch backend {
	case storeLocalFS, "":
		if path == "" {
			return localfs.New(nil), func() {}, nil
		}
		return localfs.New(afero.NewBasePathFs(afero.NewOsFs(), path)), func() {}, nil
	case storeBadger:
		if path == "" {
			path = filepath.Join(".revmon", "badger")
		}
		db, err := bdgr.New(path, bdgr.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				logger.Warn("closing store", zap.Stringer("store", db), zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, status.ErrInvalidArgument.Wrapf("unknown store backend %q", backend)
	}
}

// session carries what a command needs to work on an archived system
type session struct {
	ctx    context.Context
	name   string
	store  storage.Store
	logger *zap.Logger
	close  func()
}

func newSession() (*session, error) {
	logger, err := dlogger.GetLogger(revmonFlags.root.logLevel, dlogger.WithConsoleEncoding())
	if err != nil {
		return nil, err
	}
	store, closer, err := openStore(revmonFlags.root.store, revmonFlags.root.path, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		ctx:    context.Background(),
		name:   revmonFlags.root.system,
		store:  store,
		logger: logger,
		close: func() {
			closer()
			_ = logger.Sync()
		},
	}, nil
}

func (s *session) options() []core.Option {
	return []core.Option{
		core.WithLogger(s.logger),
		core.WithLookahead(revmonFlags.root.lookahead),
	}
}

// load retrieves the archived system. An empty system is returned when none is archived yet and allowNew is set.
func (s *session) load(allowNew bool) (*core.System, error) {
	sys, err := core.LoadSystem(s.ctx, s.store, s.name, s.options()...)
	if err != nil {
		if allowNew && errors.Is(err, status.ErrNotFound) {
			s.logger.Info("starting a new system", zap.String("system", s.name), zap.Stringer("store", s.store))
			return core.New(s.options()...), nil
		}
		return nil, err
	}
	return sys, nil
}

func (s *session) save(sys *core.System) error {
	return core.SaveSystem(s.ctx, s.store, s.name, sys)
}

func (s *session) exists() (bool, error) {
	return s.store.Has(s.ctx, model.GetArchivePathToSystem(s.name))
}

// update loads the archived system, applies a change and archives the result
func update(allowNew bool, apply func(*core.System) error) {
	sess, err := newSession()
	if err != nil {
		exitOn("open session", err)
		return
	}
	defer sess.close()

	sys, err := sess.load(allowNew)
	if err != nil {
		exitOn("load system "+sess.name, err)
		return
	}
	if err = apply(sys); err != nil {
		exitOn("update system "+sess.name, err)
		return
	}
	if err = sess.save(sys); err != nil {
		exitOn("save system "+sess.name, err)
	}
}

// query loads the archived system and runs a read-only operation on it
func query(run func(*core.System) error) {
	sess, err := newSession()
	if err != nil {
		exitOn("open session", err)
		return
	}
	defer sess.close()

	sys, err := sess.load(false)
	if err != nil {
		exitOn("load system "+sess.name, err)
		return
	}
	if err = run(sys); err != nil {
		exitOn("query system "+sess.name, err)
	}
}
