package app

import (
	"fmt"
	"sync"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp runs a handler against a versioned store.
//
// All writes of delivered transactions are kept in a pending cache until
// Commit persists them as a new version. Calls are serialized, only one
// CheckTx, DeliverTx or Commit is executed at a time.
type StoreApp struct {
	mu sync.Mutex

	logger log.Logger
	// name is used in log entries
	name string

	store   peerfund.CommitKVStore
	pending peerfund.KVCacheWrap

	handler     peerfund.Handler
	initializer peerfund.Initializer

	chainID string
	// height is the version the next commit creates
	height int64
	// baseContext contains context info that is valid for
	// the lifetime of this app (eg. chainID)
	baseContext peerfund.Context
}

// NewStoreApp loads the latest version of the store and returns an
// application executing handler against it.
func NewStoreApp(name string, store peerfund.CommitKVStore, handler peerfund.Handler, baseContext peerfund.Context) (*StoreApp, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	latest, err := store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	s := &StoreApp{
		name:        name,
		store:       store,
		pending:     store.CacheWrap(),
		handler:     handler,
		height:      latest.Version + 1,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(s.pending)
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		s.chainID = chainID
		s.baseContext = peerfund.WithChainID(s.baseContext, chainID)
	}
	return s, nil
}

// WithInit is used to set the initializer called by InitChain.
func (s *StoreApp) WithInit(init peerfund.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and returns it.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger.With("app", s.name)
	return s
}

// Logger returns the application logger.
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// ChainID returns the chain id, empty if the chain was never initialized.
func (s *StoreApp) ChainID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainID
}

// InitChain stores the chain id and initializes all extensions from the
// genesis document. It can be called only once in the lifetime of a
// store.
func (s *StoreApp) InitChain(gen Genesis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "state previously loaded for chain %s", s.chainID)
	}
	if len(gen.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	if s.initializer == nil {
		return errors.Wrap(errors.ErrHuman, "no initializer")
	}
	if err := saveChainID(s.pending, gen.ChainID); err != nil {
		return err
	}
	if err := s.initializer.FromGenesis(gen.AppState, s.pending); err != nil {
		s.pending.Discard()
		s.pending = s.store.CacheWrap()
		return errors.Wrap(err, "genesis")
	}
	s.chainID = gen.ChainID
	s.baseContext = peerfund.WithChainID(s.baseContext, gen.ChainID)
	s.logger.Info("Chain initialized", "chain_id", gen.ChainID)
	return nil
}

// DeliverTx executes the transaction. Its writes become part of the next
// commit.
func (s *StoreApp) DeliverTx(tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.callContext("deliver_tx", tx)
	return s.handler.Deliver(ctx, s.pending, tx)
}

// CheckTx validates the transaction against the pending state. Nothing is
// written.
func (s *StoreApp) CheckTx(tx peerfund.Tx) (*peerfund.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.callContext("check_tx", tx)
	cache := s.pending.CacheWrap()
	defer cache.Discard()
	return s.handler.Check(ctx, cache, tx)
}

func (s *StoreApp) callContext(call string, tx peerfund.Tx) peerfund.Context {
	ctx := peerfund.WithHeight(s.baseContext, s.height)
	ctx = peerfund.WithLogger(ctx, s.logger)
	return peerfund.WithLogInfo(ctx, "call", call, "height", s.height, "path", peerfund.GetPath(tx))
}

// Commit persists all delivered transactions as a new version.
func (s *StoreApp) Commit() (peerfund.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pending.Write(); err != nil {
		return peerfund.CommitID{}, errors.Wrap(err, "write pending")
	}
	id, err := s.store.Commit()
	if err != nil {
		return peerfund.CommitID{}, errors.Wrap(err, "commit")
	}
	s.pending = s.store.CacheWrap()
	s.height = id.Version + 1
	s.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash),
	)
	return id, nil
}

// Query runs fn with read access to the pending state.
func (s *StoreApp) Query(fn func(peerfund.ReadOnlyKVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.pending.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}
