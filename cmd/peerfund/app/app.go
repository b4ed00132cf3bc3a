package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/app"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/store/iavl"
	"github.com/iov-one/peerfund/x"
	"github.com/iov-one/peerfund/x/cash"
	"github.com/iov-one/peerfund/x/fund"
	"github.com/iov-one/peerfund/x/proposal"
	"github.com/iov-one/peerfund/x/registry"
	"github.com/iov-one/peerfund/x/reputation"
	"github.com/iov-one/peerfund/x/review"
	"github.com/iov-one/peerfund/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is used in log entries and as the database name.
const Name = "peerfund"

// Authenticator returns the authentication used by all handlers. Signers
// are taken from the transaction as declared.
func Authenticator() x.Authenticator {
	return x.SignerAuth{}
}

// Chain returns the decorators every transaction passes through before
// reaching the router.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// fund accounts are moved by the fund only
		x.NewSignerDecorator().Reserve(fund.Extension),
		// a failed delivery leaves no trace in the state
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all extensions. Wallet
// movements of the cash and fund extensions go through control.
func Router(authFn x.Authenticator, control *cash.Controller) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, control)
	registry.RegisterRoutes(r, authFn)
	proposal.RegisterRoutes(r, authFn)
	review.RegisterRoutes(r, authFn)
	reputation.RegisterRoutes(r, authFn)
	fund.RegisterRoutes(r, authFn, control)
	return r
}

// Stack wires up the router with the decorator chain.
func Stack(control *cash.Controller) peerfund.Handler {
	return Chain().WithHandler(Router(Authenticator(), control))
}

// Initializers returns the initializer of every extension that reads
// the genesis document.
func Initializers(control *cash.Controller) peerfund.Initializer {
	return app.ChainInitializers(
		registry.Initializer{},
		cash.Initializer{Control: control},
	)
}

// CommitKVStore returns a store persisting the data under home. An
// empty home returns a memory backed store.
func CommitKVStore(home string) (iavl.CommitStore, error) {
	if home == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}
	dir, err := filepath.Abs(filepath.Join(home, "data"))
	if err != nil {
		return iavl.CommitStore{}, errors.Wrapf(errors.ErrInvalidInput, "home %q: %s", home, err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return iavl.CommitStore{}, errors.Wrapf(errors.ErrDatabase, "create %s: %s", dir, err)
	}
	return iavl.NewCommitStore(dir, Name), nil
}

// Application constructs the application over a store kept under home.
// The returned store must be closed by the caller once the application
// is no longer used.
func Application(home string, logger log.Logger) (*app.StoreApp, iavl.CommitStore, error) {
	kv, err := CommitKVStore(home)
	if err != nil {
		return nil, kv, err
	}
	control := cash.NewController()
	ctx := peerfund.WithLogger(context.Background(), logger)
	s, err := app.NewStoreApp(Name, kv, Stack(control), ctx)
	if err != nil {
		kv.Close()
		return nil, kv, err
	}
	s.WithInit(Initializers(control)).WithLogger(logger)
	return s, kv, nil
}
