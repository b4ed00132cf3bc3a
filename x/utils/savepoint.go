package utils

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

// Savepoint isolates all data written inside of the call, and commits or
// rolls back depending on the call result.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ peerfund.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a savepoint
func (s Savepoint) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Checker) (*peerfund.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *peerfund.CheckResult
	err := Atomic(db, func(db peerfund.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a savepoint
func (s Savepoint) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Deliverer) (*peerfund.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *peerfund.DeliverResult
	err := Atomic(db, func(db peerfund.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Atomic runs fn on a cache wrap of db. All writes made by fn are written
// to db if it succeeds and discarded otherwise. A store that cannot be
// cache wrapped is passed to fn directly.
func Atomic(db peerfund.KVStore, fn func(peerfund.KVStore) error) error {
	cstore, ok := db.(peerfund.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
