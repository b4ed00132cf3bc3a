package utils

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

// Recovery is a decorator to recover from panics in handlers, so we can
// return them as errors.
type Recovery struct{}

var _ peerfund.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Checker) (_ *peerfund.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Deliverer) (_ *peerfund.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
