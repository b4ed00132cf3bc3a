package x

import (
	"context"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// WithSigners returns a context declaring that given principals authorized
// the call. Previously declared signers are replaced.
func WithSigners(ctx peerfund.Context, signers ...peerfund.Condition) peerfund.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// SignerAuth reads the signers declared with WithSigners.
type SignerAuth struct{}

var _ Authenticator = SignerAuth{}

// GetConditions returns who signed the current context. May be empty.
func (SignerAuth) GetConditions(ctx peerfund.Context) []peerfund.Condition {
	val, _ := ctx.Value(contextKeySigners).([]peerfund.Condition)
	return val
}

// HasAddress returns true if any signer has given address.
func (a SignerAuth) HasAddress(ctx peerfund.Context, addr peerfund.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// SignedTx is implemented by transactions that declare their signers.
type SignedTx interface {
	peerfund.Tx
	GetSigners() []peerfund.Condition
}

// SignerDecorator copies the signers declared by the transaction into
// the context, where SignerAuth can read them. Signers are principals and
// no signature is verified.
//
// Conditions of a reserved extension belong to that extension's state
// and cannot be declared by a transaction.
type SignerDecorator struct {
	reserved []string
}

var _ peerfund.Decorator = SignerDecorator{}

// NewSignerDecorator returns a decorator exposing transaction signers.
func NewSignerDecorator() SignerDecorator {
	return SignerDecorator{}
}

// Reserve returns a decorator that also rejects conditions of given
// extensions.
func (d SignerDecorator) Reserve(extensions ...string) SignerDecorator {
	reserved := make([]string, 0, len(d.reserved)+len(extensions))
	reserved = append(reserved, d.reserved...)
	d.reserved = append(reserved, extensions...)
	return d
}

// Check declares the signers and calls next.
func (d SignerDecorator) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Checker) (*peerfund.CheckResult, error) {
	ctx, err := d.withTxSigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

// Deliver declares the signers and calls next.
func (d SignerDecorator) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Deliverer) (*peerfund.DeliverResult, error) {
	ctx, err := d.withTxSigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d SignerDecorator) withTxSigners(ctx peerfund.Context, tx peerfund.Tx) (peerfund.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers := stx.GetSigners()
	for i, s := range signers {
		ext, _, _, err := s.Parse()
		if err != nil {
			return nil, errors.Wrapf(err, "signer %d", i)
		}
		for _, r := range d.reserved {
			if ext == r {
				return nil, errors.Wrapf(errors.ErrUnauthorized, "signer %d: %s conditions are reserved", i, ext)
			}
		}
	}
	return WithSigners(ctx, signers...), nil
}
