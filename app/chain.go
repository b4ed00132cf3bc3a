package app

import (
	"reflect"

	"github.com/iov-one/peerfund"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []peerfund.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    x.NewSignerDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    router,
  )
*/
func ChainDecorators(chain ...peerfund.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil
// decorators are ignored.
func (d Decorators) Chain(chain ...peerfund.Decorator) Decorators {
	next := make([]peerfund.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dc := range chain {
		if isNil(dc) {
			continue
		}
		next = append(next, dc)
	}
	return Decorators{chain: next}
}

func isNil(d peerfund.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h peerfund.Handler) peerfund.Handler {
	// the top of the chain is executed first, so wrap starting from
	// the last decorator
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    peerfund.Decorator
	next peerfund.Handler
}

var _ peerfund.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
