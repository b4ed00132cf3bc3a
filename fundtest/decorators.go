package fundtest

import "github.com/iov-one/peerfund"

// Decorator is a mock implementation of the peerfund.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Otherwise the wrapped handler is called. Each method call is
// counted.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ peerfund.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Checker) (*peerfund.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Deliverer) (*peerfund.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that calls d around h.
func Decorate(h peerfund.Handler, d peerfund.Decorator) peerfund.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn peerfund.Handler
	dc peerfund.Decorator
}

func (d *decoratedHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
