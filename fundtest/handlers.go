package fundtest

import "github.com/iov-one/peerfund"

// Handler is a mock implementation of peerfund.Handler that counts calls
// and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult peerfund.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult peerfund.DeliverResult
	DeliverErr    error
}

var _ peerfund.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler returns a handler that writes the key value pair on every
// call and then returns err.
func WriteHandler(key, value []byte, err error) peerfund.Handler {
	return writeHandler{key: key, value: value, err: err}
}

type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

func (h writeHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &peerfund.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &peerfund.DeliverResult{}, nil
}

// PanicHandler returns a handler that panics with given value.
func PanicHandler(msg interface{}) peerfund.Handler {
	return panicHandler{msg: msg}
}

type panicHandler struct {
	msg interface{}
}

func (h panicHandler) Check(peerfund.Context, peerfund.KVStore, peerfund.Tx) (*peerfund.CheckResult, error) {
	panic(h.msg)
}

func (h panicHandler) Deliver(peerfund.Context, peerfund.KVStore, peerfund.Tx) (*peerfund.DeliverResult, error) {
	panic(h.msg)
}
