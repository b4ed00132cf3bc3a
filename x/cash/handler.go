package cash

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r peerfund.Registry, auth x.Authenticator, control *Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ peerfund.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control *Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and signed by the source.
func (h SendHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

// Deliver moves the coins from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(ctx, db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &peerfund.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx peerfund.Context, tx peerfund.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if h.control.IsCustody(msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is a custody account", msg.Source)
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
