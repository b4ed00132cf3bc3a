package registry

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
	"github.com/iov-one/peerfund/x"
)

// RegisterRoutes registers the registry handlers.
func RegisterRoutes(r peerfund.Registry, auth x.Authenticator) {
	r.Handle(RegisterReviewerMsg{}.Path(), &registerReviewerHandler{
		auth:   auth,
		bucket: NewReviewerBucket(),
	})
}

type registerReviewerHandler struct {
	auth   x.Authenticator
	bucket *orm.ModelBucket
}

func (h *registerReviewerHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

func (h *registerReviewerHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Registering again resets the trust.
	r := Reviewer{Trust: InitialTrust, Registered: true}
	if err := h.bucket.Put(db, msg.Reviewer, &r); err != nil {
		return nil, errors.Wrap(err, "cannot store reviewer")
	}
	return &peerfund.DeliverResult{
		Data: msg.Reviewer,
		Events: []peerfund.Event{
			peerfund.NewEvent("reviewer-registered", "reviewer", msg.Reviewer),
		},
	}, nil
}

func (h *registerReviewerHandler) validate(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*RegisterReviewerMsg, error) {
	var msg RegisterReviewerMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	admin, err := Admin(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the admin can register reviewers")
	}
	if err := msg.Reviewer.Validate(); err != nil {
		return nil, errors.Wrap(err, "reviewer")
	}
	return &msg, nil
}
