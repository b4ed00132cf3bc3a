package reputation

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
	"github.com/iov-one/peerfund/x"
	"github.com/iov-one/peerfund/x/registry"
)

// RegisterRoutes registers the reputation handlers.
func RegisterRoutes(r peerfund.Registry, auth x.Authenticator) {
	r.Handle(UpdateTrustMsg{}.Path(), &updateTrustHandler{
		auth:      auth,
		reviewers: registry.NewReviewerBucket(),
	})
}

type updateTrustHandler struct {
	auth      x.Authenticator
	reviewers *orm.ModelBucket
}

func (h *updateTrustHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

func (h *updateTrustHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, member, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	var r registry.Reviewer
	switch err := h.reviewers.One(db, msg.Reviewer, &r); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		r = registry.Reviewer{Trust: 0, Registered: false}
	default:
		return nil, errors.Wrap(err, "cannot load reviewer")
	}

	r.Trust = NextTrust(r.Trust, msg.Vote)
	if err := h.reviewers.Put(db, msg.Reviewer, &r); err != nil {
		return nil, errors.Wrap(err, "cannot store reviewer")
	}

	return &peerfund.DeliverResult{
		Events: []peerfund.Event{
			peerfund.NewEvent("reviewer-trust-updated",
				"governance_member", member,
				"reviewer", msg.Reviewer,
				"vote", msg.Vote),
		},
	}, nil
}

// validate returns the message and the address of the governance member
// that signed it.
func (h *updateTrustHandler) validate(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*UpdateTrustMsg, peerfund.Address, error) {
	var msg UpdateTrustMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	member, err := h.governanceSigner(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	if err := registry.ValidateScore(msg.Vote); err != nil {
		return nil, nil, errors.Wrap(err, "vote")
	}
	return &msg, member, nil
}

func (h *updateTrustHandler) governanceSigner(ctx peerfund.Context, db peerfund.KVStore) (peerfund.Address, error) {
	for _, addr := range x.GetAddresses(ctx, h.auth) {
		switch ok, err := registry.IsGovernanceMember(db, addr); {
		case err != nil:
			return nil, errors.Wrap(err, "governance member")
		case ok:
			return addr, nil
		}
	}
	return nil, errors.Wrap(errors.ErrUnauthorized, "only governance members can vote")
}

// NextTrust returns the mean of the current trust and the vote, rounded
// down.
func NextTrust(current, vote uint32) uint32 {
	return uint32((uint64(current) + uint64(vote)) / 2)
}
