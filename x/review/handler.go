package review

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/x"
	"github.com/iov-one/peerfund/x/proposal"
	"github.com/iov-one/peerfund/x/registry"
)

// RegisterRoutes registers the review handlers.
func RegisterRoutes(r peerfund.Registry, auth x.Authenticator) {
	r.Handle(SubmitReviewMsg{}.Path(), &submitHandler{auth: auth})
}

type submitHandler struct {
	auth x.Authenticator
}

func (h *submitHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

func (h *submitHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, reviewer, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if p.ScoreSum+uint64(msg.Score) < p.ScoreSum || p.ReviewCount+1 == 0 {
		return nil, errors.Wrap(errors.ErrOverflow, "proposal aggregates")
	}

	r := Review{
		ProposalID: msg.ProposalID,
		DocumentID: msg.DocumentID,
		Score:      msg.Score,
		Reviewer:   reviewer,
	}
	if err := create(db, &r); err != nil {
		return nil, errors.Wrap(err, "cannot store review")
	}
	p.ScoreSum += uint64(msg.Score)
	p.ReviewCount++
	if err := proposal.Update(db, p); err != nil {
		return nil, errors.Wrap(err, "cannot update proposal")
	}

	return &peerfund.DeliverResult{
		Events: []peerfund.Event{
			peerfund.NewEvent("proposal-reviewed",
				"reviewer", reviewer,
				"proposal_id", msg.ProposalID,
				"score", msg.Score),
		},
	}, nil
}

// validate checks the caller, then the score, then the proposal.
func (h *submitHandler) validate(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*SubmitReviewMsg, peerfund.Address, *proposal.Proposal, error) {
	var msg SubmitReviewMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	reviewer := x.Caller(ctx, h.auth)
	switch ok, err := registry.IsRegisteredReviewer(db, reviewer); {
	case err != nil:
		return nil, nil, nil, errors.Wrap(err, "reviewer")
	case !ok:
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "caller is not a registered reviewer")
	}

	if err := registry.ValidateScore(msg.Score); err != nil {
		return nil, nil, nil, err
	}

	p, err := proposal.Get(db, msg.ProposalID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "proposal")
	}
	return &msg, reviewer, p, nil
}
