package proposal

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/x"
)

// RegisterRoutes registers the proposal handlers.
func RegisterRoutes(r peerfund.Registry, auth x.Authenticator) {
	r.Handle(SubmitProposalMsg{}.Path(), &submitHandler{auth: auth})
}

type submitHandler struct {
	auth x.Authenticator
}

func (h *submitHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

func (h *submitHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, researcher, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	p := Proposal{
		ID:                    msg.ID,
		Title:                 msg.Title,
		PrincipalInvestigator: msg.PrincipalInvestigator,
		ResearcherID:          msg.ResearcherID,
		Institution:           msg.Institution,
		Budget:                msg.Budget,
		Beneficiary:           researcher,
	}
	if err := create(db, &p); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &peerfund.DeliverResult{
		Data: []byte(p.ID),
		Events: []peerfund.Event{
			peerfund.NewEvent("proposal-submitted", "researcher", researcher, "proposal_id", p.ID),
		},
	}, nil
}

func (h *submitHandler) validate(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*SubmitProposalMsg, peerfund.Address, error) {
	var msg SubmitProposalMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	switch ok, err := bucket.Has(db, []byte(msg.ID)); {
	case err != nil:
		return nil, nil, errors.Wrap(err, "cannot check if proposal is unique")
	case ok:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "proposal %q already submitted", msg.ID)
	}

	researcher := x.Caller(ctx, h.auth)
	if len(researcher) == 0 {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "message must be signed")
	}
	return &msg, researcher, nil
}
