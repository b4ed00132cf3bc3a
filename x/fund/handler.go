package fund

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
	"github.com/iov-one/peerfund/x"
	"github.com/iov-one/peerfund/x/cash"
	"github.com/iov-one/peerfund/x/proposal"
	"github.com/iov-one/peerfund/x/registry"
	"github.com/iov-one/peerfund/x/utils"
)

// RegisterRoutes registers the fund handlers. Value is moved using
// control, which holds the pool wallet in custody.
func RegisterRoutes(r peerfund.Registry, auth x.Authenticator, control *cash.Controller) {
	control.RegisterCustody(PoolAddress)
	pool := NewPoolBucket()
	r.Handle(DepositMsg{}.Path(), &depositHandler{
		auth:    auth,
		control: control,
		pool:    pool,
	})
	r.Handle(AllocateMsg{}.Path(), &allocateHandler{
		auth:    auth,
		control: control,
		pool:    pool,
		guard:   &Guard{},
	})
}

type depositHandler struct {
	auth    x.Authenticator
	control *cash.Controller
	pool    *orm.ModelBucket
}

func (h *depositHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

func (h *depositHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	msg, contributor, pool, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	err = utils.Atomic(db, func(db peerfund.KVStore) error {
		pool.Balance += msg.Amount
		if err := savePool(db, h.pool, pool); err != nil {
			return errors.Wrap(err, "cannot store pool")
		}
		return h.control.MoveCoins(ctx, db, contributor, PoolAddress, msg.Amount)
	})
	if err != nil {
		return nil, err
	}

	peerfund.GetLogger(ctx).Info("Funds deposited",
		"contributor", contributor,
		"amount", msg.Amount,
		"balance", pool.Balance)
	return &peerfund.DeliverResult{
		Events: []peerfund.Event{
			peerfund.NewEvent("funds-deposited", "contributor", contributor, "amount", msg.Amount),
		},
	}, nil
}

func (h *depositHandler) validate(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*DepositMsg, peerfund.Address, *Pool, error) {
	var msg DepositMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	contributor := msg.Contributor
	if contributor == nil {
		contributor = x.Caller(ctx, h.auth)
	}
	if len(contributor) == 0 || !h.auth.HasAddress(ctx, contributor) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "contributor signature missing")
	}
	if contributor.Equals(PoolAddress) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "the pool cannot contribute to itself")
	}

	pool, err := loadPool(db, h.pool)
	if err != nil {
		return nil, nil, nil, err
	}
	if pool.Balance+msg.Amount < pool.Balance {
		return nil, nil, nil, errors.Wrap(errors.ErrOverflow, "pool balance")
	}
	return &msg, contributor, pool, nil
}

type allocateHandler struct {
	auth    x.Authenticator
	control *cash.Controller
	pool    *orm.ModelBucket
	// guard is held for the whole delivery, including the transfer.
	guard *Guard
}

func (h *allocateHandler) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &peerfund.CheckResult{}, nil
}

func (h *allocateHandler) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*peerfund.DeliverResult, error) {
	if !h.guard.Acquire() {
		return nil, errors.Wrap(ErrReentrant, "allocation in progress")
	}
	defer h.guard.Release()

	p, pool, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// State is final before the beneficiary receiver runs.
	err = utils.Atomic(db, func(db peerfund.KVStore) error {
		pool.Balance -= p.Budget
		if err := savePool(db, h.pool, pool); err != nil {
			return errors.Wrap(err, "cannot store pool")
		}
		p.Funded = true
		if err := proposal.Update(db, p); err != nil {
			return errors.Wrap(err, "cannot store proposal")
		}
		if p.Budget == 0 {
			return nil
		}
		if err := h.control.MoveCoins(ctx, db, PoolAddress, p.Beneficiary, p.Budget); err != nil {
			return errors.Wrapf(ErrTransferFailed, "pay %s: %s", p.Beneficiary, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	peerfund.GetLogger(ctx).Info("Funds allocated",
		"proposal_id", p.ID,
		"beneficiary", p.Beneficiary,
		"amount", p.Budget,
		"balance", pool.Balance)
	return &peerfund.DeliverResult{
		Data: []byte(p.ID),
		Events: []peerfund.Event{
			peerfund.NewEvent("funds-allocated", "beneficiary", p.Beneficiary, "amount", p.Budget),
		},
	}, nil
}

func (h *allocateHandler) validate(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx) (*proposal.Proposal, *Pool, error) {
	var msg AllocateMsg
	if err := peerfund.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	admin, err := registry.Admin(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the admin can allocate funds")
	}

	p, err := proposal.Get(db, msg.ProposalID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "proposal")
	}
	switch {
	case p.Funded:
		return nil, nil, errors.Wrapf(ErrAlreadyFunded, "proposal %q", p.ID)
	case p.ReviewCount == 0:
		return nil, nil, errors.Wrapf(ErrNoReviews, "proposal %q", p.ID)
	case !MeetsThreshold(p.ScoreSum, p.ReviewCount):
		return nil, nil, errors.Wrapf(ErrLowScore, "%d over %d reviews", p.ScoreSum, p.ReviewCount)
	}

	pool, err := loadPool(db, h.pool)
	if err != nil {
		return nil, nil, err
	}
	if pool.Balance < p.Budget {
		return nil, nil, errors.Wrapf(ErrInsufficientFunds, "budget %d, pool %d", p.Budget, pool.Balance)
	}
	if p.Beneficiary.Equals(PoolAddress) {
		return nil, nil, errors.Wrap(errors.ErrInvalidState, "the pool cannot be a beneficiary")
	}
	return p, pool, nil
}
