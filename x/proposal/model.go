package proposal

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
)

const (
	bucketName = "proposal"

	maxIDLength = 128
)

// Validate checks the stored record.
func (p *Proposal) Validate() error {
	if err := validateID(p.ID); err != nil {
		return err
	}
	if err := p.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if p.ReviewCount == 0 && p.ScoreSum != 0 {
		return errors.Wrap(errors.ErrInvalidState, "score without reviews")
	}
	return nil
}

func validateID(id string) error {
	switch {
	case id == "":
		return errors.Wrap(errors.ErrEmpty, "id")
	case len(id) > maxIDLength:
		return errors.Wrapf(errors.ErrInvalidInput, "id longer than %d", maxIDLength)
	}
	return nil
}

func (e *entry) Validate() error {
	return validateID(e.ProposalID)
}

func byBeneficiary(m orm.Model) ([]byte, error) {
	p, ok := m.(*Proposal)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", m)
	}
	return p.Beneficiary, nil
}

var (
	bucket = orm.NewModelBucket(bucketName,
		orm.WithIndex("beneficiary", byBeneficiary, false))
	order    = orm.NewModelBucket("proposal_order")
	orderSeq = orm.NewSequence(bucketName, "order")
)

// Retrieve returns the proposal with given id. When there is no such
// proposal a zero record is returned, with an empty Beneficiary.
func Retrieve(db peerfund.ReadOnlyKVStore, id string) (*Proposal, error) {
	p, err := Get(db, id)
	if errors.ErrNotFound.Is(err) {
		return &Proposal{}, nil
	}
	return p, err
}

// Get returns the proposal with given id or ErrNotFound.
func Get(db peerfund.ReadOnlyKVStore, id string) (*Proposal, error) {
	if id == "" {
		return nil, errors.Wrap(errors.ErrNotFound, "empty proposal id")
	}
	var p Proposal
	if err := bucket.One(db, []byte(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes an already submitted proposal.
func Update(db peerfund.KVStore, p *Proposal) error {
	switch ok, err := bucket.Has(db, []byte(p.ID)); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "proposal %q", p.ID)
	}
	return bucket.Put(db, []byte(p.ID), p)
}

// create stores a new proposal and appends it to the submission order.
func create(db peerfund.KVStore, p *Proposal) error {
	if err := bucket.Create(db, []byte(p.ID), p); err != nil {
		return err
	}
	key, err := orderSeq.NextVal(db)
	if err != nil {
		return errors.Wrap(err, "order sequence")
	}
	return order.Put(db, key, &entry{ProposalID: p.ID})
}

// List returns the ids of all proposals in submission order.
func List(db peerfund.ReadOnlyKVStore) ([]string, error) {
	it, err := order.PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var ids []string
	for {
		var e entry
		switch _, err := it.Next(&e); {
		case err == nil:
			ids = append(ids, e.ProposalID)
		case errors.ErrIteratorDone.Is(err):
			return ids, nil
		default:
			return nil, err
		}
	}
}

// ByBeneficiary returns the ids of all proposals submitted by addr.
func ByBeneficiary(db peerfund.ReadOnlyKVStore, addr peerfund.Address) ([]string, error) {
	it, err := bucket.IndexScan(db, "beneficiary", addr, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var ids []string
	for {
		var p Proposal
		switch _, err := it.Next(&p); {
		case err == nil:
			ids = append(ids, p.ID)
		case errors.ErrIteratorDone.Is(err):
			return ids, nil
		default:
			return nil, err
		}
	}
}
