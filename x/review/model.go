package review

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/orm"
	"github.com/iov-one/peerfund/x/registry"
)

const (
	bucketName = "review"

	maxDocumentIDLength = 256
)

// Validate checks the stored review.
func (r *Review) Validate() error {
	if r.ProposalID == "" {
		return errors.Wrap(errors.ErrEmpty, "proposal id")
	}
	if len(r.DocumentID) > maxDocumentIDLength {
		return errors.Wrapf(errors.ErrInvalidInput, "document id longer than %d", maxDocumentIDLength)
	}
	if err := registry.ValidateScore(r.Score); err != nil {
		return err
	}
	return errors.Wrap(r.Reviewer.Validate(), "reviewer")
}

func byProposal(m orm.Model) ([]byte, error) {
	r, ok := m.(*Review)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", m)
	}
	return []byte(r.ProposalID), nil
}

var (
	bucket = orm.NewModelBucket(bucketName,
		orm.WithIndex("proposal", byProposal, false))
	seq = orm.NewSequence(bucketName, "id")
)

// reviewKey is the reviewer address followed by the global sequence, so
// that the history of a reviewer is stored in submission order.
func reviewKey(reviewer peerfund.Address, n []byte) []byte {
	key := make([]byte, 0, len(reviewer)+len(n))
	key = append(key, reviewer...)
	return append(key, n...)
}

func create(db peerfund.KVStore, r *Review) error {
	n, err := seq.NextVal(db)
	if err != nil {
		return errors.Wrap(err, "review sequence")
	}
	return bucket.Create(db, reviewKey(r.Reviewer, n), r)
}

// Retrieve returns all reviews submitted by reviewer, oldest first.
func Retrieve(db peerfund.ReadOnlyKVStore, reviewer peerfund.Address) ([]*Review, error) {
	if len(reviewer) == 0 {
		return nil, nil
	}
	it, err := bucket.PrefixScan(db, reviewer, false)
	if err != nil {
		return nil, err
	}
	return collect(it)
}

// ByProposal returns all reviews of a proposal, ordered by reviewer and
// then by submission.
func ByProposal(db peerfund.ReadOnlyKVStore, proposalID string) ([]*Review, error) {
	it, err := bucket.IndexScan(db, "proposal", []byte(proposalID), false)
	if err != nil {
		return nil, err
	}
	return collect(it)
}

func collect(it orm.ModelIterator) ([]*Review, error) {
	defer it.Release()

	var res []*Review
	for {
		var r Review
		switch _, err := it.Next(&r); {
		case err == nil:
			res = append(res, &r)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
