package registry

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/gconf"
	"github.com/iov-one/peerfund/orm"
)

const pkgName = "registry"

// Validate always succeeds. Trust is not clamped.
func (r *Reviewer) Validate() error {
	return nil
}

// Validate requires a valid address.
func (g *GovernanceMember) Validate() error {
	return errors.Wrap(g.Address.Validate(), "address")
}

// Validate requires a valid admin address.
func (c *Configuration) Validate() error {
	return errors.Wrap(c.Admin.Validate(), "admin")
}

// NewReviewerBucket returns a bucket of reviewers, keyed by address.
func NewReviewerBucket() *orm.ModelBucket {
	return orm.NewModelBucket("reviewer")
}

// NewGovernanceBucket returns a bucket of governance members, keyed by
// address.
func NewGovernanceBucket() *orm.ModelBucket {
	return orm.NewModelBucket("governance")
}

// IsGovernanceMember returns true if addr was declared a governance
// member.
func IsGovernanceMember(db peerfund.ReadOnlyKVStore, addr peerfund.Address) (bool, error) {
	if len(addr) == 0 {
		return false, nil
	}
	return NewGovernanceBucket().Has(db, addr)
}

// IsRegisteredReviewer returns true if addr was registered as a reviewer.
// Principals that only received a trust vote are not registered.
func IsRegisteredReviewer(db peerfund.ReadOnlyKVStore, addr peerfund.Address) (bool, error) {
	if len(addr) == 0 {
		return false, nil
	}
	var r Reviewer
	switch err := NewReviewerBucket().One(db, addr, &r); {
	case err == nil:
		return r.Registered, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// GetReviewer returns the record of given principal or ErrNotFound.
func GetReviewer(db peerfund.ReadOnlyKVStore, addr peerfund.Address) (*Reviewer, error) {
	var r Reviewer
	if err := NewReviewerBucket().One(db, addr, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Admin returns the administrator address.
func Admin(db peerfund.ReadOnlyKVStore) (peerfund.Address, error) {
	var conf Configuration
	if err := gconf.Load(db, pkgName, &conf); err != nil {
		return nil, errors.Wrap(err, "registry configuration")
	}
	return conf.Admin, nil
}
