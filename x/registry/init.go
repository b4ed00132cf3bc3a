package registry

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/gconf"
)

// Initializer loads the administrator from "conf.registry" and the
// governance members from "registry.governance_members".
type Initializer struct{}

var _ peerfund.Initializer = Initializer{}

// FromGenesis stores the configuration and all governance members.
func (Initializer) FromGenesis(opts peerfund.Options, db peerfund.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, pkgName, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state struct {
		GovernanceMembers []peerfund.Address `json:"governance_members"`
	}
	if err := opts.ReadOptions(pkgName, &state); err != nil {
		return err
	}
	bucket := NewGovernanceBucket()
	for i, addr := range state.GovernanceMembers {
		m := GovernanceMember{Address: addr}
		if err := bucket.Put(db, addr, &m); err != nil {
			return errors.Wrapf(err, "governance member %d", i)
		}
	}
	return nil
}
