package cash

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Address is
// hex encoded.
type GenesisAccount struct {
	Address peerfund.Address `json:"address"`
	Balance uint64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Control *Controller
}

var _ peerfund.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and credit
// every listed wallet.
func (i Initializer) FromGenesis(opts peerfund.Options, db peerfund.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	control := i.Control
	if control == nil {
		control = NewController()
	}
	for n, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
		if err := control.IssueCoins(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}
