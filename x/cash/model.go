package cash

import (
	"github.com/iov-one/peerfund/orm"
)

// Validate always succeeds, any balance is valid.
func (w *Wallet) Validate() error {
	return nil
}

// NewWalletBucket returns a bucket storing wallets by their address.
func NewWalletBucket() *orm.ModelBucket {
	return orm.NewModelBucket("wallet")
}
