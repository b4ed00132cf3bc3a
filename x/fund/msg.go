package fund

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

var _ peerfund.Msg = (*DepositMsg)(nil)
var _ peerfund.Msg = (*AllocateMsg)(nil)

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return "fund/deposit"
}

// Validate requires a positive amount.
func (m *DepositMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(ErrZeroAmount, "deposit")
	}
	if m.Contributor != nil {
		if err := m.Contributor.Validate(); err != nil {
			return errors.Wrap(err, "contributor")
		}
	}
	return nil
}

// Path returns the routing path for this message.
func (AllocateMsg) Path() string {
	return "fund/allocate"
}

// Validate always succeeds. An unknown proposal is reported by the
// handler once the caller is authorized.
func (m *AllocateMsg) Validate() error {
	return nil
}
