package cash

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

const maxMemoSize int = 128

var _ peerfund.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInvalidInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}
