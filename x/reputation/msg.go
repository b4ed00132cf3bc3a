package reputation

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

var _ peerfund.Msg = (*UpdateTrustMsg)(nil)

// Path returns the routing path for this message.
func (UpdateTrustMsg) Path() string {
	return "reputation/update_trust"
}

// Validate requires a valid reviewer address. The vote is checked by the
// handler once the caller is known to be a governance member.
func (m *UpdateTrustMsg) Validate() error {
	return errors.Wrap(m.Reviewer.Validate(), "reviewer")
}
