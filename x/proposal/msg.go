package proposal

import "github.com/iov-one/peerfund"

var _ peerfund.Msg = (*SubmitProposalMsg)(nil)

// Path returns the routing path for this message.
func (SubmitProposalMsg) Path() string {
	return "proposal/submit"
}

// Validate requires a proposal id. Content fields are opaque and stored
// as given.
func (m *SubmitProposalMsg) Validate() error {
	return validateID(m.ID)
}
