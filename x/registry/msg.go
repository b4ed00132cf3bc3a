package registry

import "github.com/iov-one/peerfund"

var _ peerfund.Msg = (*RegisterReviewerMsg)(nil)

// Path returns the routing path for this message.
func (RegisterReviewerMsg) Path() string {
	return "registry/register_reviewer"
}

// Validate accepts any message. The reviewer address is checked by the
// handler once the admin is authenticated.
func (m *RegisterReviewerMsg) Validate() error {
	return nil
}
