package review

import (
	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
)

var _ peerfund.Msg = (*SubmitReviewMsg)(nil)

// Path returns the routing path for this message.
func (SubmitReviewMsg) Path() string {
	return "review/submit"
}

// Validate only checks the document identifier. The score is checked by
// the handler once the caller is known to be a reviewer.
func (m *SubmitReviewMsg) Validate() error {
	if len(m.DocumentID) > maxDocumentIDLength {
		return errors.Wrapf(errors.ErrInvalidInput, "document id longer than %d", maxDocumentIDLength)
	}
	return nil
}
