package app

import (
	"encoding/json"
	"sort"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/x"
	"github.com/iov-one/peerfund/x/cash"
	"github.com/iov-one/peerfund/x/fund"
	"github.com/iov-one/peerfund/x/proposal"
	"github.com/iov-one/peerfund/x/registry"
	"github.com/iov-one/peerfund/x/reputation"
	"github.com/iov-one/peerfund/x/review"
)

// messages maps every supported path to a constructor of its message.
var messages = map[string]func() peerfund.Msg{
	cash.SendMsg{}.Path():                 func() peerfund.Msg { return &cash.SendMsg{} },
	registry.RegisterReviewerMsg{}.Path(): func() peerfund.Msg { return &registry.RegisterReviewerMsg{} },
	proposal.SubmitProposalMsg{}.Path():   func() peerfund.Msg { return &proposal.SubmitProposalMsg{} },
	review.SubmitReviewMsg{}.Path():       func() peerfund.Msg { return &review.SubmitReviewMsg{} },
	reputation.UpdateTrustMsg{}.Path():    func() peerfund.Msg { return &reputation.UpdateTrustMsg{} },
	fund.DepositMsg{}.Path():              func() peerfund.Msg { return &fund.DepositMsg{} },
	fund.AllocateMsg{}.Path():             func() peerfund.Msg { return &fund.AllocateMsg{} },
}

// Paths returns all message paths the application routes, sorted.
func Paths() []string {
	paths := make([]string, 0, len(messages))
	for p := range messages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DecodeMsg creates the message registered under path and loads its
// content from JSON.
func DecodeMsg(path string, raw []byte) (peerfund.Msg, error) {
	fn, ok := messages[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "message path %q", path)
	}
	msg := fn()
	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "decode %s: %s", path, err)
	}
	return msg, nil
}

// Tx is a single message authorized by a set of principals.
type Tx struct {
	Msg     peerfund.Msg
	Signers []peerfund.Condition
}

var _ x.SignedTx = (*Tx)(nil)

// NewTx returns a transaction carrying msg on behalf of signers.
func NewTx(msg peerfund.Msg, signers ...peerfund.Condition) *Tx {
	return &Tx{Msg: msg, Signers: signers}
}

// GetMsg returns the carried message.
func (tx *Tx) GetMsg() (peerfund.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSigners returns the principals that authorized the transaction.
func (tx *Tx) GetSigners() []peerfund.Condition {
	return tx.Signers
}
