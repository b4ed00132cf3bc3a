package fundtest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/peerfund"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Both Signer
// and Signers are considered, Signer is a convenience for the single
// signer case.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer peerfund.Condition

	// Signers represents an authentication of multiple signers.
	Signers []peerfund.Condition
}

// GetConditions returns Signer first, followed by Signers.
func (a *Auth) GetConditions(peerfund.Context) []peerfund.Condition {
	if a.Signer != nil {
		return append([]peerfund.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

// HasAddress returns true if any of the declared signers has given
// address.
func (a *Auth) HasAddress(ctx peerfund.Context, addr peerfund.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

var conditionCounter uint64

// NewCondition returns a unique condition representing a principal.
func NewCondition() peerfund.Condition {
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], atomic.AddUint64(&conditionCounter, 1))
	return peerfund.NewCondition("fundtest", "princ", data[:])
}
