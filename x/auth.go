package x

import (
	"github.com/iov-one/peerfund"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(peerfund.Context) []peerfund.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(peerfund.Context, peerfund.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx peerfund.Context) []peerfund.Condition {
	var res []peerfund.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx peerfund.Context, addr peerfund.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx peerfund.Context, auth Authenticator) []peerfund.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]peerfund.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx peerfund.Context, auth Authenticator) peerfund.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// Caller returns the address of the main signer, or nil if the call was
// not authorized by anyone.
func Caller(ctx peerfund.Context, auth Authenticator) peerfund.Address {
	return MainSigner(ctx, auth).Address()
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx peerfund.Context, auth Authenticator, required []peerfund.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
