package fund

import (
	"github.com/iov-one/peerfund/errors"
)

var (
	ErrAlreadyFunded     = errors.Register(1010, "proposal already funded")
	ErrNoReviews         = errors.Register(1011, "proposal has no reviews")
	ErrLowScore          = errors.Register(1012, "average score below threshold")
	ErrInsufficientFunds = errors.Register(1013, "insufficient funds in pool")
	ErrZeroAmount        = errors.Register(1014, "zero amount")
	ErrTransferFailed    = errors.Register(1015, "transfer failed")
	ErrReentrant         = errors.Register(1016, "reentrant call")
)
