package registry

import (
	"github.com/iov-one/peerfund/errors"
)

// ErrInvalidScore is returned when a score or a vote is above MaxScore.
var ErrInvalidScore = errors.Register(1000, "invalid score")

const (
	// MaxScore is the highest review score and trust vote.
	MaxScore = 100

	// InitialTrust is given to every newly registered reviewer.
	InitialTrust = 50
)

// ValidateScore returns ErrInvalidScore if score is above MaxScore.
func ValidateScore(score uint32) error {
	if score > MaxScore {
		return errors.Wrapf(ErrInvalidScore, "%d is above %d", score, MaxScore)
	}
	return nil
}
