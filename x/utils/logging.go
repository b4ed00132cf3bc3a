package utils

import (
	"time"

	"github.com/iov-one/peerfund"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ peerfund.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Checker) (*peerfund.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, 0, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx peerfund.Context, db peerfund.KVStore, tx peerfund.Tx, next peerfund.Deliverer) (*peerfund.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var (
		resLog string
		events int
	)
	if err == nil {
		resLog = res.Log
		events = len(res.Events)
	}
	logDuration(ctx, tx, start, resLog, events, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx peerfund.Context, tx peerfund.Tx, start time.Time, msg string, events int, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := peerfund.GetLogger(ctx).With(
		"path", peerfund.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// An entry is emitted even with an empty message, as the other
	// fields are relevant.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg, "events", events)
	}
}
