package peerfund

import (
	"encoding/json"

	"github.com/iov-one/peerfund/errors"
)

// Handler processes one kind of message, for example a deposit into the
// pool or a review of a proposal.
type Handler interface {
	Checker
	Deliverer
}

// Checker verifies a transaction without persisting any state change.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging, panic recovery or savepoints, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router.
type Registry interface {
	// Handle assigns given handler to the message path.
	Handle(path string, h Handler)
}

// CheckResult captures the result of a Check call.
type CheckResult struct {
	// Log is a human readable note about the check.
	Log string
}

// DeliverResult captures the result of a successful Deliver call.
type DeliverResult struct {
	// Data is the binary result of the call, if any.
	Data []byte
	// Log is a human readable note about the delivery.
	Log string
	// Events are emitted in the order they occurred. They are only
	// observable when the whole call succeeds.
	Events []Event
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "options %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
