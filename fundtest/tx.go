package fundtest

import "github.com/iov-one/peerfund"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg peerfund.Msg
	// Signers are returned by GetSigners.
	Signers []peerfund.Condition
	// Err if set is returned by GetMsg.
	Err error
}

var _ peerfund.Tx = (*Tx)(nil)

// GetMsg returns Msg and Err.
func (tx *Tx) GetMsg() (peerfund.Msg, error) {
	return tx.Msg, tx.Err
}

// GetSigners returns Signers.
func (tx *Tx) GetSigners() []peerfund.Condition {
	return tx.Signers
}

// Msg represents a message that is routed by its RoutePath.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ peerfund.Msg = (*Msg)(nil)

// Path returns RoutePath.
func (m *Msg) Path() string {
	return m.RoutePath
}

// Unmarshal stores b as Serialized.
func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

// Marshal returns Serialized.
func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

// Validate returns Err.
func (m *Msg) Validate() error {
	return m.Err
}
