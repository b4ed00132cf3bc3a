package peerfund

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a record of a state transition that external consumers and
// auditors can observe. Attributes keep the order in which they were given.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent creates an event of given type. Attributes are provided as
// key value pairs, each value formatted with %v. Addresses are rendered
// using their String method.
func NewEvent(typ string, keyvals ...interface{}) Event {
	if len(keyvals)%2 != 0 {
		panic("event attributes must be provided as key value pairs")
	}
	attrs := make([]common.KVPair, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		attrs = append(attrs, common.KVPair{
			Key:   []byte(fmt.Sprint(keyvals[i])),
			Value: []byte(fmt.Sprint(keyvals[i+1])),
		})
	}
	return Event{Type: typ, Attributes: attrs}
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

// String returns a human readable representation, for example
//
//   funds-deposited{contributor=AB12.. amount=100}
func (e Event) String() string {
	s := e.Type + "{"
	for i, a := range e.Attributes {
		if i > 0 {
			s += " "
		}
		s += string(a.Key) + "=" + string(a.Value)
	}
	return s + "}"
}
