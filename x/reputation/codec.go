package reputation

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/peerfund"
)

// UpdateTrustMsg is a governance vote on the trust of a reviewer.
type UpdateTrustMsg struct {
	Reviewer peerfund.Address `protobuf:"bytes,1,opt,name=reviewer,proto3" json:"reviewer"`
	Vote     uint32           `protobuf:"varint,2,opt,name=vote,proto3" json:"vote"`
}

type wireUpdateTrustMsg UpdateTrustMsg

func (m *wireUpdateTrustMsg) Reset()         { *m = wireUpdateTrustMsg{} }
func (m *wireUpdateTrustMsg) String() string { return proto.CompactTextString(m) }
func (*wireUpdateTrustMsg) ProtoMessage()    {}

func (m *UpdateTrustMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireUpdateTrustMsg)(m))
}
func (m *UpdateTrustMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*wireUpdateTrustMsg)(m))
}
