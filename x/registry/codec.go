package registry

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/peerfund"
)

// Reviewer is the registry record of a principal.
type Reviewer struct {
	// Trust is a moving average of governance votes.
	Trust      uint32 `protobuf:"varint,1,opt,name=trust,proto3" json:"trust"`
	Registered bool   `protobuf:"varint,2,opt,name=registered,proto3" json:"registered"`
}

// GovernanceMember marks an address allowed to vote on reviewer trust.
type GovernanceMember struct {
	Address peerfund.Address `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
}

// Configuration of the registry.
type Configuration struct {
	// Admin is allowed to register reviewers and to allocate funds.
	Admin peerfund.Address `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin"`
}

// RegisterReviewerMsg registers a reviewer, resetting its trust.
type RegisterReviewerMsg struct {
	Reviewer peerfund.Address `protobuf:"bytes,1,opt,name=reviewer,proto3" json:"reviewer"`
}

type wireReviewer Reviewer

func (m *wireReviewer) Reset()         { *m = wireReviewer{} }
func (m *wireReviewer) String() string { return proto.CompactTextString(m) }
func (*wireReviewer) ProtoMessage()    {}

func (m *Reviewer) Marshal() ([]byte, error) { return proto.Marshal((*wireReviewer)(m)) }
func (m *Reviewer) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireReviewer)(m)) }

type wireGovernanceMember GovernanceMember

func (m *wireGovernanceMember) Reset()         { *m = wireGovernanceMember{} }
func (m *wireGovernanceMember) String() string { return proto.CompactTextString(m) }
func (*wireGovernanceMember) ProtoMessage()    {}

func (m *GovernanceMember) Marshal() ([]byte, error) {
	return proto.Marshal((*wireGovernanceMember)(m))
}
func (m *GovernanceMember) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*wireGovernanceMember)(m))
}

type wireConfiguration Configuration

func (m *wireConfiguration) Reset()         { *m = wireConfiguration{} }
func (m *wireConfiguration) String() string { return proto.CompactTextString(m) }
func (*wireConfiguration) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*wireConfiguration)(m)) }
func (m *Configuration) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*wireConfiguration)(m))
}

type wireRegisterReviewerMsg RegisterReviewerMsg

func (m *wireRegisterReviewerMsg) Reset()         { *m = wireRegisterReviewerMsg{} }
func (m *wireRegisterReviewerMsg) String() string { return proto.CompactTextString(m) }
func (*wireRegisterReviewerMsg) ProtoMessage()    {}

func (m *RegisterReviewerMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireRegisterReviewerMsg)(m))
}
func (m *RegisterReviewerMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*wireRegisterReviewerMsg)(m))
}
