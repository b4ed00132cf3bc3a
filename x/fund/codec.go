package fund

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/peerfund"
)

// Pool is the singleton tracking the value available for allocation.
type Pool struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
}

// DepositMsg moves value from the contributor wallet into the pool.
type DepositMsg struct {
	// Contributor defaults to the main signer when empty.
	Contributor peerfund.Address `protobuf:"bytes,1,opt,name=contributor,proto3" json:"contributor,omitempty"`
	Amount      uint64           `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

// AllocateMsg pays the budget of a proposal to its beneficiary.
type AllocateMsg struct {
	ProposalID string `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
}

type wirePool Pool

func (m *wirePool) Reset()         { *m = wirePool{} }
func (m *wirePool) String() string { return proto.CompactTextString(m) }
func (*wirePool) ProtoMessage()    {}

func (m *Pool) Marshal() ([]byte, error) { return proto.Marshal((*wirePool)(m)) }
func (m *Pool) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wirePool)(m)) }

type wireDepositMsg DepositMsg

func (m *wireDepositMsg) Reset()         { *m = wireDepositMsg{} }
func (m *wireDepositMsg) String() string { return proto.CompactTextString(m) }
func (*wireDepositMsg) ProtoMessage()    {}

func (m *DepositMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireDepositMsg)(m)) }
func (m *DepositMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireDepositMsg)(m)) }

type wireAllocateMsg AllocateMsg

func (m *wireAllocateMsg) Reset()         { *m = wireAllocateMsg{} }
func (m *wireAllocateMsg) String() string { return proto.CompactTextString(m) }
func (*wireAllocateMsg) ProtoMessage()    {}

func (m *AllocateMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireAllocateMsg)(m)) }
func (m *AllocateMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireAllocateMsg)(m)) }
