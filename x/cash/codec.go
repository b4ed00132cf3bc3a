package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/peerfund"
)

// Wallet holds the balance of an address.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
}

// SendMsg moves value from the source wallet to the destination wallet.
type SendMsg struct {
	Source      peerfund.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source"`
	Destination peerfund.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination"`
	Amount      uint64           `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Memo        string           `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type wireWallet Wallet

func (m *wireWallet) Reset()         { *m = wireWallet{} }
func (m *wireWallet) String() string { return proto.CompactTextString(m) }
func (*wireWallet) ProtoMessage()    {}

func (m *Wallet) Marshal() ([]byte, error) { return proto.Marshal((*wireWallet)(m)) }
func (m *Wallet) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireWallet)(m)) }

type wireSendMsg SendMsg

func (m *wireSendMsg) Reset()         { *m = wireSendMsg{} }
func (m *wireSendMsg) String() string { return proto.CompactTextString(m) }
func (*wireSendMsg) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) { return proto.Marshal((*wireSendMsg)(m)) }
func (m *SendMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireSendMsg)(m)) }
