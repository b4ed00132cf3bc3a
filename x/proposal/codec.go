package proposal

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/peerfund"
)

// Proposal is a funding request together with its review aggregates.
type Proposal struct {
	ID                    string           `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Title                 string           `protobuf:"bytes,2,opt,name=title,proto3" json:"title"`
	PrincipalInvestigator string           `protobuf:"bytes,3,opt,name=principal_investigator,json=principalInvestigator,proto3" json:"principal_investigator"`
	ResearcherID          string           `protobuf:"bytes,4,opt,name=researcher_id,json=researcherId,proto3" json:"researcher_id"`
	Institution           string           `protobuf:"bytes,5,opt,name=institution,proto3" json:"institution"`
	Budget                uint64           `protobuf:"varint,6,opt,name=budget,proto3" json:"budget"`
	Beneficiary           peerfund.Address `protobuf:"bytes,7,opt,name=beneficiary,proto3" json:"beneficiary"`
	ScoreSum              uint64           `protobuf:"varint,8,opt,name=score_sum,json=scoreSum,proto3" json:"score_sum"`
	ReviewCount           uint64           `protobuf:"varint,9,opt,name=review_count,json=reviewCount,proto3" json:"review_count"`
	Funded                bool             `protobuf:"varint,10,opt,name=funded,proto3" json:"funded"`
}

// SubmitProposalMsg adds a proposal to the ledger. The caller becomes its
// beneficiary.
type SubmitProposalMsg struct {
	ID                    string `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Title                 string `protobuf:"bytes,2,opt,name=title,proto3" json:"title"`
	PrincipalInvestigator string `protobuf:"bytes,3,opt,name=principal_investigator,json=principalInvestigator,proto3" json:"principal_investigator"`
	ResearcherID          string `protobuf:"bytes,4,opt,name=researcher_id,json=researcherId,proto3" json:"researcher_id"`
	Institution           string `protobuf:"bytes,5,opt,name=institution,proto3" json:"institution"`
	Budget                uint64 `protobuf:"varint,6,opt,name=budget,proto3" json:"budget"`
}

// entry is stored in submission order and points to a proposal.
type entry struct {
	ProposalID string `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
}

type wireProposal Proposal

func (m *wireProposal) Reset()         { *m = wireProposal{} }
func (m *wireProposal) String() string { return proto.CompactTextString(m) }
func (*wireProposal) ProtoMessage()    {}

func (m *Proposal) Marshal() ([]byte, error) { return proto.Marshal((*wireProposal)(m)) }
func (m *Proposal) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireProposal)(m)) }

type wireSubmitProposalMsg SubmitProposalMsg

func (m *wireSubmitProposalMsg) Reset()         { *m = wireSubmitProposalMsg{} }
func (m *wireSubmitProposalMsg) String() string { return proto.CompactTextString(m) }
func (*wireSubmitProposalMsg) ProtoMessage()    {}

func (m *SubmitProposalMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireSubmitProposalMsg)(m))
}
func (m *SubmitProposalMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*wireSubmitProposalMsg)(m))
}

type wireEntry entry

func (m *wireEntry) Reset()         { *m = wireEntry{} }
func (m *wireEntry) String() string { return proto.CompactTextString(m) }
func (*wireEntry) ProtoMessage()    {}

func (m *entry) Marshal() ([]byte, error) { return proto.Marshal((*wireEntry)(m)) }
func (m *entry) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireEntry)(m)) }
