package review

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/peerfund"
)

// Review is a single score given to a proposal. Reviews are immutable.
type Review struct {
	ProposalID string `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
	// DocumentID is the content identifier of the review document.
	DocumentID string           `protobuf:"bytes,2,opt,name=document_id,json=documentId,proto3" json:"document_id"`
	Score      uint32           `protobuf:"varint,3,opt,name=score,proto3" json:"score"`
	Reviewer   peerfund.Address `protobuf:"bytes,4,opt,name=reviewer,proto3" json:"reviewer"`
}

// SubmitReviewMsg scores a proposal on behalf of the calling reviewer.
type SubmitReviewMsg struct {
	ProposalID string `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
	DocumentID string `protobuf:"bytes,2,opt,name=document_id,json=documentId,proto3" json:"document_id"`
	Score      uint32 `protobuf:"varint,3,opt,name=score,proto3" json:"score"`
}

type wireReview Review

func (m *wireReview) Reset()         { *m = wireReview{} }
func (m *wireReview) String() string { return proto.CompactTextString(m) }
func (*wireReview) ProtoMessage()    {}

func (m *Review) Marshal() ([]byte, error) { return proto.Marshal((*wireReview)(m)) }
func (m *Review) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*wireReview)(m)) }

type wireSubmitReviewMsg SubmitReviewMsg

func (m *wireSubmitReviewMsg) Reset()         { *m = wireSubmitReviewMsg{} }
func (m *wireSubmitReviewMsg) String() string { return proto.CompactTextString(m) }
func (*wireSubmitReviewMsg) ProtoMessage()    {}

func (m *SubmitReviewMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireSubmitReviewMsg)(m))
}
func (m *SubmitReviewMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*wireSubmitReviewMsg)(m))
}
