package codec

import (
	"bytes"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// RejectionReason enumerates the coded reasons a backup may decline a
// PrePrepare.
type RejectionReason uint8

const (
	RejectContainsInvalidRequest RejectionReason = iota + 1
	RejectNewEpoch
	RejectClockDrift
	RejectBadSignature
	RejectInvalidPreviousHash
	RejectWrongSequenceNumber
	RejectInvalidEpoch
)

// VotePayload is the shape shared by Prepare and Commit: one delegate's
// signature share over the block under vote.
type VotePayload struct {
	BlockHash   types.Hash
	BlockType   types.BlockType
	DelegateIdx types.DelegateIdx
	Share       [96]byte // BLSShare, duplicated here to keep codec free of an internal/crypto import
}

// MarshalVote renders a Prepare/Commit payload.
func MarshalVote(v VotePayload) []byte {
	var buf bytes.Buffer
	buf.Write(v.BlockHash[:])
	buf.WriteByte(byte(v.BlockType))
	buf.WriteByte(v.DelegateIdx)
	buf.Write(v.Share[:])
	return buf.Bytes()
}

// UnmarshalVote parses a Prepare/Commit payload.
func UnmarshalVote(data []byte) (VotePayload, error) {
	c := newCursor(data)
	var v VotePayload
	var err error
	if v.BlockHash, err = c.hash(); err != nil {
		return v, err
	}
	typ, err := c.uint8()
	if err != nil {
		return v, err
	}
	v.BlockType = types.BlockType(typ)
	if v.DelegateIdx, err = c.uint8(); err != nil {
		return v, err
	}
	if err := c.need(len(v.Share)); err != nil {
		return v, err
	}
	copy(v.Share[:], c.remaining()[:len(v.Share)])
	return v, nil
}

// QuorumPayload is the shape shared by PostPrepare and PostCommit: the
// aggregate signature sealing a block under vote.
type QuorumPayload struct {
	BlockHash types.Hash
	BlockType types.BlockType
	AggSig    types.AggregateSig
}

// MarshalQuorum renders a PostPrepare/PostCommit payload.
func MarshalQuorum(q QuorumPayload) []byte {
	var buf bytes.Buffer
	buf.Write(q.BlockHash[:])
	buf.WriteByte(byte(q.BlockType))
	marshalAggSig(&buf, q.AggSig)
	return buf.Bytes()
}

// UnmarshalQuorum parses a PostPrepare/PostCommit payload.
func UnmarshalQuorum(data []byte) (QuorumPayload, error) {
	c := newCursor(data)
	var q QuorumPayload
	var err error
	if q.BlockHash, err = c.hash(); err != nil {
		return q, err
	}
	typ, err := c.uint8()
	if err != nil {
		return q, err
	}
	q.BlockType = types.BlockType(typ)
	if q.AggSig, err = unmarshalAggSig(c); err != nil {
		return q, err
	}
	return q, nil
}

// RejectionPayload is what a backup sends instead of a Prepare/Commit when
// PrePrepare validation fails.
type RejectionPayload struct {
	BlockHash     types.Hash
	BlockType     types.BlockType
	DelegateIdx   types.DelegateIdx
	Reason        RejectionReason
	InvalidBitmap types.Bitmap // only meaningful for RejectContainsInvalidRequest
}

// MarshalRejection renders a Rejection payload.
func MarshalRejection(r RejectionPayload) []byte {
	var buf bytes.Buffer
	buf.Write(r.BlockHash[:])
	buf.WriteByte(byte(r.BlockType))
	buf.WriteByte(r.DelegateIdx)
	buf.WriteByte(byte(r.Reason))
	buf.Write(r.InvalidBitmap[:])
	return buf.Bytes()
}

// UnmarshalRejection parses a Rejection payload.
func UnmarshalRejection(data []byte) (RejectionPayload, error) {
	c := newCursor(data)
	var r RejectionPayload
	var err error
	if r.BlockHash, err = c.hash(); err != nil {
		return r, err
	}
	typ, err := c.uint8()
	if err != nil {
		return r, err
	}
	r.BlockType = types.BlockType(typ)
	if r.DelegateIdx, err = c.uint8(); err != nil {
		return r, err
	}
	reason, err := c.uint8()
	if err != nil {
		return r, err
	}
	r.Reason = RejectionReason(reason)
	if err := c.need(len(r.InvalidBitmap)); err != nil {
		return r, err
	}
	copy(r.InvalidBitmap[:], c.remaining()[:len(r.InvalidBitmap)])
	return r, nil
}
