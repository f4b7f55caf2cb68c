package codec

import (
	"bytes"
	"fmt"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// aggSigWireSize is the {bitmap, aggregate_sig} suffix every block carries.
const aggSigWireSize = types.NumDelegates/8 + 96

func marshalAggSig(buf *bytes.Buffer, sig types.AggregateSig) {
	buf.Write(sig.Bitmap[:])
	buf.Write(sig.Signature[:])
}

func unmarshalAggSig(c *cursor) (types.AggregateSig, error) {
	if err := c.need(aggSigWireSize); err != nil {
		return types.AggregateSig{}, err
	}
	var sig types.AggregateSig
	copy(sig.Bitmap[:], c.b[c.pos:c.pos+len(sig.Bitmap)])
	c.pos += len(sig.Bitmap)
	copy(sig.Signature[:], c.b[c.pos:c.pos+len(sig.Signature)])
	c.pos += len(sig.Signature)
	return sig, nil
}

// MarshalRequestBlock renders b as {content, bitmap, aggregate_sig}. Content
// is exactly what b.WriteHashable produces, so
// hash(UnmarshalRequestBlock(MarshalRequestBlock(b))) == hash(b) always
// holds.
func MarshalRequestBlock(b *types.RequestBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteHashable(&buf); err != nil {
		return nil, err
	}
	marshalAggSig(&buf, b.AggSig)
	return buf.Bytes(), nil
}

// UnmarshalRequestBlock parses a buffer produced by MarshalRequestBlock.
func UnmarshalRequestBlock(data []byte) (*types.RequestBlock, error) {
	c := newCursor(data)
	typ, err := c.uint8()
	if err != nil {
		return nil, err
	}
	if types.BlockType(typ) != types.BlockTypeRequest {
		return nil, fmt.Errorf("codec: expected request_block type tag, got %d", typ)
	}
	b := &types.RequestBlock{}
	if b.PrimaryDelegateIdx, err = c.uint8(); err != nil {
		return nil, err
	}
	if b.EpochNum, err = c.uint32(); err != nil {
		return nil, err
	}
	if b.Sequence, err = c.uint32(); err != nil {
		return nil, err
	}
	if b.Previous, err = c.hash(); err != nil {
		return nil, err
	}
	if b.Timestamp, err = c.timestamp(); err != nil {
		return nil, err
	}
	n, err := c.uint32()
	if err != nil {
		return nil, err
	}
	b.Requests = make([]types.Request, n)
	for i := range b.Requests {
		req, err := unmarshalRequestInto(c)
		if err != nil {
			return nil, err
		}
		b.Requests[i] = *req
	}
	if b.AggSig, err = unmarshalAggSig(c); err != nil {
		return nil, err
	}
	return b, nil
}

// MarshalMicroBlock renders b in the same content+aggsig shape.
func MarshalMicroBlock(b *types.MicroBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteHashable(&buf); err != nil {
		return nil, err
	}
	marshalAggSig(&buf, b.AggSig)
	return buf.Bytes(), nil
}

// UnmarshalMicroBlock parses a buffer produced by MarshalMicroBlock.
func UnmarshalMicroBlock(data []byte) (*types.MicroBlock, error) {
	c := newCursor(data)
	typ, err := c.uint8()
	if err != nil {
		return nil, err
	}
	if types.BlockType(typ) != types.BlockTypeMicro {
		return nil, fmt.Errorf("codec: expected micro_block type tag, got %d", typ)
	}
	b := &types.MicroBlock{}
	if b.PrimaryDelegateIdx, err = c.uint8(); err != nil {
		return nil, err
	}
	if b.EpochNum, err = c.uint32(); err != nil {
		return nil, err
	}
	if b.Sequence, err = c.uint32(); err != nil {
		return nil, err
	}
	if b.Previous, err = c.hash(); err != nil {
		return nil, err
	}
	if b.Timestamp, err = c.timestamp(); err != nil {
		return nil, err
	}
	if b.LastMicroBlock, err = c.boolean(); err != nil {
		return nil, err
	}
	for i := range b.Tips {
		if b.Tips[i], err = c.hash(); err != nil {
			return nil, err
		}
	}
	if b.AggSig, err = unmarshalAggSig(c); err != nil {
		return nil, err
	}
	return b, nil
}

// MarshalEpochBlock renders b in the same content+aggsig shape.
func MarshalEpochBlock(b *types.EpochBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteHashable(&buf); err != nil {
		return nil, err
	}
	marshalAggSig(&buf, b.AggSig)
	return buf.Bytes(), nil
}

// UnmarshalEpochBlock parses a buffer produced by MarshalEpochBlock.
func UnmarshalEpochBlock(data []byte) (*types.EpochBlock, error) {
	c := newCursor(data)
	typ, err := c.uint8()
	if err != nil {
		return nil, err
	}
	if types.BlockType(typ) != types.BlockTypeEpoch {
		return nil, fmt.Errorf("codec: expected epoch_block type tag, got %d", typ)
	}
	b := &types.EpochBlock{}
	if b.EpochNum, err = c.uint32(); err != nil {
		return nil, err
	}
	if b.Previous, err = c.hash(); err != nil {
		return nil, err
	}
	if b.Timestamp, err = c.timestamp(); err != nil {
		return nil, err
	}
	if b.MicroBlockTip, err = c.hash(); err != nil {
		return nil, err
	}
	for i := range b.Delegates {
		d := &b.Delegates[i]
		if d.Account, err = c.hash(); err != nil {
			return nil, err
		}
		if d.Vote, err = c.amount(); err != nil {
			return nil, err
		}
		if d.Stake, err = c.amount(); err != nil {
			return nil, err
		}
		if d.StartingTerm, err = c.boolean(); err != nil {
			return nil, err
		}
	}
	if b.AggSig, err = unmarshalAggSig(c); err != nil {
		return nil, err
	}
	return b, nil
}
