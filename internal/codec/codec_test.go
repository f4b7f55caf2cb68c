package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func sampleRequest() *types.Request {
	r := &types.Request{
		Envelope: types.Envelope{
			Type:     types.RequestSend,
			Origin:   types.Hash{1},
			Previous: types.Hash{2},
			Fee:      types.NewAmount(10),
			Sequence: 7,
			Work:     0,
		},
		Send: &types.SendPayload{
			To:     types.Hash{3},
			Amount: types.NewAmount(100),
		},
	}
	r.Signature = [64]byte{9, 9, 9}
	r.Next = types.Hash{4}
	return r
}

func TestRequestRoundTrip(t *testing.T) {
	r := sampleRequest()
	wantHash := crypto.MustDigest(r)

	data, err := MarshalRequest(r)
	require.NoError(t, err)

	got, err := UnmarshalRequest(data)
	require.NoError(t, err)

	require.Equal(t, r.Send.To, got.Send.To)
	require.Equal(t, r.Signature, got.Signature)
	require.Equal(t, r.Next, got.Next)
	require.Equal(t, wantHash, crypto.MustDigest(got))

	// Re-marshaling must reproduce the exact same bytes (bit-exact round trip).
	data2, err := MarshalRequest(got)
	require.NoError(t, err)
	require.Equal(t, data, data2)
}

func TestRequestBlockRoundTrip(t *testing.T) {
	rb := &types.RequestBlock{
		PrimaryDelegateIdx: 3,
		EpochNum:           5,
		Sequence:           11,
		Previous:           types.Hash{7},
		Timestamp:          time.Unix(1700000000, 0).UTC(),
		Requests:           []types.Request{*sampleRequest()},
	}
	rb.AggSig.Bitmap.Set(1)
	rb.AggSig.Bitmap.Set(4)
	rb.AggSig.Signature = [96]byte{1, 2, 3}

	wantHash := crypto.MustDigest(rb)

	data, err := MarshalRequestBlock(rb)
	require.NoError(t, err)

	got, err := UnmarshalRequestBlock(data)
	require.NoError(t, err)

	require.Equal(t, wantHash, crypto.MustDigest(got))
	require.Equal(t, rb.AggSig, got.AggSig)
	require.True(t, got.AggSig.Bitmap.IsSet(1))
	require.Equal(t, 2, got.AggSig.Bitmap.Popcount())
}

func TestMicroBlockRoundTrip(t *testing.T) {
	mb := &types.MicroBlock{
		PrimaryDelegateIdx: 2,
		EpochNum:           5,
		Sequence:           3,
		Previous:           types.Hash{1},
		Timestamp:          time.Unix(1700000100, 0).UTC(),
		LastMicroBlock:     true,
	}
	mb.Tips[0] = types.Hash{9}
	wantHash := crypto.MustDigest(mb)

	data, err := MarshalMicroBlock(mb)
	require.NoError(t, err)
	got, err := UnmarshalMicroBlock(data)
	require.NoError(t, err)
	require.Equal(t, wantHash, crypto.MustDigest(got))
	require.True(t, got.LastMicroBlock)
}

func TestEpochBlockRoundTrip(t *testing.T) {
	eb := &types.EpochBlock{
		EpochNum:      6,
		Previous:      types.Hash{2},
		Timestamp:     time.Unix(1700000200, 0).UTC(),
		MicroBlockTip: types.Hash{3},
	}
	eb.Delegates[0] = types.EpochDelegate{Account: types.Hash{5}, Vote: types.NewAmount(1), Stake: types.NewAmount(2), StartingTerm: true}
	wantHash := crypto.MustDigest(eb)

	data, err := MarshalEpochBlock(eb)
	require.NoError(t, err)
	got, err := UnmarshalEpochBlock(data)
	require.NoError(t, err)
	require.Equal(t, wantHash, crypto.MustDigest(got))
}

func TestPrequelRoundTrip(t *testing.T) {
	var buf bufferWriter
	err := WriteFrame(&buf, MsgPrePrepare, ConsensusRequest, []byte("payload"))
	require.NoError(t, err)

	p, payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, MsgPrePrepare, p.Type)
	require.Equal(t, ConsensusRequest, p.ConsensusType)
	require.Equal(t, []byte("payload"), payload)
}

// bufferWriter is a minimal io.ReadWriter backed by a slice, avoiding a
// dependency on bytes.Buffer's particular Read semantics in this test.
type bufferWriter struct {
	data []byte
	pos  int
}

func (b *bufferWriter) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bufferWriter) Read(p []byte) (int, error) {
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}
