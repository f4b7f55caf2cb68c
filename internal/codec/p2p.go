package codec

import (
	"encoding/binary"
	"io"
)

// BroadcastDelegate is the sentinel src/dest delegate index used for
// Post_Committed_Block gossip, which has no single intended recipient.
const BroadcastDelegate uint8 = 0xFF

// P2pHeader is the outer header every gossiped payload carries on top of
// the propagation overlay.
type P2pHeader struct {
	Version uint8
	AppType uint8
}

// P2pConsensusHeader identifies the epoch and delegate routing of a
// gossiped consensus payload.
type P2pConsensusHeader struct {
	EpochNumber uint32
	Src         uint8
	Dest        uint8
}

const p2pHeaderWireSize = 1 + 1 + 4 + 1 + 1

// WriteP2pEnvelope writes {P2pHeader, P2pConsensusHeader} followed by
// inner to w.
func WriteP2pEnvelope(w io.Writer, h P2pHeader, ch P2pConsensusHeader, inner []byte) error {
	var buf [p2pHeaderWireSize]byte
	buf[0] = h.Version
	buf[1] = h.AppType
	binary.BigEndian.PutUint32(buf[2:6], ch.EpochNumber)
	buf[6] = ch.Src
	buf[7] = ch.Dest
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	_, err := w.Write(inner)
	return err
}

// ReadP2pEnvelope parses {P2pHeader, P2pConsensusHeader} and returns the
// remaining inner bytes unconsumed from payload.
func ReadP2pEnvelope(payload []byte) (P2pHeader, P2pConsensusHeader, []byte, error) {
	if len(payload) < p2pHeaderWireSize {
		return P2pHeader{}, P2pConsensusHeader{}, nil, io.ErrUnexpectedEOF
	}
	h := P2pHeader{Version: payload[0], AppType: payload[1]}
	ch := P2pConsensusHeader{
		EpochNumber: binary.BigEndian.Uint32(payload[2:6]),
		Src:         payload[6],
		Dest:        payload[7],
	}
	return h, ch, payload[p2pHeaderWireSize:], nil
}
