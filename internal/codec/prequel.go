// Package codec implements the wire framing and (de)serialization for the
// TCP prequel header, the P2P wrapper headers, and bit-exact block/request
// encoding. All multi-byte integers are big-endian, matching the source
// wire format, except amounts, which are a legacy little-endian field.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic identifies the start of a valid prequel-framed stream.
const Magic uint16 = 0x4C47 // "LG"

// MessageType enumerates the wire message kinds.
type MessageType uint8

const (
	MsgPrePrepare MessageType = iota + 1
	MsgPrepare
	MsgPostPrepare
	MsgCommit
	MsgPostCommit
	MsgRejection
	MsgKeyAdvertisement
	MsgHeartBeat
	MsgTipRequest
	MsgTipResponse
	MsgPullRequest
	MsgPullResponse
	MsgPostCommittedBlock
)

// ConsensusType distinguishes which of the three chains a consensus
// message belongs to.
type ConsensusType uint8

const (
	ConsensusRequest ConsensusType = iota + 1
	ConsensusMicro
	ConsensusEpoch
)

// MaxPayloadSize bounds a single framed payload to guard against a
// malformed or hostile peer claiming an unbounded length.
const MaxPayloadSize = 64 << 20 // 64 MiB

// Prequel is the fixed 9-byte header (magic included) in front of every wire message
//").
type Prequel struct {
	Version       uint8
	Type          MessageType
	ConsensusType ConsensusType
	PayloadSize   uint32
}

// ErrBadMagic is returned when a frame's magic does not match.
var ErrBadMagic = errors.New("codec: bad prequel magic")

// ErrPayloadTooLarge is returned when a frame declares a payload larger
// than MaxPayloadSize.
var ErrPayloadTooLarge = errors.New("codec: payload exceeds maximum frame size")

const prequelWireSize = 2 + 1 + 1 + 1 + 4 // magic + version + type + consensus_type + payload_size

// WritePrequel writes p, prefixed with Magic, to w.
func WritePrequel(w io.Writer, p Prequel) error {
	var buf [prequelWireSize]byte
	binary.BigEndian.PutUint16(buf[0:2], Magic)
	buf[2] = p.Version
	buf[3] = uint8(p.Type)
	buf[4] = uint8(p.ConsensusType)
	binary.BigEndian.PutUint32(buf[5:9], p.PayloadSize)
	_, err := w.Write(buf[:])
	return err
}

// ReadPrequel reads and validates a Prequel header from r.
func ReadPrequel(r io.Reader) (Prequel, error) {
	var buf [prequelWireSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Prequel{}, err
	}
	if binary.BigEndian.Uint16(buf[0:2]) != Magic {
		return Prequel{}, ErrBadMagic
	}
	size := binary.BigEndian.Uint32(buf[5:9])
	if size > MaxPayloadSize {
		return Prequel{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, size)
	}
	return Prequel{
		Version:       buf[2],
		Type:          MessageType(buf[3]),
		ConsensusType: ConsensusType(buf[4]),
		PayloadSize:   size,
	}, nil
}

// ReadFrame reads a full prequel-framed message: the header plus exactly
// PayloadSize bytes of payload.
func ReadFrame(r io.Reader) (Prequel, []byte, error) {
	p, err := ReadPrequel(r)
	if err != nil {
		return Prequel{}, nil, err
	}
	payload := make([]byte, p.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Prequel{}, nil, err
	}
	return p, payload, nil
}

// WriteFrame writes a complete prequel + payload message to w.
func WriteFrame(w io.Writer, msgType MessageType, consensusType ConsensusType, payload []byte) error {
	p := Prequel{Version: 1, Type: msgType, ConsensusType: consensusType, PayloadSize: uint32(len(payload))}
	if err := WritePrequel(w, p); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
