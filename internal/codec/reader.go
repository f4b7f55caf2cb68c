package codec

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// cursor is a small bounds-checked big-endian reader used to parse the
// fixed field layouts written by types.Hashable.WriteHashable. It exists
// in codec (not types) so that types has no dependency on the wire format,
// only on the abstract Hashable content order it already owns.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.b) {
		return fmt.Errorf("codec: unexpected end of buffer, need %d more bytes at offset %d", n, c.pos)
	}
	return nil
}

func (c *cursor) uint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.b[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) uint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.b[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) uint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(c.b[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *cursor) hash() (types.Hash, error) {
	if err := c.need(32); err != nil {
		return types.Hash{}, err
	}
	var h types.Hash
	copy(h[:], c.b[c.pos:c.pos+32])
	c.pos += 32
	return h, nil
}

func (c *cursor) amount() (types.Amount, error) {
	if err := c.need(16); err != nil {
		return types.Amount{}, err
	}
	a, err := types.AmountFromBigEndian(c.b[c.pos : c.pos+16])
	c.pos += 16
	return a, err
}

func (c *cursor) boolean() (bool, error) {
	v, err := c.uint8()
	return v != 0, err
}

func (c *cursor) bytes() ([]byte, error) {
	n, err := c.uint32()
	if err != nil {
		return nil, err
	}
	if err := c.need(int(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.b[c.pos:c.pos+int(n)])
	c.pos += int(n)
	return out, nil
}

func (c *cursor) str() (string, error) {
	b, err := c.bytes()
	return string(b), err
}

func (c *cursor) timestamp() (time.Time, error) {
	ns, err := c.uint64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, int64(ns)).UTC(), nil
}

func (c *cursor) remaining() []byte { return c.b[c.pos:] }
