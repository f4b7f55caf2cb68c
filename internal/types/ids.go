// Package types holds the wire-level data model shared by every consensus
// chain: identifiers, amounts, blocks, requests, accounts and staking
// records. Nothing in this package touches storage, networking or crypto
// verification; it is the vocabulary the rest of the node is built on.
package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Hash is the 256-bit opaque identifier used for accounts, block hashes and
// token IDs.
type Hash = common.Hash

// ZeroHash is the sentinel "no value" hash: a zero account is the burn
// account, a zero `previous` marks an epoch-first or genesis block.
var ZeroHash = common.Hash{}

// DelegateIdx indexes into the current epoch's committee, 0..NUM_DELEGATES-1.
type DelegateIdx = uint8

// NumDelegates is the fixed committee size.
const NumDelegates = 32

// EpochNum is a monotonically increasing epoch counter.
type EpochNum = uint32

// Sequence is a monotonically increasing, per-chain block sequence number.
type Sequence = uint32

// Amount is a 128-bit unsigned quantity. big.Int is used for the arithmetic;
// the type alias keeps call sites self-documenting and gives us a single
// place to enforce the 128-bit ceiling and the wire encoding.
type Amount struct {
	v big.Int
}

// maxAmount is the largest representable 128-bit unsigned value.
var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// NewAmount builds an Amount from a uint64, always representable.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// AmountFromBig validates that v fits in 128 bits and is non-negative.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("types: negative amount %s", v)
	}
	if v.Cmp(maxAmount) > 0 {
		return Amount{}, fmt.Errorf("types: amount %s exceeds 128 bits", v)
	}
	var a Amount
	a.v.Set(v)
	return a, nil
}

// Big returns the amount as a big.Int. The returned value must not be mutated.
func (a Amount) Big() *big.Int { return &a.v }

// Add returns a+b, erroring on 128-bit overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	return AmountFromBig(new(big.Int).Add(&a.v, &b.v))
}

// Sub returns a-b, erroring if the result would be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	return AmountFromBig(new(big.Int).Sub(&a.v, &b.v))
}

// Cmp compares a to b the way big.Int.Cmp does.
func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool { return a.v.Sign() == 0 }

// String renders the amount in base 10.
func (a Amount) String() string { return a.v.String() }

// PutBigEndian writes the amount as a fixed 16-byte big-endian field,
// the wire convention used for every multi-byte integer on this codec.
func (a Amount) PutBigEndian(dst []byte) {
	if len(dst) != 16 {
		panic("types: Amount.PutBigEndian requires a 16-byte destination")
	}
	b := a.v.Bytes()
	copy(dst[16-len(b):], b)
}

// AmountFromBigEndian parses a fixed 16-byte big-endian field.
func AmountFromBigEndian(src []byte) (Amount, error) {
	if len(src) != 16 {
		return Amount{}, fmt.Errorf("types: Amount wire field must be 16 bytes, got %d", len(src))
	}
	var a Amount
	a.v.SetBytes(src)
	return a, nil
}

// Bitmap is the NUM_DELEGATES-bit committee-participation mask carried by
// every aggregate signature: RB, MB, and EB all share the same
// aggregate-sig shape.
type Bitmap [NumDelegates / 8]byte

// Set marks delegate idx as having contributed.
func (b *Bitmap) Set(idx DelegateIdx) {
	b[idx/8] |= 1 << (idx % 8)
}

// IsSet reports whether delegate idx contributed.
func (b Bitmap) IsSet(idx DelegateIdx) bool {
	return b[idx/8]&(1<<(idx%8)) != 0
}

// Popcount returns the number of set bits, used for quorum bitmap checks.
func (b Bitmap) Popcount() int {
	n := 0
	for _, by := range b {
		n += popcountByte(by)
	}
	return n
}

func popcountByte(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

// AggregateSig is the {bitmap, signature} pair carried by every sealed
// block.
type AggregateSig struct {
	Bitmap    Bitmap
	Signature [96]byte // BLS aggregate signature
}
