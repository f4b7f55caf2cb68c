// Package blstest provides a deterministic stand-in for real BLS signing
// and aggregation, for use in unit tests only. It satisfies the
// crypto.Signer and crypto.Aggregator contracts without doing any real
// pairing-based cryptography: a "signature share" is blake2b(pubkey ||
// digest), and "aggregation" XORs the shares together, which is enough to
// exercise every code path in consensus/block-cache/persistence that only
// needs aggregation to be commutative and verifiable. Never use this
// outside tests: it provides no actual unforgeability guarantee.
package blstest

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Signer is a test-only crypto.Signer.
type Signer struct {
	pub crypto.BLSPublicKey
}

// NewSigner builds a deterministic test signer seeded by idx, so the same
// committee index always produces the same keypair across a test run.
func NewSigner(idx types.DelegateIdx) *Signer {
	var pub crypto.BLSPublicKey
	pub[0] = idx
	copy(pub[1:], []byte(fmt.Sprintf("blstest-pub-%d", idx)))
	return &Signer{pub: pub}
}

func (s *Signer) PublicKey() crypto.BLSPublicKey { return s.pub }

func (s *Signer) Sign(digest types.Hash) (crypto.BLSShare, error) {
	return shareFor(s.pub, digest), nil
}

func shareFor(pub crypto.BLSPublicKey, digest types.Hash) crypto.BLSShare {
	h := blake2b.Sum256(append(append([]byte{}, pub[:]...), digest[:]...))
	var share crypto.BLSShare
	copy(share[:], h[:])
	copy(share[32:], h[:])
	copy(share[64:], h[:])
	return share
}

// Aggregator is a test-only crypto.Aggregator.
type Aggregator struct{}

func NewAggregator() *Aggregator { return &Aggregator{} }

func (a *Aggregator) Aggregate(shares map[types.DelegateIdx]crypto.BLSShare) ([96]byte, error) {
	var out [96]byte
	for _, s := range shares {
		for i := range out {
			out[i] ^= s[i]
		}
	}
	return out, nil
}

func (a *Aggregator) Verify(digest types.Hash, sig [96]byte, bitmap types.Bitmap, committee []crypto.BLSPublicKey) (bool, error) {
	var want [96]byte
	for idx, pub := range committee {
		if !bitmap.IsSet(types.DelegateIdx(idx)) {
			continue
		}
		s := shareFor(pub, digest)
		for i := range want {
			want[i] ^= s[i]
		}
	}
	if want != sig {
		return false, nil
	}
	return true, nil
}
