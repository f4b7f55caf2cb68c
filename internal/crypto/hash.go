// Package crypto exposes the abstract signature and hashing contracts
// consensus and persistence are built on: ed25519 per-account signatures,
// BLS aggregate signatures over a committee bitmap, and the blake2b digest
// every Hashable content type reduces to. The BLS math itself is an
// out-of-scope external collaborator; this package only
// specifies the interface it must satisfy.
package crypto

import (
	"golang.org/x/crypto/blake2b"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Digest streams h's hashable content through blake2b-256 and returns the
// resulting 32-byte digest as a types.Hash.
func Digest(h types.Hashable) (types.Hash, error) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return types.Hash{}, err
	}
	if err := h.WriteHashable(hasher); err != nil {
		return types.Hash{}, err
	}
	var out types.Hash
	copy(out[:], hasher.Sum(nil))
	return out, nil
}

// MustDigest panics if Digest fails. Used only where the Hashable's
// WriteHashable is provably incapable of erroring (in-memory buffers,
// fixed-size fields) such as in tests and fixture construction.
func MustDigest(h types.Hashable) types.Hash {
	out, err := Digest(h)
	if err != nil {
		panic(err)
	}
	return out
}
