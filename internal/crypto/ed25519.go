package crypto

import (
	"crypto/ed25519"
	"errors"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ErrBadSignature is returned by Verify when the signature does not match.
var ErrBadSignature = errors.New("crypto: bad ed25519 signature")

// AccountSigner signs request digests with a single account's ed25519 key:
// a detached signature over the blake2b-256 digest of the canonical
// serialization.
type AccountSigner struct {
	priv ed25519.PrivateKey
}

// NewAccountSigner wraps an existing ed25519 private key.
func NewAccountSigner(priv ed25519.PrivateKey) *AccountSigner {
	return &AccountSigner{priv: priv}
}

// GenerateAccountKey produces a fresh ed25519 keypair for tests and
// tooling.
func GenerateAccountKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	return ed25519.GenerateKey(nil)
}

// Sign returns the detached signature over digest.
func (s *AccountSigner) Sign(digest types.Hash) [64]byte {
	sig := ed25519.Sign(s.priv, digest[:])
	var out [64]byte
	copy(out[:], sig)
	return out
}

// VerifyAccountSignature checks a detached ed25519 signature against the
// account's public key and a content digest.
func VerifyAccountSignature(pub ed25519.PublicKey, digest types.Hash, sig [64]byte) error {
	if !ed25519.Verify(pub, digest[:], sig[:]) {
		return ErrBadSignature
	}
	return nil
}
