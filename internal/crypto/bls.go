package crypto

import (
	"errors"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ErrBadAggregateSignature is returned when an aggregate signature fails to
// verify against a committee's public keys and bitmap.
var ErrBadAggregateSignature = errors.New("crypto: bad BLS aggregate signature")

// BLSShare is one delegate's signature share over a content digest
// -> σ_i").
type BLSShare [96]byte

// BLSPublicKey is a single delegate's BLS public key, as advertised via
// KeyAdvertisement.
type BLSPublicKey [48]byte

// Signer produces this node's signature share over a content digest. The
// concrete BLS math backing Signer and Aggregator is an external
// collaborator; production wiring plugs in a real BLS
// library, tests use the blstest package's deterministic double.
type Signer interface {
	Sign(digest types.Hash) (BLSShare, error)
	PublicKey() BLSPublicKey
}

// Aggregator combines per-delegate signature shares into a single
// aggregate signature and verifies the result against a committee.
type Aggregator interface {
	// Aggregate combines shares (indexed in committee order, nil entries
	// skipped) into a single 96-byte aggregate signature.
	Aggregate(shares map[types.DelegateIdx]BLSShare) ([96]byte, error)

	// Verify checks an aggregate signature against digest, the
	// contributing-delegate bitmap, and the committee's public keys.
	Verify(digest types.Hash, sig [96]byte, bitmap types.Bitmap, committee []BLSPublicKey) (bool, error)
}
