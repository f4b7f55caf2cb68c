package types

import "io"

// UserAccount is the on-chain state of a plain user account.
type UserAccount struct {
	Head                 Hash
	ReceiveHead          Hash
	StakingSubchainHead  Hash
	OpenBlock            Hash
	Balance              Amount
	Modified             int64 // unix seconds of last mutation
	BlockCount           uint32
	ReceiveCount         uint32
	Reservation          Hash // zero means unreserved
	ReservationEpoch     EpochNum
	TokenEntries         []TokenEntry
}

// TokenEntry is one row of a user account's per-token balance table.
type TokenEntry struct {
	TokenID Hash
	Balance Amount
}

// TokenAccount is the on-chain state of an issued token.
type TokenAccount struct {
	Head            Hash
	Balance         Amount
	TotalSupply     Amount
	TokenBalance    Amount
	TokenFeeBalance Amount
	FeeType         TokenFeeType
	FeeRate         Amount
	Symbol          string
	Name            string
	IssuerInfo      string
	Controllers     []Hash
	Settings        uint32
}

// SettingIsMutable reports whether setting may still be changed, i.e.
// whether its "may-modify" guard bit (the odd value following the even
// setting value) is currently set.
func (t *TokenAccount) SettingIsMutable(setting TokenSetting) bool {
	guard := setting + 1
	return t.Settings&(1<<uint(guard)) != 0
}

// ReceiveBlock is the ghost record synthesized on the destination side of a
// Send/TokenSend so the receive chain can be walked independently of the
// sender's RB.
type ReceiveBlock struct {
	Account      Hash
	SourceHash   Hash // hash of the originating request
	Amount       Amount
	Timestamp    int64
	Previous     Hash // previous receive-chain entry for this account
}

// WriteHashable implements Hashable for ReceiveBlock so PlaceReceive can
// address each ghost record by content hash the same way blocks and
// requests are addressed.
func (r *ReceiveBlock) WriteHashable(w io.Writer) error {
	if err := writeHash(w, r.Account); err != nil {
		return err
	}
	if err := writeHash(w, r.SourceHash); err != nil {
		return err
	}
	if err := writeAmount(w, r.Amount); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(r.Timestamp)); err != nil {
		return err
	}
	return writeHash(w, r.Previous)
}
