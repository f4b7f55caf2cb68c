package types

// RequestType tags the Request union.
type RequestType uint8

const (
	RequestSend RequestType = iota + 1
	RequestTokenSend
	RequestIssuance
	RequestRevoke
	RequestAdjustFee
	RequestUpdateController
	RequestIssueAdditional
	RequestChangeSetting
	RequestImmuteSetting
	RequestWithdrawFee
	RequestDistribute
	RequestWithdrawLogos
	RequestTokenBurn
	RequestElectionVote
	RequestAnnounceCandidacy
	RequestRenounceCandidacy
	RequestStartRepresenting
	RequestStopRepresenting
	RequestStake
	RequestUnstake
	RequestProxy
	RequestClaim
)

// Envelope holds the fields common to every request variant.
type Envelope struct {
	Type      RequestType
	Origin    Hash
	Previous  Hash
	Fee       Amount
	Sequence  uint32
	Signature [64]byte // ed25519 detached signature
	Next      Hash
	// Work is carried on the wire for backwards compatibility with the
	// source format but is never validated.
	Work uint64
}

// Request is the tagged union over every request variant. Only one of the
// typed payload fields is populated, selected by Envelope.Type: a tagged
// union plus a common envelope in place of deep virtual inheritance.
type Request struct {
	Envelope

	Send             *SendPayload
	TokenSend        *TokenSendPayload
	Issuance         *IssuancePayload
	Governance       *GovernancePayload
	ElectionVote     *ElectionVotePayload
	AnnounceCandidacy *AnnounceCandidacyPayload
	StartRepresenting *StartRepresentingPayload
	Stake            *StakePayload
	Unstake          *UnstakePayload
	Proxy            *ProxyPayload
	Claim            *ClaimPayload
}

// SendPayload is the body of a plain token-less Send request.
type SendPayload struct {
	To     Hash
	Amount Amount
}

// TokenFeeType selects how a token's transfer fee is computed.
type TokenFeeType uint8

const (
	TokenFeeFlat TokenFeeType = iota + 1
	TokenFeePercentage
)

// TokenSendPayload is the body of a TokenSend request.
type TokenSendPayload struct {
	TokenID Hash
	To      Hash
	Amount  Amount
}

// IssuancePayload creates a new token account.
type IssuancePayload struct {
	TokenID      Hash
	Symbol       string
	Name         string
	TotalSupply  Amount
	FeeType      TokenFeeType
	FeeRate      Amount
	Settings     uint32
	Controllers  []Hash
}

// TokenSetting enumerates the token settings bitfield. Even values are the
// setting itself; the following odd value is the "may this be modified"
// guard bit for that setting.
type TokenSetting uint8

const (
	SettingIssuance TokenSetting = iota * 2
	SettingIssuanceModifiable
	SettingRevoke
	SettingRevokeModifiable
	SettingFreeze
	SettingFreezeModifiable
	SettingAdjustFee
	SettingAdjustFeeModifiable
	SettingWhitelist
	SettingWhitelistModifiable
)

// GovernancePayload covers Revoke/AdjustFee/UpdateController and the other
// token-administration requests, which all share a controller + target
// shape; the specific sub-kind is carried by Envelope.Type.
type GovernancePayload struct {
	TokenID    Hash
	Target     Hash
	Amount     Amount
	FeeRate    Amount
	Setting    TokenSetting
	NewValue   bool
	Controller Hash
}

// ElectionVotePayload is a representative-election ballot.
type ElectionVotePayload struct {
	Epoch      EpochNum
	Candidates []Hash
	Weights    []Amount
}

// AnnounceCandidacyPayload registers origin as an election candidate.
type AnnounceCandidacyPayload struct {
	BlsPublicKey [96]byte
}

// StartRepresentingPayload opts origin in as a representative without
// standing for election.
type StartRepresentingPayload struct{}

// StakePayload locks funds toward a target representative's stake.
type StakePayload struct {
	Target Hash
	Amount Amount
}

// UnstakePayload begins thawing previously staked funds.
type UnstakePayload struct {
	Target Hash
}

// ProxyPayload delegates voting weight to a representative.
type ProxyPayload struct {
	Target   Hash
	Amount   Amount
	Locked   bool
}

// ClaimPayload withdraws matured thawing funds or accrued rewards.
type ClaimPayload struct {
	Target Hash
	Amount Amount
}
