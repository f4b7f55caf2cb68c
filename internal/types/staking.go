package types

// VotingPowerSnapshot is one side (current or next) of a representative's
// voting power.
type VotingPowerSnapshot struct {
	SelfStake      Amount
	LockedProxied  Amount
	UnlockedProxied Amount
}

// Total sums the three weight components of a snapshot.
func (s VotingPowerSnapshot) Total() Amount {
	t, _ := s.SelfStake.Add(s.LockedProxied)
	t, _ = t.Add(s.UnlockedProxied)
	return t
}

// VotingPowerInfo tracks a representative's current and pending voting
// power. Writes always land in Next; TransitionIfNecessary lazily copies
// Next into Current the first time the entry is observed in a later epoch.
type VotingPowerInfo struct {
	Current      VotingPowerSnapshot
	Next         VotingPowerSnapshot
	EpochModified EpochNum
}

// TransitionIfNecessary performs the lazy current<-next transition the
// first time this record is touched in an epoch strictly greater than the
// epoch it was last modified in. Grounded on
// logos/staking/voting_power_manager.cpp's TransitionIfNecessary.
func (v *VotingPowerInfo) TransitionIfNecessary(epoch EpochNum) {
	if epoch > v.EpochModified {
		v.Current = v.Next
		v.EpochModified = epoch
	}
}

// IsPrunable reports whether the record carries no power at all going
// forward and can be dropped from the store (mirrors
// VotingPowerManager::CanPrune's zero-power check; the "still a rep"
// override is layered on top by the persistence package, which knows about
// the representative table).
func (v VotingPowerInfo) IsPrunable() bool {
	return v.Next.Total().IsZero()
}

// StakedFunds records an active stake from origin toward target, keyed by
// (origin, target).
type StakedFunds struct {
	Origin Hash
	Target Hash
	Amount Amount
}

// ThawingFunds records funds cooling down after Unstake, keyed by
// (origin, expiration epoch). THAWING_PERIOD is 42 epochs.
const ThawingPeriod EpochNum = 42

type ThawingFunds struct {
	Origin       Hash
	Target       Hash
	Amount       Amount
	EpochCreated EpochNum
	Expiration   EpochNum // 0 while frozen, otherwise EpochCreated+ThawingPeriod
}

// IsFrozen reports whether the fund has not yet had its expiration set.
func (t ThawingFunds) IsFrozen() bool { return t.Expiration == 0 }

// Matured reports whether, as of currentEpoch, the thawing fund has cleared
// the cool-down and may be claimed. Pruning becomes eligible at the START
// of EpochCreated+ThawingPeriod, not one epoch earlier.
func (t ThawingFunds) Matured(currentEpoch EpochNum) bool {
	return !t.IsFrozen() && currentEpoch >= t.Expiration
}

// LiabilityKind distinguishes the accounting mirror of a staked vs. thawing
// record.
type LiabilityKind uint8

const (
	LiabilityStaked LiabilityKind = iota + 1
	LiabilityThawing
)

// Liability mirrors a StakedFunds or ThawingFunds row for accounting.
type Liability struct {
	ID     Hash
	Kind   LiabilityKind
	Origin Hash
	Target Hash
	Amount Amount
}

// RESERVATION_PERIOD epochs a non-zero account reservation persists for.
const ReservationPeriod EpochNum = 2

// RepresentativeInfo is the governance record tracking whether an account
// currently acts as a representative.
type RepresentativeInfo struct {
	IsRep       bool
	EpochStarted EpochNum
}

// CandidacyInfo tracks a candidate standing for election.
type CandidacyInfo struct {
	Account      Hash
	BlsPublicKey [96]byte
	VotesReceived Amount
	Active       bool
}
