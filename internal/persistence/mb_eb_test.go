package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestValidateMB_SequenceAndEpochContinuity(t *testing.T) {
	prev := &types.MicroBlock{Sequence: 4, EpochNum: 2, LastMicroBlock: false, Timestamp: time.Unix(1000, 0)}

	ok := &types.MicroBlock{Sequence: 5, EpochNum: 2, Timestamp: time.Unix(1010, 0)}
	require.Equal(t, CodeProgress, ValidateMB(ok, prev))

	gap := &types.MicroBlock{Sequence: 6, EpochNum: 2, Timestamp: time.Unix(1010, 0)}
	require.Equal(t, CodeGapPrevious, ValidateMB(gap, prev))

	wrongEpoch := &types.MicroBlock{Sequence: 5, EpochNum: 3, Timestamp: time.Unix(1010, 0)}
	require.Equal(t, CodeFork, ValidateMB(wrongEpoch, prev))
}

func TestValidateMB_NewEpochRequiredAfterLastMicroBlock(t *testing.T) {
	prev := &types.MicroBlock{Sequence: 9, EpochNum: 2, LastMicroBlock: true, Timestamp: time.Unix(1000, 0)}

	ok := &types.MicroBlock{Sequence: 10, EpochNum: 3, Timestamp: time.Unix(1010, 0)}
	require.Equal(t, CodeProgress, ValidateMB(ok, prev))

	stale := &types.MicroBlock{Sequence: 10, EpochNum: 2, Timestamp: time.Unix(1010, 0)}
	require.Equal(t, CodeFork, ValidateMB(stale, prev))
}

func TestCutoff(t *testing.T) {
	prev := &types.MicroBlock{Timestamp: time.Unix(1000, 0)}
	cutoff, ok := Cutoff(prev)
	require.True(t, ok)
	require.Equal(t, time.Unix(1000, 0).Add(MBProposalTime), cutoff)

	_, ok = Cutoff(nil)
	require.False(t, ok)
}

func TestValidateEB_MatchesMBTip(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	mbTip := types.Hash{1}
	require.NoError(t, tx.SetMBTip(mbTip))

	eb := &types.EpochBlock{MicroBlockTip: mbTip}
	code, err := ValidateEB(tx, eb)
	require.NoError(t, err)
	require.Equal(t, CodeProgress, code)

	eb2 := &types.EpochBlock{MicroBlockTip: types.Hash{9}}
	code2, err := ValidateEB(tx, eb2)
	require.NoError(t, err)
	require.Equal(t, CodeFork, code2)
}

func TestDeriveCommittee_RanksByScore(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	strong := types.Hash{1}
	weak := types.Hash{2}
	require.NoError(t, tx.PutCandidacy(strong, &types.CandidacyInfo{Account: strong, Active: true, VotesReceived: types.NewAmount(1000)}))
	require.NoError(t, tx.PutCandidacy(weak, &types.CandidacyInfo{Account: weak, Active: true, VotesReceived: types.NewAmount(10)}))

	committee, err := DeriveCommittee(tx, []types.Hash{strong, weak}, 1)
	require.NoError(t, err)
	require.Equal(t, strong, committee[0].Account)
	require.Equal(t, weak, committee[1].Account)
	require.True(t, committee[0].StartingTerm)
}

func TestDeriveCommittee_SkipsInactiveCandidates(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	active := types.Hash{1}
	inactive := types.Hash{2}
	require.NoError(t, tx.PutCandidacy(active, &types.CandidacyInfo{Account: active, Active: true, VotesReceived: types.NewAmount(5)}))
	require.NoError(t, tx.PutCandidacy(inactive, &types.CandidacyInfo{Account: inactive, Active: false, VotesReceived: types.NewAmount(500)}))

	committee, err := DeriveCommittee(tx, []types.Hash{active, inactive}, 1)
	require.NoError(t, err)
	require.Equal(t, active, committee[0].Account)
	require.Equal(t, types.ZeroHash, committee[1].Account)
}

func TestApplyEB_TransitionsVotingPower(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	delegate := types.Hash{1}
	require.NoError(t, tx.PutVotingPower(delegate, &types.VotingPowerInfo{
		Next:         types.VotingPowerSnapshot{SelfStake: types.NewAmount(77)},
		EpochModified: 1,
	}))

	eb := &types.EpochBlock{EpochNum: 2}
	eb.Delegates[0] = types.EpochDelegate{Account: delegate}

	_, err = ApplyEB(tx, eb)
	require.NoError(t, err)

	vp, err := tx.GetVotingPower(delegate)
	require.NoError(t, err)
	require.Equal(t, 0, vp.Current.SelfStake.Cmp(types.NewAmount(77)))
}
