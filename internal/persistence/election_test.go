package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestApplyElection_AnnounceAndVote(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	candidate := types.Hash{1}
	voter := types.Hash{2}
	require.NoError(t, tx.PutAccount(candidate, &types.UserAccount{}))
	require.NoError(t, tx.PutAccount(voter, &types.UserAccount{}))

	v := NewValidator()
	announce := &types.Request{
		Envelope:          types.Envelope{Type: types.RequestAnnounceCandidacy, Origin: candidate},
		AnnounceCandidacy: &types.AnnounceCandidacyPayload{},
	}
	require.NoError(t, v.applyElection(tx, announce, types.Hash{0x10}, 3))

	c, err := tx.GetCandidacy(candidate)
	require.NoError(t, err)
	require.True(t, c.Active)

	rep, err := tx.GetRepresentative(candidate)
	require.NoError(t, err)
	require.True(t, rep.IsRep)

	vote := &types.Request{
		Envelope:     types.Envelope{Type: types.RequestElectionVote, Origin: voter},
		ElectionVote: &types.ElectionVotePayload{Epoch: 3, Candidates: []types.Hash{candidate}, Weights: []types.Amount{types.NewAmount(42)}},
	}
	require.NoError(t, v.applyElection(tx, vote, types.Hash{0x11}, 3))

	c, err = tx.GetCandidacy(candidate)
	require.NoError(t, err)
	require.Equal(t, 0, c.VotesReceived.Cmp(types.NewAmount(42)))
}

func TestApplyElection_RenounceClearsActive(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	candidate := types.Hash{1}
	require.NoError(t, tx.PutAccount(candidate, &types.UserAccount{}))

	v := NewValidator()
	announce := &types.Request{
		Envelope:          types.Envelope{Type: types.RequestAnnounceCandidacy, Origin: candidate},
		AnnounceCandidacy: &types.AnnounceCandidacyPayload{},
	}
	require.NoError(t, v.applyElection(tx, announce, types.Hash{0x10}, 1))

	renounce := &types.Request{Envelope: types.Envelope{Type: types.RequestRenounceCandidacy, Origin: candidate}}
	require.NoError(t, v.applyElection(tx, renounce, types.Hash{0x12}, 1))

	c, err := tx.GetCandidacy(candidate)
	require.NoError(t, err)
	require.False(t, c.Active)
}
