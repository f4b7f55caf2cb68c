package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestMeetsQuorum_ExactDivisionRequiresStrictExcess(t *testing.T) {
	totals := types.QuorumTotals{TotalVote: types.NewAmount(300), TotalStake: types.NewAmount(300)}
	// 2*300/3 = 200 exactly, no remainder: equality must NOT satisfy quorum.
	require.False(t, MeetsQuorum(types.NewAmount(200), types.NewAmount(200), totals))
	require.True(t, MeetsQuorum(types.NewAmount(201), types.NewAmount(201), totals))
}

func TestMeetsQuorum_RoundedBoundaryIsInclusive(t *testing.T) {
	totals := types.QuorumTotals{TotalVote: types.NewAmount(100), TotalStake: types.NewAmount(100)}
	// 2*100/3 = 66.67 -> ceil 67, with a remainder: 67 itself must satisfy quorum.
	require.True(t, MeetsQuorum(types.NewAmount(67), types.NewAmount(67), totals))
	require.False(t, MeetsQuorum(types.NewAmount(66), types.NewAmount(66), totals))
}

func TestRejectionThreshold(t *testing.T) {
	total := types.NewAmount(300)
	require.False(t, RejectionThreshold(types.NewAmount(99), total))
	require.True(t, RejectionThreshold(types.NewAmount(100), total))
}
