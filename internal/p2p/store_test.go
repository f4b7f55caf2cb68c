package p2p

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestPropagationStore_InsertDedupsAndFinds(t *testing.T) {
	s := NewPropagationStore(4)
	h := types.Hash{1, 2, 3}

	require.True(t, s.Insert(h, []byte("payload")))
	require.True(t, s.Find(h))
	require.False(t, s.Insert(h, []byte("payload"))) // duplicate
	require.Equal(t, 1, s.Len())
}

func TestPropagationStore_FIFOEvictsOldest(t *testing.T) {
	s := NewPropagationStore(2)
	h1, h2, h3 := types.Hash{1}, types.Hash{2}, types.Hash{3}

	require.True(t, s.Insert(h1, nil))
	require.True(t, s.Insert(h2, nil))
	require.True(t, s.Insert(h3, nil)) // evicts h1

	require.Equal(t, 2, s.Len())
	require.False(t, s.Find(h1))
	require.True(t, s.Find(h2))
	require.True(t, s.Find(h3))
}

func TestPropagationStore_ReinsertAfterEvictionSucceeds(t *testing.T) {
	s := NewPropagationStore(1)
	h1, h2 := types.Hash{1}, types.Hash{2}

	require.True(t, s.Insert(h1, nil))
	require.True(t, s.Insert(h2, nil)) // evicts h1 from the exact index

	// h1's bloom bit is still set (blooms can't forget), but the exact
	// index no longer has it, so it must be treated as unseen again.
	require.False(t, s.Find(h1))
	require.True(t, s.Insert(h1, nil))
}
