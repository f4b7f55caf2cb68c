package bootstrap

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

type fakeClient struct {
	id       string
	tips     TipSet
	blocks   map[Range][][]byte // chainType inferred from the Range itself
	closed   bool
}

func (c *fakeClient) ID() string { return c.id }

func (c *fakeClient) RequestTip(ctx context.Context) (TipSet, error) {
	return c.tips, nil
}

func (c *fakeClient) PullRange(ctx context.Context, r Range, onBlock func(types.BlockType, []byte) error) error {
	for _, raw := range c.blocks[r] {
		if err := onBlock(r.ChainType, raw); err != nil {
			return err
		}
	}
	return nil
}

func (c *fakeClient) Close() error {
	c.closed = true
	return nil
}

type fakeSink struct {
	mu  sync.Mutex
	ebs int
	mbs int
	rbs int
}

func (s *fakeSink) AddRB(rb *types.RequestBlock) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rbs++
	return true, nil
}
func (s *fakeSink) AddMB(mb *types.MicroBlock) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mbs++
	return true, nil
}
func (s *fakeSink) AddEB(eb *types.EpochBlock) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ebs++
	return true, nil
}
func (s *fakeSink) Validate(startDelegateIdx types.DelegateIdx) error { return nil }

func TestDriver_BootstrapPullsMissingEpochBlock(t *testing.T) {
	eb := &types.EpochBlock{EpochNum: 4}
	raw, err := codec.MarshalEpochBlock(eb)
	require.NoError(t, err)

	r := Range{ChainType: types.BlockTypeEpoch, From: 3, To: 5}
	client := &fakeClient{
		id:     "peer-1",
		tips:   TipSet{},
		blocks: map[Range][][]byte{r: {raw}},
	}

	sink := &fakeSink{}
	d := NewDriver(4, sink)
	d.AddClient(client)

	err = d.Bootstrap(context.Background(), LocalTips{EBNum: 3}, 5)
	require.NoError(t, err)
	require.Equal(t, 1, sink.ebs)
	require.False(t, client.closed)
}

func TestDriver_StopClosesIdleClients(t *testing.T) {
	client := &fakeClient{id: "peer-1"}
	sink := &fakeSink{}
	d := NewDriver(2, sink)
	d.AddClient(client)

	d.Stop()
	require.True(t, client.closed)

	_, err := d.takeIdle()
	require.ErrorIs(t, err, errStopped)
}

func TestDriver_AddClientAfterStopClosesImmediately(t *testing.T) {
	sink := &fakeSink{}
	d := NewDriver(2, sink)
	d.Stop()

	client := &fakeClient{id: "late"}
	d.AddClient(client)
	require.True(t, client.closed)
}

func TestDriver_BootstrapReturnsWhenStopped(t *testing.T) {
	sink := &fakeSink{}
	d := NewDriver(1, sink)
	// No clients registered: takeIdle blocks until Stop wakes it.
	go func() {
		time.Sleep(10 * time.Millisecond)
		d.Stop()
	}()
	err := d.Bootstrap(context.Background(), LocalTips{}, 0)
	require.ErrorIs(t, err, errStopped)
}
