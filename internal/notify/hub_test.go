package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

var upgrader = websocket.Upgrader{}

func newTestServer(t *testing.T, hub *Hub, filter Filter) (*httptest.Server, *websocket.Conn) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(conn, filter)
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return srv, conn
}

func TestHub_NotifyRBDeliveredToMatchingSubscriber(t *testing.T) {
	hub := NewHub()
	_, conn := newTestServer(t, hub, Filter{IncludeRequestBlock: true})

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, time.Millisecond)

	rb := &types.RequestBlock{EpochNum: 2, Sequence: 9}
	hub.NotifyRB(rb, types.Hash{0xAB})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	require.Equal(t, Topic, ev.Topic)
	require.Equal(t, "request_block", ev.BlockType)
	require.Equal(t, types.EpochNum(2), ev.EpochNum)
}

func TestHub_FilterExcludesNonMatchingBlockType(t *testing.T) {
	hub := NewHub()
	_, conn := newTestServer(t, hub, Filter{IncludeMicroBlock: true})
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, time.Millisecond)

	hub.NotifyRB(&types.RequestBlock{}, types.Hash{1})
	hub.NotifyMB(&types.MicroBlock{EpochNum: 3}, types.Hash{2})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	require.Equal(t, "micro_block", ev.BlockType)
}

func TestHub_AccountAllowListFiltersRB(t *testing.T) {
	wanted := types.Hash{0x42}
	hub := NewHub()
	_, conn := newTestServer(t, hub, Filter{IncludeRequestBlock: true, Accounts: map[types.Hash]bool{wanted: true}})
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, time.Millisecond)

	skipped := &types.RequestBlock{Requests: []types.Request{{Envelope: types.Envelope{Origin: types.Hash{0x99}}}}}
	hub.NotifyRB(skipped, types.Hash{1})

	matched := &types.RequestBlock{Requests: []types.Request{{Envelope: types.Envelope{Origin: wanted}}}}
	hub.NotifyRB(matched, types.Hash{2})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	require.Equal(t, types.Hash{2}, ev.Hash)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		unsub := hub.Subscribe(conn, Filter{IncludeEpochBlock: true})
		unsub()
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, time.Millisecond)
	hub.NotifyEB(&types.EpochBlock{EpochNum: 9}, types.Hash{1})
}
