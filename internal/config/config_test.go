package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_HappyPathAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"delegate_id": 3,
		"all_delegates": [{"id": 0, "ip": "10.0.0.1"}],
		"peer_port": 9000
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 3, cfg.DelegateID)
	require.Equal(t, 9000, cfg.PeerPort)
	require.True(t, cfg.Heartbeat)
	require.Equal(t, 4, cfg.IOThreads)
	require.Equal(t, 0.60, cfg.UnlockedProxyDilution)
}

func TestLoad_RejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `{
		"delegate_id": 0,
		"all_delegates": [{"id": 0, "ip": "10.0.0.1"}],
		"peer_port": 9000,
		"totally_unknown_field": true
	}`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsOutOfRangeDelegateID(t *testing.T) {
	path := writeConfig(t, `{
		"delegate_id": 99,
		"all_delegates": [{"id": 0, "ip": "10.0.0.1"}],
		"peer_port": 9000
	}`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsMissingPeerPort(t *testing.T) {
	path := writeConfig(t, `{
		"delegate_id": 0,
		"all_delegates": [{"id": 0, "ip": "10.0.0.1"}]
	}`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_WebsocketRequiresPortWhenEnabled(t *testing.T) {
	path := writeConfig(t, `{
		"delegate_id": 0,
		"all_delegates": [{"id": 0, "ip": "10.0.0.1"}],
		"peer_port": 9000,
		"websocket": {"enabled": true}
	}`)

	_, err := Load(path)
	require.Error(t, err)
}
