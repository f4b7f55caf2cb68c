// Package config loads and validates the node's JSON configuration file
//"), using github.com/spf13/viper with
// UnmarshalExact so unknown keys are rejected on load rather than silently
// ignored.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// DelegateAddress maps a committee seat to its network address.
type DelegateAddress struct {
	ID types.DelegateIdx `mapstructure:"id"`
	IP string            `mapstructure:"ip"`
}

// RPCConfig holds the JSON-RPC façade's settings. The façade itself is an
// explicit out-of-scope external collaborator; this struct
// only carries its configuration through so the config file's rpc block
// round-trips without being rejected as unknown.
type RPCConfig struct {
	Enable bool   `mapstructure:"enable"`
	Port   int    `mapstructure:"port"`
	Host   string `mapstructure:"host"`
}

// WebsocketConfig configures the confirmation notification hub
// (internal/notify).
type WebsocketConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// P2PConfig configures the gossip overlay collaborator;
// Argv is passed through verbatim since the overlay implementation itself
// is out of scope.
type P2PConfig struct {
	Argv []string `mapstructure:"argv"`
}

// Config is the full recognized set of JSON config keys this node reads at
// startup, including MBProposalTimeSeconds and UnlockedProxyDilution.
type Config struct {
	DelegateID types.DelegateIdx `mapstructure:"delegate_id"`

	Delegates    []DelegateAddress `mapstructure:"delegates"`
	AllDelegates []DelegateAddress `mapstructure:"all_delegates"`

	PeerPort int `mapstructure:"peer_port"`
	JSONPort int `mapstructure:"json_port"`
	BinPort  int `mapstructure:"bin_port"`

	Heartbeat bool `mapstructure:"heartbeat"`

	IOThreads   int `mapstructure:"io_threads"`
	WorkThreads int `mapstructure:"work_threads"`

	LMDBMaxDBs int `mapstructure:"lmdb_max_dbs"`

	EnableEpochTransition bool `mapstructure:"enable_epoch_transition"`

	RPCEnable bool      `mapstructure:"rpc_enable"`
	RPC       RPCConfig `mapstructure:"rpc"`

	Websocket WebsocketConfig `mapstructure:"websocket"`

	BootstrapConnections    int `mapstructure:"bootstrap_connections"`
	BootstrapConnectionsMax int `mapstructure:"bootstrap_connections_max"`

	P2P P2PConfig `mapstructure:"p2p"`

	// MBProposalTimeSeconds is loaded (default 30) but not read by any
	// component: the Micro Block cutoff uses the fixed
	// persistence.MBProposalTime.
	MBProposalTimeSeconds int `mapstructure:"mb_proposal_time_seconds"`

	// UnlockedProxyDilution is the dilution factor applied to unlocked
	// proxy weight during committee derivation (see DESIGN.md).
	UnlockedProxyDilution float64 `mapstructure:"unlocked_proxy_dilution"`
}

// defaults mirrors the source's hard-coded constants for fields an operator
// may reasonably omit.
func defaults(v *viper.Viper) {
	v.SetDefault("heartbeat", true)
	v.SetDefault("io_threads", 4)
	v.SetDefault("work_threads", 4)
	v.SetDefault("lmdb_max_dbs", 20)
	v.SetDefault("enable_epoch_transition", true)
	v.SetDefault("bootstrap_connections", 4)
	v.SetDefault("bootstrap_connections_max", 16)
	v.SetDefault("mb_proposal_time_seconds", 30)
	v.SetDefault("unlocked_proxy_dilution", 0.60)
}

// Load reads and strictly decodes the JSON config file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	defaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("config: unknown or malformed key in %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural invariants (delegate_id in range, peer_port
// set, all_delegates non-empty, websocket.port set when websocket is
// enabled) that UnmarshalExact's type-checking alone cannot enforce.
func (c *Config) Validate() error {
	if int(c.DelegateID) >= types.NumDelegates {
		return fmt.Errorf("config: delegate_id %d out of range [0,%d)", c.DelegateID, types.NumDelegates)
	}
	if c.PeerPort <= 0 {
		return fmt.Errorf("config: peer_port must be set")
	}
	if len(c.AllDelegates) == 0 {
		return fmt.Errorf("config: all_delegates must not be empty")
	}
	if c.Websocket.Enabled && c.Websocket.Port <= 0 {
		return fmt.Errorf("config: websocket.port must be set when websocket.enabled")
	}
	return nil
}
