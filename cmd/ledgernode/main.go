// Command ledgernode is the node binary's composition root: it loads
// config, opens the store, and wires every component together. The
// production BLS signing backend is an explicit out-of-scope external
// collaborator; this binary defines the seams (crypto.Signer/Aggregator,
// netio.Dispatcher) where a deployment plugs one in, treating the signing
// backend as pluggable behind an interface rather than hard-wired.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/LogosNetwork/logos-core-sub003/internal/config"
	"github.com/LogosNetwork/logos-core-sub003/internal/epoch"
	"github.com/LogosNetwork/logos-core-sub003/internal/netio"
	"github.com/LogosNetwork/logos-core-sub003/internal/notify"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/requestflow"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "data-dir",
		Usage: "Directory holding the node's persisted store",
		Value: "./data",
	}
	configFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "Path to the node's JSON config file",
		Required: true,
	}
)

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, true)))

	app := &cli.App{
		Name:  "ledgernode",
		Usage: "delegated BFT ledger node",
		Flags: []cli.Flag{dataDirFlag, configFlag},
		Action: run,
		Commands: []*cli.Command{
			statusCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(*configError); ok {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

// configError marks a failure in config loading/validation, mapped to exit
// code 1.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String(configFlag.Name))
	if err != nil {
		return nil, &configError{err}
	}
	return cfg, nil
}

// run boots the node: loads config, opens the store, wires persistence,
// the consensus machines over a concrete chainops adapter, the peer
// transport, the request-flow entrypoint, and the confirmation hub, then
// blocks forever. The BLS signing backend is a stubbed deterministic
// double (internal/crypto/blstest); the real BLS math is an explicit
// out-of-scope external collaborator a production deployment
// plugs in at that seam.
func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	persistence.UnlockedProxyDilution = cfg.UnlockedProxyDilution

	db := store.NewMemStore()
	defer db.Close()

	validator := persistence.NewValidator()
	hub := notify.NewHub()
	set := seatCommittee(cfg)

	proxy := &dispatcherProxy{}
	network := netio.NewNetwork(cfg.DelegateID, proxy)
	defer network.Stop()

	noCandidates := func() []types.Hash { return nil }
	s := newStack(cfg, set, db, validator, network, hub, noCandidates)
	proxy.target = s

	stopListening, err := acceptPeers(network, cfg)
	if err != nil {
		return err
	}
	defer stopListening()
	dialPeers(network, cfg)

	// flow is requestflow's OnSendRequest entrypoint wired to this
	// delegate's RB submission queue; the RPC/TxAcceptor façade that would
	// call it is an out-of-scope external collaborator, so
	// nothing in this binary invokes it yet.
	_ = requestflow.New(validator, s.rbOps)

	go s.run()
	defer s.stop()

	log.Info("ledgernode: initialized",
		"delegate_id", cfg.DelegateID,
		"peer_port", cfg.PeerPort,
		"data_dir", c.String(dataDirFlag.Name),
	)

	select {}
}

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "print the current epoch and committee",
	Flags: []cli.Flag{dataDirFlag, configFlag},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		set := &epoch.Set{Num: 0}
		mgr := epoch.NewManager(set)
		return printStatus(mgr.Current(), cfg)
	},
}
