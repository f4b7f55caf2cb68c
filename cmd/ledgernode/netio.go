package main

import (
	"fmt"
	"net"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/config"
	"github.com/LogosNetwork/logos-core-sub003/internal/netio"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// dispatcherProxy lets network construction and stack construction happen
// in either order: Network needs a Dispatcher at NewNetwork time, but the
// stack that implements Dispatch needs the Network to build its
// Transport. The proxy is handed to NewNetwork immediately and pointed at
// the real stack once it exists.
type dispatcherProxy struct {
	target netio.Dispatcher
}

func (d *dispatcherProxy) Dispatch(remote types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) {
	if d.target != nil {
		d.target.Dispatch(remote, consensusType, msgType, payload)
	}
}

// dialPeers has this node dial every configured peer; Network.Connect
// itself no-ops for peers the dial policy assigns us the acceptor role
// for.
func dialPeers(network *netio.Network, cfg *config.Config) {
	for _, d := range cfg.AllDelegates {
		if d.ID == cfg.DelegateID {
			continue
		}
		addr := fmt.Sprintf("%s:%d", d.IP, cfg.PeerPort)
		network.Connect(d.ID, addr)
	}
}

// acceptPeers listens on cfg.PeerPort and hands every inbound connection
// to network once its source IP is matched against the configured peer
// table, the only peer-identity source this config format carries.
func acceptPeers(network *netio.Network, cfg *config.Config) (func(), error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.PeerPort))
	if err != nil {
		return nil, fmt.Errorf("ledgernode: listening on peer port: %w", err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				log.Debug("ledgernode: peer listener stopped", "err", err)
				return
			}
			remoteIdx, addr, ok := identifyPeer(cfg, conn)
			if !ok {
				log.Debug("ledgernode: rejecting connection from unconfigured peer", "remote", conn.RemoteAddr())
				conn.Close()
				continue
			}
			network.Accept(remoteIdx, addr, conn)
		}
	}()

	return func() { ln.Close() }, nil
}

func identifyPeer(cfg *config.Config, conn net.Conn) (types.DelegateIdx, string, bool) {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return 0, "", false
	}
	for _, d := range cfg.AllDelegates {
		if d.IP == host {
			return d.ID, fmt.Sprintf("%s:%d", d.IP, cfg.PeerPort), true
		}
	}
	return 0, "", false
}
