// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/chain"
	"github.com/bitmark-inc/proportiond/counter"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/rpc/assets"
	"github.com/bitmark-inc/proportiond/rpc/node"
	"github.com/bitmark-inc/proportiond/rpc/offers"
	"github.com/bitmark-inc/proportiond/rpc/owner"
	"github.com/bitmark-inc/proportiond/rpc/share"
	"github.com/bitmark-inc/proportiond/trading"
	"github.com/bitmark-inc/proportiond/trust"
)

// Create - build the RPC server with all services registered
func Create(
	log *logger.L,
	version string,
	chainName string,
	rpcCount *counter.Counter,
	engine *trading.Engine,
	r *registry.Registry,
	l *ledger.Ledger,
	b *offerbook.Book,
	approver trust.Approver,
	readOnly bool,
) *rpc.Server {

	start := time.Now().UTC()

	isTesting := chain.IsTesting(chainName)
	isTestingChain := func() bool { return isTesting }

	// a nil approver means no restriction on sellers
	if nil == approver {
		approver = trust.AllowAll{}
	}

	server := rpc.NewServer()

	_ = server.Register(assets.New(log, engine, r, isTestingChain, readOnly))
	_ = server.Register(share.New(log, engine, l, b, approver, isTestingChain, readOnly))
	_ = server.Register(offers.New(log, engine, b, isTestingChain, readOnly))
	_ = server.Register(owner.New(log, l))
	_ = server.Register(node.New(log, start, version, chainName, rpcCount))

	return server
}
