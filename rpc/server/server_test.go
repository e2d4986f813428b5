// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/chain"
	"github.com/bitmark-inc/proportiond/counter"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/payment"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/rpc/assets"
	"github.com/bitmark-inc/proportiond/rpc/fixtures"
	"github.com/bitmark-inc/proportiond/rpc/node"
	"github.com/bitmark-inc/proportiond/rpc/offers"
	"github.com/bitmark-inc/proportiond/rpc/owner"
	"github.com/bitmark-inc/proportiond/rpc/server"
	"github.com/bitmark-inc/proportiond/rpc/share"
	"github.com/bitmark-inc/proportiond/storage"
	"github.com/bitmark-inc/proportiond/trading"
	"github.com/bitmark-inc/proportiond/trust"
)

const databaseFileName = "server-rpc-test"

func removeDataFiles() {
	os.RemoveAll(databaseFileName + "-ledger.leveldb")
	os.RemoveAll(databaseFileName + "-funds.leveldb")
}

func makeAccount(fill byte) *account.Account {
	publicKey := make([]byte, 32)
	for i := range publicKey {
		publicKey[i] = fill
	}
	return &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      true,
			PublicKey: publicKey,
		},
	}
}

// drive a full server through an in-memory pipe
func serveTestConnection(t *testing.T, readOnly bool) (*storage.Store, *rpc.Client) {
	removeDataFiles()
	store, err := storage.Initialise(databaseFileName, false)
	require.NoError(t, err, "storage initialise")

	r := registry.New(store)
	l := ledger.New(store)
	b := offerbook.New(store, l)
	engine := trading.New(store, r, l, b, &payment.AutoPayer{}, nil)

	rpcCount := counter.Counter(0)
	s := server.Create(
		logger.New(fixtures.LogCategory),
		"7.7",
		chain.Testing,
		&rpcCount,
		engine,
		r,
		l,
		b,
		trust.AllowAll{},
		readOnly,
	)

	clientConn, serverConn := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	return store, jsonrpc.NewClient(clientConn)
}

func TestCreateAndServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store, client := serveTestConnection(t, false)
	defer func() {
		_ = client.Close()
		store.Finalise()
		removeDataFiles()
	}()

	var info node.InfoReply
	err := client.Call("Node.Info", &node.InfoArguments{}, &info)
	require.NoError(t, err, "Node.Info")
	assert.Equal(t, chain.Testing, info.Chain, "wrong chain")
	assert.Equal(t, "7.7", info.Version, "wrong version")

	alice := makeAccount(0x11)

	var created assets.CreateReply
	err = client.Call("Assets.Create", &assets.CreateArguments{
		Creator:    alice,
		Metadata:   "name=artwork",
		TotalUnits: 1000,
	}, &created)
	require.NoError(t, err, "Assets.Create")
	assert.Equal(t, record.NewAssetIdentifier([]byte("name=artwork")), created.AssetId, "wrong asset id")

	var offered share.OfferReply
	err = client.Call("Share.Offer", &share.OfferArguments{
		Seller:    alice,
		AssetId:   created.AssetId,
		Units:     400,
		UnitPrice: 2,
	}, &offered)
	require.NoError(t, err, "Share.Offer")

	var balance share.BalanceReply
	err = client.Call("Share.Balance", &share.BalanceArguments{
		Owner:   alice,
		AssetId: created.AssetId,
	}, &balance)
	require.NoError(t, err, "Share.Balance")
	assert.Equal(t, uint64(1000), balance.Units, "wrong units")
	assert.Equal(t, uint64(400), balance.LockedUnits, "wrong locked units")

	var list offers.ListReply
	err = client.Call("Offers.List", &offers.ListArguments{
		AssetId: created.AssetId,
		Count:   10,
	}, &list)
	require.NoError(t, err, "Offers.List")
	require.Equal(t, 1, len(list.Offers), "wrong offer count")
	assert.Equal(t, offered.OfferId, list.Offers[0].Id, "wrong offer id")
	assert.Equal(t, record.OfferOpen, list.Offers[0].Offer.Status, "wrong status")

	var owned owner.OwnedReply
	err = client.Call("Owner.Owned", &owner.OwnedArguments{
		Owner: alice,
		Count: 10,
	}, &owned)
	require.NoError(t, err, "Owner.Owned")
	assert.Equal(t, []record.AssetIdentifier{created.AssetId}, owned.Assets, "wrong assets")
}

func TestCreateWhenReadOnly(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store, client := serveTestConnection(t, true)
	defer func() {
		_ = client.Close()
		store.Finalise()
		removeDataFiles()
	}()

	var created assets.CreateReply
	err := client.Call("Assets.Create", &assets.CreateArguments{
		Creator:    makeAccount(0x11),
		Metadata:   "name=artwork",
		TotalUnits: 1000,
	}, &created)
	require.NotNil(t, err, "create allowed")
	assert.Equal(t, fault.NotAvailableInReadOnlyMode.Error(), err.Error(), "wrong error")

	// reads still work
	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.NoError(t, err, "Node.Info")
}
