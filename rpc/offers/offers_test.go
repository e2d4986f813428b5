// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/payment"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/rpc/fixtures"
	"github.com/bitmark-inc/proportiond/rpc/offers"
	"github.com/bitmark-inc/proportiond/storage"
	"github.com/bitmark-inc/proportiond/trading"
)

const databaseFileName = "offers-rpc-test"

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

type testService struct {
	store   *storage.Store
	engine  *trading.Engine
	service *offers.Offers
}

func setup(t *testing.T, readOnly bool) *testService {
	removeDataFiles()
	store, err := storage.Initialise(databaseFileName, false)
	require.NoError(t, err, "storage initialise")

	r := registry.New(store)
	l := ledger.New(store)
	b := offerbook.New(store, l)
	engine := trading.New(store, r, l, b, &payment.AutoPayer{}, nil)

	service := offers.New(
		logger.New(fixtures.LogCategory),
		engine,
		b,
		func() bool { return true },
		readOnly,
	)

	return &testService{
		store:   store,
		engine:  engine,
		service: service,
	}
}

func (s *testService) teardown() {
	s.store.Finalise()
	removeDataFiles()
}

// create an asset and open some offers against it
func createOffers(t *testing.T, s *testService, seller *account.Account, count int) (record.AssetIdentifier, []record.OfferIdentifier) {
	assetId, err := s.engine.CreateAsset(seller, "name=artwork", 1000)
	require.NoError(t, err, "create asset")

	offerIds := make([]record.OfferIdentifier, count)
	for i := 0; i < count; i += 1 {
		offerIds[i], err = s.engine.OfferShares(seller, assetId, 10, uint64(i+1))
		require.NoError(t, err, "offer")
	}
	return assetId, offerIds
}

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, false)
	defer s.teardown()

	alice := makeAccount(0x11)
	_, offerIds := createOffers(t, s, alice, 1)

	var reply offers.GetReply
	err := s.service.Get(&offers.GetArguments{OfferId: offerIds[0]}, &reply)
	require.NoError(t, err, "get")
	assert.Equal(t, offerIds[0], reply.OfferId, "wrong offer id")
	assert.Equal(t, alice.String(), reply.Offer.Seller.String(), "wrong seller")
	assert.Equal(t, uint64(10), reply.Offer.UnitsRemaining, "wrong remaining")
	assert.Equal(t, uint64(1), reply.Offer.UnitPrice, "wrong price")
	assert.Equal(t, record.OfferOpen, reply.Offer.Status, "wrong status")
}

func TestGetMissing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, false)
	defer s.teardown()

	var reply offers.GetReply
	err := s.service.Get(&offers.GetArguments{}, &reply)
	assert.Equal(t, fault.OfferNotFound, err, "wrong error")
}

func TestList(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, false)
	defer s.teardown()

	alice := makeAccount(0x11)
	assetId, _ := createOffers(t, s, alice, 3)

	var first offers.ListReply
	err := s.service.List(&offers.ListArguments{
		AssetId: assetId,
		Count:   2,
	}, &first)
	require.NoError(t, err, "list")
	assert.Equal(t, 2, len(first.Offers), "wrong page size")
	assert.NotNil(t, first.Next, "missing cursor")

	var second offers.ListReply
	err = s.service.List(&offers.ListArguments{
		AssetId: assetId,
		After:   first.Next,
		Count:   2,
	}, &second)
	require.NoError(t, err, "list")
	assert.Equal(t, 1, len(second.Offers), "wrong page size")
	assert.NotNil(t, second.Next, "missing cursor")

	// the page after the last offer is empty
	var last offers.ListReply
	err = s.service.List(&offers.ListArguments{
		AssetId: assetId,
		After:   second.Next,
		Count:   2,
	}, &last)
	require.NoError(t, err, "list")
	assert.Equal(t, 0, len(last.Offers), "wrong page size")
	assert.Nil(t, last.Next, "unexpected cursor")

	// no id is repeated across the pages
	seen := make(map[record.OfferIdentifier]struct{})
	for _, entry := range append(first.Offers, second.Offers...) {
		_, ok := seen[entry.Id]
		assert.False(t, ok, "duplicate entry")
		seen[entry.Id] = struct{}{}
		assert.Equal(t, record.OfferOpen, entry.Offer.Status, "wrong status")
	}
}

func TestListSkipsClosed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, false)
	defer s.teardown()

	alice := makeAccount(0x11)
	assetId, offerIds := createOffers(t, s, alice, 3)

	err := s.engine.CancelOffer(alice, offerIds[1])
	require.NoError(t, err, "cancel")

	var reply offers.ListReply
	err = s.service.List(&offers.ListArguments{
		AssetId: assetId,
		Count:   10,
	}, &reply)
	require.NoError(t, err, "list")
	assert.Equal(t, 2, len(reply.Offers), "wrong page size")
	for _, entry := range reply.Offers {
		assert.NotEqual(t, offerIds[1], entry.Id, "closed offer listed")
	}
}

func TestListBadCount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, false)
	defer s.teardown()

	alice := makeAccount(0x11)
	assetId, _ := createOffers(t, s, alice, 1)

	var reply offers.ListReply
	err := s.service.List(&offers.ListArguments{
		AssetId: assetId,
		Count:   0,
	}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "wrong error")

	err = s.service.List(&offers.ListArguments{
		AssetId: assetId,
		Count:   offers.MaximumOfferCount + 1,
	}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "wrong error")
}

func TestCancel(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, false)
	defer s.teardown()

	alice := makeAccount(0x11)
	bob := makeAccount(0x22)
	_, offerIds := createOffers(t, s, alice, 1)

	var reply offers.CancelReply
	err := s.service.Cancel(&offers.CancelArguments{
		Seller:  bob,
		OfferId: offerIds[0],
	}, &reply)
	assert.Equal(t, fault.NotOfferSeller, err, "wrong error")

	err = s.service.Cancel(&offers.CancelArguments{
		Seller:  alice,
		OfferId: offerIds[0],
	}, &reply)
	require.NoError(t, err, "cancel")
	assert.Equal(t, record.OfferCancelled, reply.Status, "wrong status")
	assert.Equal(t, uint64(10), reply.UnitsReleased, "wrong released units")

	err = s.service.Cancel(&offers.CancelArguments{
		Seller:  alice,
		OfferId: offerIds[0],
	}, &reply)
	assert.Equal(t, fault.OfferNotOpen, err, "wrong error")
}

func TestCancelWhenReadOnly(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := setup(t, true)
	defer s.teardown()

	var reply offers.CancelReply
	err := s.service.Cancel(&offers.CancelArguments{
		Seller:  makeAccount(0x11),
		OfferId: record.OfferIdentifier{},
	}, &reply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "wrong error")
}
