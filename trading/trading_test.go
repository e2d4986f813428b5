// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading_test

import (
	"errors"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/payment"
	"github.com/bitmark-inc/proportiond/payment/mocks"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/storage"
	"github.com/bitmark-inc/proportiond/trading"
)

const (
	databaseFileName = "trading-test"
	testingDirName   = "testing"
)

func removeDataFiles() {
	os.RemoveAll(databaseFileName + "-ledger.leveldb")
	os.RemoveAll(databaseFileName + "-funds.leveldb")
}

func setupTestLogger() {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

// build a test account from a fill byte
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

// record every event the engine emits
type eventRecorder struct {
	events []trading.Event
}

func (r *eventRecorder) Notify(event trading.Event) {
	r.events = append(r.events, event)
}

type testRig struct {
	store    *storage.Store
	registry *registry.Registry
	ledger   *ledger.Ledger
	book     *offerbook.Book
	events   *eventRecorder
	engine   *trading.Engine
}

// build an engine over a fresh store
//
// a nil payer selects the automatic payer
func setup(t *testing.T, payer payment.Payer) *testRig {
	removeDataFiles()
	store, err := storage.Initialise(databaseFileName, false)
	require.NoError(t, err, "storage initialise")

	if nil == payer {
		payer = &payment.AutoPayer{}
	}

	r := registry.New(store)
	l := ledger.New(store)
	b := offerbook.New(store, l)
	events := &eventRecorder{}

	return &testRig{
		store:    store,
		registry: r,
		ledger:   l,
		book:     b,
		events:   events,
		engine:   trading.New(store, r, l, b, payer, events),
	}
}

func (rig *testRig) teardown() {
	rig.store.Finalise()
	removeDataFiles()
}

// assert a holding read from committed records
func checkHolding(t *testing.T, rig *testRig, assetId record.AssetIdentifier, owner *account.Account, units uint64, locked uint64) {
	holding, err := rig.ledger.Read(assetId, owner)
	require.NoError(t, err, "read holding")
	assert.Equal(t, units, holding.Units, "held units")
	assert.Equal(t, locked, holding.LockedUnits, "locked units")
}

func TestCreateAsset(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	metadata := "mill building 4, floor plan rev 2"

	assetId, err := rig.engine.CreateAsset(alice, metadata, 1000)
	require.NoError(t, err, "create asset")
	assert.Equal(t, record.NewAssetIdentifier([]byte(metadata)), assetId, "derived identifier")

	asset, err := rig.registry.Read(assetId)
	require.NoError(t, err, "read asset")
	assert.Equal(t, uint64(1000), asset.TotalUnits, "total units")
	assert.Equal(t, record.AssetActive, asset.Status, "status")
	assert.Equal(t, alice.String(), asset.Creator.String(), "creator")
	assert.Equal(t, metadata, asset.Metadata, "metadata")

	checkHolding(t, rig, assetId, alice, 1000, 0)

	// the identifier is bound to the metadata and cannot recur
	_, err = rig.engine.CreateAsset(makeAccount(0xb2), metadata, 50)
	assert.Equal(t, fault.AssetAlreadyExists, err, "duplicate metadata")
	assert.True(t, fault.IsErrExists(err), "error class")

	_, err = rig.engine.CreateAsset(alice, "zero unit asset", 0)
	assert.Equal(t, fault.InvalidDenomination, err, "zero units")

	require.Equal(t, 1, len(rig.events.events), "event count")
	event := rig.events.events[0]
	assert.Equal(t, trading.AssetCreated, event.Kind, "event kind")
	assert.Equal(t, assetId, event.AssetId, "event asset")
	assert.Equal(t, alice.String(), event.From.String(), "event creator")
	assert.Equal(t, uint64(1000), event.Units, "event units")
}

// walk an asset from creation through a fully settled offer
func TestLifecycle(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	payer, err := payment.NewPayer(payment.ModeBalances, rig.store)
	require.NoError(t, err, "balances payer")
	rig.engine = trading.New(rig.store, rig.registry, rig.ledger, rig.book, payer, rig.events)

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)
	err = payment.Seed(rig.store, map[string]uint64{
		bob.String(): 1000,
	})
	require.NoError(t, err, "seed balances")

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 1000)
	require.NoError(t, err, "create asset")

	offerId, err := rig.engine.OfferShares(alice, assetId, 400, 2)
	require.NoError(t, err, "offer shares")
	checkHolding(t, rig, assetId, alice, 1000, 400)

	offer, err := rig.book.Read(offerId)
	require.NoError(t, err, "read offer")
	assert.Equal(t, uint64(2), offer.UnitPrice, "unit price")
	assert.Equal(t, uint64(400), offer.UnitsRemaining, "units remaining")
	assert.Equal(t, record.OfferOpen, offer.Status, "offer status")
	assert.Equal(t, alice.String(), offer.Seller.String(), "seller")

	// partial settlement moves units and money together
	err = rig.engine.BuyShares(bob, offerId, 300)
	require.NoError(t, err, "buy 300")
	checkHolding(t, rig, assetId, alice, 700, 100)
	checkHolding(t, rig, assetId, bob, 300, 0)

	offer, err = rig.book.Read(offerId)
	require.NoError(t, err, "read offer")
	assert.Equal(t, uint64(100), offer.UnitsRemaining, "units remaining")
	assert.Equal(t, record.OfferOpen, offer.Status, "offer status")

	assert.Equal(t, uint64(400), payment.Balance(rig.store, bob), "buyer balance")
	assert.Equal(t, uint64(600), payment.Balance(rig.store, alice), "seller balance")

	// settling the remainder closes the offer
	err = rig.engine.BuyShares(bob, offerId, 100)
	require.NoError(t, err, "buy remainder")
	checkHolding(t, rig, assetId, alice, 600, 0)
	checkHolding(t, rig, assetId, bob, 400, 0)

	offer, err = rig.book.Read(offerId)
	require.NoError(t, err, "read offer")
	assert.Equal(t, uint64(0), offer.UnitsRemaining, "units remaining")
	assert.Equal(t, record.OfferFilled, offer.Status, "offer status")

	assert.Equal(t, uint64(200), payment.Balance(rig.store, bob), "buyer balance")
	assert.Equal(t, uint64(800), payment.Balance(rig.store, alice), "seller balance")

	err = rig.engine.BuyShares(bob, offerId, 1)
	assert.Equal(t, fault.OfferNotOpen, err, "buy from filled offer")
	assert.True(t, fault.IsErrProcess(err), "error class")

	kinds := []trading.Kind{}
	for _, event := range rig.events.events {
		kinds = append(kinds, event.Kind)
	}
	assert.Equal(t, []trading.Kind{
		trading.AssetCreated,
		trading.SharesOffered,
		trading.OfferSettled,
		trading.OfferSettled,
	}, kinds, "event sequence")
	assert.Equal(t, uint64(600), rig.events.events[2].Price, "first settlement total")
	assert.Equal(t, uint64(200), rig.events.events[3].Price, "second settlement total")
	assert.Equal(t, bob.String(), rig.events.events[2].From.String(), "settlement buyer")
	assert.Equal(t, alice.String(), rig.events.events[2].To.String(), "settlement seller")
}

func TestBuyValidation(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 1000)
	require.NoError(t, err, "create asset")
	offerId, err := rig.engine.OfferShares(alice, assetId, 400, 2)
	require.NoError(t, err, "offer shares")

	err = rig.engine.BuyShares(bob, offerId, 0)
	assert.Equal(t, fault.InvalidAmount, err, "zero units")

	err = rig.engine.BuyShares(bob, record.OfferIdentifier{}, 5)
	assert.Equal(t, fault.OfferNotFound, err, "unknown offer")
	assert.True(t, fault.IsErrNotFound(err), "error class")

	err = rig.engine.BuyShares(bob, offerId, 401)
	assert.Equal(t, fault.ExceedsRemaining, err, "over remaining")

	// nothing moved
	checkHolding(t, rig, assetId, alice, 1000, 400)
	checkHolding(t, rig, assetId, bob, 0, 0)
}

// a seller buying from their own offer keeps units and money in place
func TestBuyOwnOffer(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	payer, err := payment.NewPayer(payment.ModeBalances, rig.store)
	require.NoError(t, err, "balances payer")
	rig.engine = trading.New(rig.store, rig.registry, rig.ledger, rig.book, payer, rig.events)

	alice := makeAccount(0xa1)
	err = payment.Seed(rig.store, map[string]uint64{
		alice.String(): 500,
	})
	require.NoError(t, err, "seed balances")

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 1000)
	require.NoError(t, err, "create asset")
	offerId, err := rig.engine.OfferShares(alice, assetId, 400, 2)
	require.NoError(t, err, "offer shares")

	err = rig.engine.BuyShares(alice, offerId, 100)
	require.NoError(t, err, "buy own offer")

	checkHolding(t, rig, assetId, alice, 1000, 300)
	assert.Equal(t, uint64(500), payment.Balance(rig.store, alice), "balance unchanged")

	offer, err := rig.book.Read(offerId)
	require.NoError(t, err, "read offer")
	assert.Equal(t, uint64(300), offer.UnitsRemaining, "units remaining")
}

// a refused payment must leave no trace of the purchase
func TestBuyPaymentRefused(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	payer := mocks.NewMockPayer(ctl)

	rig := setup(t, payer)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 1000)
	require.NoError(t, err, "create asset")
	offerId, err := rig.engine.OfferShares(alice, assetId, 400, 2)
	require.NoError(t, err, "offer shares")

	gomock.InOrder(
		payer.EXPECT().Pay(bob, alice, uint64(600)).Return(errors.New("connection lost")).Times(1),
		payer.EXPECT().Pay(bob, alice, uint64(600)).Return(nil).Times(1),
	)

	err = rig.engine.BuyShares(bob, offerId, 300)
	assert.Equal(t, fault.PaymentFailed, err, "refused payment")
	assert.True(t, fault.IsErrProcess(err), "error class")

	// the staged settlement was discarded
	checkHolding(t, rig, assetId, alice, 1000, 400)
	checkHolding(t, rig, assetId, bob, 0, 0)
	offer, err := rig.book.Read(offerId)
	require.NoError(t, err, "read offer")
	assert.Equal(t, uint64(400), offer.UnitsRemaining, "units remaining")
	assert.Equal(t, record.OfferOpen, offer.Status, "offer status")

	// the same purchase goes through once the payer accepts
	err = rig.engine.BuyShares(bob, offerId, 300)
	require.NoError(t, err, "retried purchase")
	checkHolding(t, rig, assetId, alice, 700, 100)
	checkHolding(t, rig, assetId, bob, 300, 0)
}

func TestTotalPriceOverflow(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 8)
	require.NoError(t, err, "create asset")

	unitPrice := uint64(1) << 63
	offerId, err := rig.engine.OfferShares(alice, assetId, 4, unitPrice)
	require.NoError(t, err, "offer shares")

	err = rig.engine.BuyShares(bob, offerId, 3)
	assert.Equal(t, fault.TotalPriceOverflow, err, "price wraps")
	checkHolding(t, rig, assetId, bob, 0, 0)

	// one unit still fits the currency range
	err = rig.engine.BuyShares(bob, offerId, 1)
	require.NoError(t, err, "affordable quantity")
	checkHolding(t, rig, assetId, bob, 1, 0)
}

func TestTransferShares(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)
	carol := makeAccount(0xc3)

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 1000)
	require.NoError(t, err, "create asset")

	err = rig.engine.TransferShares(alice, bob, assetId, 250)
	require.NoError(t, err, "transfer")
	checkHolding(t, rig, assetId, alice, 750, 0)
	checkHolding(t, rig, assetId, bob, 250, 0)

	err = rig.engine.TransferShares(alice, bob, assetId, 0)
	assert.Equal(t, fault.InvalidAmount, err, "zero units")

	err = rig.engine.TransferShares(alice, bob, assetId, 800)
	assert.Equal(t, fault.InsufficientUnits, err, "over balance")

	err = rig.engine.TransferShares(carol, bob, assetId, 1)
	assert.Equal(t, fault.InsufficientUnits, err, "no holding")

	err = rig.engine.TransferShares(alice, bob, record.AssetIdentifier{}, 10)
	assert.Equal(t, fault.AssetNotFound, err, "unknown asset")

	// a transfer to the sender validates and changes nothing
	err = rig.engine.TransferShares(bob, bob, assetId, 100)
	require.NoError(t, err, "self transfer")
	checkHolding(t, rig, assetId, bob, 250, 0)

	// locked units cannot be transferred away
	_, err = rig.engine.OfferShares(alice, assetId, 700, 3)
	require.NoError(t, err, "offer shares")
	err = rig.engine.TransferShares(alice, carol, assetId, 100)
	assert.Equal(t, fault.InsufficientUnits, err, "locked excluded")
	err = rig.engine.TransferShares(alice, carol, assetId, 50)
	require.NoError(t, err, "unlocked remainder")
	checkHolding(t, rig, assetId, alice, 700, 700)
	checkHolding(t, rig, assetId, carol, 50, 0)
}

func TestClaimOwnership(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 1000)
	require.NoError(t, err, "create asset")
	err = rig.engine.TransferShares(alice, bob, assetId, 999)
	require.NoError(t, err, "transfer")

	// 999 of 1000 is not enough
	err = rig.engine.ClaimOwnership(bob, assetId)
	assert.Equal(t, fault.InsufficientOwnership, err, "partial holding")

	err = rig.engine.TransferShares(alice, bob, assetId, 1)
	require.NoError(t, err, "last unit")
	err = rig.engine.ClaimOwnership(bob, assetId)
	require.NoError(t, err, "complete holding")

	asset, err := rig.registry.Read(assetId)
	require.NoError(t, err, "read asset")
	assert.Equal(t, record.AssetClaimed, asset.Status, "status")

	// a claimed asset is closed to trading
	_, err = rig.engine.OfferShares(bob, assetId, 10, 1)
	assert.Equal(t, fault.AssetAlreadyClaimed, err, "offer after claim")
	err = rig.engine.TransferShares(bob, alice, assetId, 10)
	assert.Equal(t, fault.AssetAlreadyClaimed, err, "transfer after claim")
	err = rig.engine.ClaimOwnership(bob, assetId)
	assert.Equal(t, fault.AssetAlreadyClaimed, err, "second claim")

	last := rig.events.events[len(rig.events.events)-1]
	assert.Equal(t, trading.OwnershipClaimed, last.Kind, "event kind")
	assert.Equal(t, bob.String(), last.From.String(), "event claimant")
	assert.Equal(t, uint64(1000), last.Units, "event units")
}

// locked units still count towards a claim and the stranded offer
// can be cancelled afterwards
func TestClaimWithOpenOffer(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)

	assetId, err := rig.engine.CreateAsset(alice, "mill building 4", 500)
	require.NoError(t, err, "create asset")
	offerId, err := rig.engine.OfferShares(alice, assetId, 200, 7)
	require.NoError(t, err, "offer shares")

	err = rig.engine.ClaimOwnership(alice, assetId)
	require.NoError(t, err, "claim with lock")

	err = rig.engine.BuyShares(bob, offerId, 10)
	assert.Equal(t, fault.AssetAlreadyClaimed, err, "buy after claim")

	err = rig.engine.CancelOffer(bob, offerId)
	assert.Equal(t, fault.NotOfferSeller, err, "stranger cancel")

	// cancellation still works so the lock can be recovered
	err = rig.engine.CancelOffer(alice, offerId)
	require.NoError(t, err, "cancel after claim")
	checkHolding(t, rig, assetId, alice, 500, 0)

	offer, err := rig.book.Read(offerId)
	require.NoError(t, err, "read offer")
	assert.Equal(t, record.OfferCancelled, offer.Status, "offer status")
	assert.Equal(t, uint64(200), offer.UnitsRemaining, "unsold units")

	err = rig.engine.CancelOffer(alice, offerId)
	assert.Equal(t, fault.OfferNotOpen, err, "second cancel")

	last := rig.events.events[len(rig.events.events)-1]
	assert.Equal(t, trading.OfferCancelled, last.Kind, "event kind")
	assert.Equal(t, uint64(200), last.Units, "event units")
}

func TestNilNotifier(t *testing.T) {
	removeDataFiles()
	store, err := storage.Initialise(databaseFileName, false)
	require.NoError(t, err, "storage initialise")
	defer func() {
		store.Finalise()
		removeDataFiles()
	}()

	r := registry.New(store)
	l := ledger.New(store)
	b := offerbook.New(store, l)
	engine := trading.New(store, r, l, b, &payment.AutoPayer{}, nil)

	alice := makeAccount(0xa1)
	assetId, err := engine.CreateAsset(alice, "mill building 4", 100)
	require.NoError(t, err, "create asset")
	offerId, err := engine.OfferShares(alice, assetId, 40, 1)
	require.NoError(t, err, "offer shares")
	err = engine.BuyShares(makeAccount(0xb2), offerId, 40)
	require.NoError(t, err, "buy shares")
}

func TestAudit(t *testing.T) {
	rig := setup(t, nil)
	defer rig.teardown()

	alice := makeAccount(0xa1)
	bob := makeAccount(0xb2)
	carol := makeAccount(0xc3)

	assetOne, err := rig.engine.CreateAsset(alice, "mill building 4", 100)
	require.NoError(t, err, "create asset")
	assetTwo, err := rig.engine.CreateAsset(bob, "mill building 5", 50)
	require.NoError(t, err, "create asset")

	err = rig.engine.TransferShares(alice, bob, assetOne, 30)
	require.NoError(t, err, "transfer")

	require.NoError(t, rig.engine.Audit(), "clean audit")

	// claimed assets are outside the audit
	err = rig.engine.ClaimOwnership(bob, assetTwo)
	require.NoError(t, err, "claim")
	phantom := record.Holding{Units: 10}.Pack()
	rig.store.Pool.Holdings.Put(append(assetTwo[:], carol.Bytes()...), []byte(phantom))
	require.NoError(t, rig.engine.Audit(), "claimed asset skipped")

	// a phantom holding on an active asset breaks conservation
	rig.store.Pool.Holdings.Put(append(assetOne[:], carol.Bytes()...), []byte(phantom))
	err = rig.engine.Audit()
	assert.Equal(t, fault.HoldingsOutOfBalance, err, "broken conservation")
	assert.True(t, fault.IsErrRecord(err), "error class")
}
