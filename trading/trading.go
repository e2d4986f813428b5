// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trading - the operations that change the ledger
//
// every operation stages its mutations in one store transaction and
// commits only after all checks, and for purchases the payment, have
// succeeded; a failure aborts the staging so readers never see a
// partial operation
package trading

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/payment"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/storage"
)

// Engine - serialises all mutating operations over one store
type Engine struct {
	sync.Mutex

	log      *logger.L
	store    *storage.Store
	registry *registry.Registry
	ledger   *ledger.Ledger
	book     *offerbook.Book
	payer    payment.Payer
	notifier Notifier
}

// New - create an engine over its collaborators
//
// notifier may be nil if nothing wants events
func New(store *storage.Store, r *registry.Registry, l *ledger.Ledger, b *offerbook.Book, payer payment.Payer, notifier Notifier) *Engine {
	return &Engine{
		log:      logger.New("trading"),
		store:    store,
		registry: r,
		ledger:   l,
		book:     b,
		payer:    payer,
		notifier: notifier,
	}
}

func (e *Engine) notify(event Event) {
	if nil != e.notifier {
		e.notifier.Notify(event)
	}
}

// CreateAsset - register a new asset and credit all its units to the creator
func (e *Engine) CreateAsset(creator *account.Account, metadata string, totalUnits uint64) (record.AssetIdentifier, error) {
	e.Lock()
	defer e.Unlock()

	trx, err := e.store.NewDBTransaction()
	if nil != err {
		return record.AssetIdentifier{}, err
	}

	assetId, err := e.registry.Create(trx, creator, metadata, totalUnits)
	if nil != err {
		trx.Abort()
		return assetId, err
	}

	err = e.ledger.Credit(trx, assetId, creator, totalUnits)
	if nil != err {
		trx.Abort()
		return assetId, err
	}

	err = trx.Commit()
	logger.PanicIfError("trading: create asset commit", err)

	e.log.Infof("created asset: %s  units: %d  creator: %s", assetId, totalUnits, creator)
	e.notify(Event{
		Kind:    AssetCreated,
		AssetId: assetId,
		From:    creator,
		Units:   totalUnits,
	})
	return assetId, nil
}

// OfferShares - put part of a holding up for sale at a fixed unit price
func (e *Engine) OfferShares(seller *account.Account, assetId record.AssetIdentifier, units uint64, unitPrice uint64) (record.OfferIdentifier, error) {
	e.Lock()
	defer e.Unlock()

	trx, err := e.store.NewDBTransaction()
	if nil != err {
		return record.OfferIdentifier{}, err
	}

	asset, err := e.registry.Get(trx, assetId)
	if nil != err {
		trx.Abort()
		return record.OfferIdentifier{}, err
	}
	if record.AssetActive != asset.Status {
		trx.Abort()
		return record.OfferIdentifier{}, fault.AssetAlreadyClaimed
	}
	if 0 == units {
		trx.Abort()
		return record.OfferIdentifier{}, fault.InvalidAmount
	}

	offerId, err := e.book.Open(trx, assetId, seller, units, unitPrice)
	if nil != err {
		trx.Abort()
		return record.OfferIdentifier{}, err
	}

	err = trx.Commit()
	logger.PanicIfError("trading: offer shares commit", err)

	e.log.Infof("opened offer: %s  asset: %s  units: %d  price: %d  seller: %s", offerId, assetId, units, unitPrice, seller)
	e.notify(Event{
		Kind:    SharesOffered,
		AssetId: assetId,
		OfferId: offerId,
		From:    seller,
		Units:   units,
		Price:   unitPrice,
	})
	return offerId, nil
}

// TransferShares - move units directly between two accounts
//
// a transfer to the sending account validates and changes nothing
func (e *Engine) TransferShares(sender *account.Account, recipient *account.Account, assetId record.AssetIdentifier, units uint64) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.store.NewDBTransaction()
	if nil != err {
		return err
	}

	asset, err := e.registry.Get(trx, assetId)
	if nil != err {
		trx.Abort()
		return err
	}
	if record.AssetActive != asset.Status {
		trx.Abort()
		return fault.AssetAlreadyClaimed
	}
	if 0 == units {
		trx.Abort()
		return fault.InvalidAmount
	}

	err = e.ledger.Debit(trx, assetId, sender, units)
	if nil != err {
		trx.Abort()
		return err
	}
	err = e.ledger.Credit(trx, assetId, recipient, units)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	logger.PanicIfError("trading: transfer shares commit", err)

	e.log.Infof("transferred: %d units of: %s  from: %s  to: %s", units, assetId, sender, recipient)
	e.notify(Event{
		Kind:    SharesTransferred,
		AssetId: assetId,
		From:    sender,
		To:      recipient,
		Units:   units,
	})
	return nil
}

// BuyShares - settle part of an open offer and pay its seller
//
// the buyer pays units times the offer's unit price through the
// external payer; a refused payment aborts the whole purchase, and
// the unit movement only becomes readable after the payment succeeded
func (e *Engine) BuyShares(buyer *account.Account, offerId record.OfferIdentifier, units uint64) error {
	if 0 == units {
		return fault.InvalidAmount
	}

	e.Lock()
	defer e.Unlock()

	trx, err := e.store.NewDBTransaction()
	if nil != err {
		return err
	}

	offer, err := e.book.Get(trx, offerId)
	if nil != err {
		trx.Abort()
		return err
	}

	asset, err := e.registry.Get(trx, offer.AssetId)
	if nil != err {
		trx.Abort()
		return err
	}
	if record.AssetActive != asset.Status {
		trx.Abort()
		return fault.AssetAlreadyClaimed
	}

	offer, err = e.book.Settle(trx, offerId, units)
	if nil != err {
		trx.Abort()
		return err
	}
	seller := offer.Seller

	// the sold units stop being escrow and change hands
	err = e.ledger.Unlock(trx, offer.AssetId, seller, units)
	if nil != err {
		trx.Abort()
		return err
	}
	err = e.ledger.Debit(trx, offer.AssetId, seller, units)
	if nil != err {
		trx.Abort()
		return err
	}
	err = e.ledger.Credit(trx, offer.AssetId, buyer, units)
	if nil != err {
		trx.Abort()
		return err
	}

	totalPrice := units * offer.UnitPrice
	if 0 != offer.UnitPrice && totalPrice/offer.UnitPrice != units {
		trx.Abort()
		return fault.TotalPriceOverflow
	}

	err = e.payer.Pay(buyer, seller, totalPrice)
	if nil != err {
		trx.Abort()
		e.log.Warnf("payment refused: offer: %s  buyer: %s  amount: %d  error: %s", offerId, buyer, totalPrice, err)
		return fault.PaymentFailed
	}

	err = trx.Commit()
	logger.PanicIfError("trading: buy shares commit", err)

	e.log.Infof("settled offer: %s  units: %d  paid: %d  buyer: %s  seller: %s", offerId, units, totalPrice, buyer, seller)
	e.notify(Event{
		Kind:    OfferSettled,
		AssetId: offer.AssetId,
		OfferId: offerId,
		From:    buyer,
		To:      seller,
		Units:   units,
		Price:   totalPrice,
	})
	return nil
}

// CancelOffer - close an open offer and release its remaining units
//
// works even after the asset is claimed, so sellers can always
// recover their escrow
func (e *Engine) CancelOffer(seller *account.Account, offerId record.OfferIdentifier) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.store.NewDBTransaction()
	if nil != err {
		return err
	}

	offer, err := e.book.Cancel(trx, offerId, seller)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	logger.PanicIfError("trading: cancel offer commit", err)

	e.log.Infof("cancelled offer: %s  unsold: %d  seller: %s", offerId, offer.UnitsRemaining, seller)
	e.notify(Event{
		Kind:    OfferCancelled,
		AssetId: offer.AssetId,
		OfferId: offerId,
		From:    seller,
		Units:   offer.UnitsRemaining,
	})
	return nil
}

// ClaimOwnership - take exclusive ownership of a fully held asset
//
// requires the claimant to hold every unit of the asset, locked units
// included; once claimed no further trading can touch the asset
func (e *Engine) ClaimOwnership(claimant *account.Account, assetId record.AssetIdentifier) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.store.NewDBTransaction()
	if nil != err {
		return err
	}

	asset, err := e.registry.Get(trx, assetId)
	if nil != err {
		trx.Abort()
		return err
	}
	if record.AssetActive != asset.Status {
		trx.Abort()
		return fault.AssetAlreadyClaimed
	}

	holding, err := e.ledger.Holding(trx, assetId, claimant)
	if nil != err {
		trx.Abort()
		return err
	}
	if holding.Units != asset.TotalUnits {
		trx.Abort()
		return fault.InsufficientOwnership
	}

	_, err = e.registry.MarkClaimed(trx, assetId)
	if nil != err {
		trx.Abort()
		return err
	}

	err = trx.Commit()
	logger.PanicIfError("trading: claim ownership commit", err)

	e.log.Infof("claimed asset: %s  owner: %s", assetId, claimant)
	e.notify(Event{
		Kind:    OwnershipClaimed,
		AssetId: assetId,
		From:    claimant,
		Units:   asset.TotalUnits,
	})
	return nil
}

// Audit - check conservation for every Active asset
//
// the sum of all holdings of an Active asset must equal its total
// units; the first violation found is returned
func (e *Engine) Audit() error {
	e.Lock()
	defer e.Unlock()

	var after []byte
	for {
		entries, next, err := e.registry.Scan(after, 100)
		if nil != err {
			return err
		}
		if 0 == len(entries) {
			return nil
		}
		for _, entry := range entries {
			if record.AssetActive != entry.Asset.Status {
				continue
			}
			sum, err := e.ledger.TotalHeld(entry.Id)
			if nil != err {
				return err
			}
			if sum != entry.Asset.TotalUnits {
				e.log.Criticalf("audit: asset: %s  holdings: %d  total units: %d", entry.Id, sum, entry.Asset.TotalUnits)
				return fault.HoldingsOutOfBalance
			}
		}
		after = next
	}
}
