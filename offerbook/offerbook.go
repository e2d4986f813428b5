// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offerbook

import (
	"bytes"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/storage"
)

// elements per cursor fetch when listing
const fetchBatchSize = 100

// Book - the standing sell offers over one store
//
// opening an offer locks the offered units in the ledger, closing one
// releases whatever is still locked; settled units are unlocked and
// moved by the caller, not here
type Book struct {
	store  *storage.Store
	ledger *ledger.Ledger
}

// New - create an offer book over a store
func New(store *storage.Store, lgr *ledger.Ledger) *Book {
	return &Book{
		store:  store,
		ledger: lgr,
	}
}

// index key of an open offer under its asset
func assetOfferKey(assetId record.AssetIdentifier, offerId record.OfferIdentifier) []byte {
	return append(assetId[:], offerId[:]...)
}

// Open - stage a new offer, locking the offered units first
//
// a lock failure propagates and nothing is staged
func (b *Book) Open(trx storage.Transaction, assetId record.AssetIdentifier, seller *account.Account, units uint64, unitPrice uint64) (record.OfferIdentifier, error) {

	err := b.ledger.Lock(trx, assetId, seller, units)
	if nil != err {
		return record.OfferIdentifier{}, err
	}

	// each seller has a private offer sequence, so identifiers are
	// never reused even after offers close
	sequence, _ := trx.GetN(b.store.Pool.OfferCounts, seller.Bytes())
	sequence += 1
	trx.PutN(b.store.Pool.OfferCounts, seller.Bytes(), sequence)

	offerId := record.NewOfferIdentifier(assetId, seller.Bytes(), sequence)

	offer := record.Offer{
		AssetId:        assetId,
		Seller:         seller,
		UnitPrice:      unitPrice,
		UnitsRemaining: units,
		Status:         record.OfferOpen,
	}
	trx.Put(b.store.Pool.Offers, offerId[:], offer.Pack())
	trx.Put(b.store.Pool.AssetOffers, assetOfferKey(assetId, offerId), []byte{})

	return offerId, nil
}

// Get - read an offer inside a transaction, staged changes included
func (b *Book) Get(trx storage.Transaction, offerId record.OfferIdentifier) (*record.Offer, error) {
	packed := trx.Get(b.store.Pool.Offers, offerId[:])
	if nil == packed {
		return nil, fault.OfferNotFound
	}
	return record.PackedOffer(packed).Unpack()
}

// Read - read an offer from committed records only
func (b *Book) Read(offerId record.OfferIdentifier) (*record.Offer, error) {
	packed := b.store.Pool.Offers.Get(offerId[:])
	if nil == packed {
		return nil, fault.OfferNotFound
	}
	return record.PackedOffer(packed).Unpack()
}

// Settle - stage the sale of part of an open offer
//
// decrements the remaining units, marking the offer Filled when they
// reach zero; returns the offer after the decrement so the caller can
// move the units and charge the price
func (b *Book) Settle(trx storage.Transaction, offerId record.OfferIdentifier, amount uint64) (*record.Offer, error) {

	offer, err := b.Get(trx, offerId)
	if nil != err {
		return nil, err
	}
	if record.OfferOpen != offer.Status {
		return nil, fault.OfferNotOpen
	}
	if amount > offer.UnitsRemaining {
		return nil, fault.ExceedsRemaining
	}

	offer.UnitsRemaining -= amount
	if 0 == offer.UnitsRemaining {
		offer.Status = record.OfferFilled
		trx.Delete(b.store.Pool.AssetOffers, assetOfferKey(offer.AssetId, offerId))
	}
	trx.Put(b.store.Pool.Offers, offerId[:], offer.Pack())

	return offer, nil
}

// Cancel - stage the close of an open offer by its seller
//
// the units still remaining are unlocked; this works even after the
// asset is claimed, so a seller is never stuck with locked units
func (b *Book) Cancel(trx storage.Transaction, offerId record.OfferIdentifier, requester *account.Account) (*record.Offer, error) {

	offer, err := b.Get(trx, offerId)
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(offer.Seller.Bytes(), requester.Bytes()) {
		return nil, fault.NotOfferSeller
	}
	if record.OfferOpen != offer.Status {
		return nil, fault.OfferNotOpen
	}

	err = b.ledger.Unlock(trx, offer.AssetId, offer.Seller, offer.UnitsRemaining)
	if nil != err {
		return nil, err
	}

	offer.Status = record.OfferCancelled
	trx.Delete(b.store.Pool.AssetOffers, assetOfferKey(offer.AssetId, offerId))
	trx.Put(b.store.Pool.Offers, offerId[:], offer.Pack())

	return offer, nil
}

// Entry - one open offer returned by OpenOffers
type Entry struct {
	Id    record.OfferIdentifier `json:"id"`
	Offer *record.Offer          `json:"offer"`
}

// OpenOffers - list the committed open offers of one asset
//
// pass the last identifier of the previous page as after, or nil to
// start from the beginning; the second return is the paging position
func (b *Book) OpenOffers(assetId record.AssetIdentifier, after []byte, count int) ([]Entry, []byte, error) {
	if count <= 0 {
		return nil, nil, fault.InvalidCount
	}

	start := assetId[:]
	skip := false
	if nil != after {
		start = append(assetId[:], after...)
		skip = true // the seek position is included in the fetch
	}

	cursor := b.store.Pool.AssetOffers.NewFetchCursor().Seek(start)

	entries := make([]Entry, 0, count)
	var next []byte

fetching:
	for len(entries) < count {
		elements, err := cursor.Fetch(fetchBatchSize)
		if nil != err {
			return nil, nil, err
		}
		for _, e := range elements {
			if !bytes.HasPrefix(e.Key, assetId[:]) {
				break fetching
			}
			if skip && bytes.Equal(start, e.Key) {
				skip = false
				continue
			}
			if len(entries) >= count {
				break fetching
			}

			var offerId record.OfferIdentifier
			err = record.OfferIdentifierFromBytes(&offerId, e.Key[record.AssetIdentifierLength:])
			if nil != err {
				return nil, nil, err
			}
			offer, err := b.Read(offerId)
			if nil != err {
				return nil, nil, err
			}
			entries = append(entries, Entry{
				Id:    offerId,
				Offer: offer,
			})
			next = e.Key[record.AssetIdentifierLength:]
		}
		if len(elements) < fetchBatchSize {
			break fetching
		}
	}
	return entries, next, nil
}
