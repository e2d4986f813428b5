// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/storage"
)

// elements per cursor fetch when summing or listing
const fetchBatchSize = 100

// Ledger - the unit holdings of every account, per asset
//
// a holding that was never credited reads as zero, a holding debited
// back to zero is removed from the store and reads as zero again
type Ledger struct {
	store *storage.Store
}

// New - create a ledger over a store
func New(store *storage.Store) *Ledger {
	return &Ledger{
		store: store,
	}
}

// holdings are keyed by asset then owner
func holdingKey(assetId record.AssetIdentifier, owner *account.Account) []byte {
	return append(assetId[:], owner.Bytes()...)
}

// the owner index is keyed by owner then asset
func ownerKey(owner *account.Account, assetId record.AssetIdentifier) []byte {
	return append(owner.Bytes(), assetId[:]...)
}

// Holding - read a holding inside a transaction, staged changes included
func (l *Ledger) Holding(trx storage.Transaction, assetId record.AssetIdentifier, owner *account.Account) (record.Holding, error) {
	packed := trx.Get(l.store.Pool.Holdings, holdingKey(assetId, owner))
	if nil == packed {
		return record.Holding{}, nil
	}
	return record.PackedHolding(packed).Unpack()
}

// Read - read a holding from committed records only
func (l *Ledger) Read(assetId record.AssetIdentifier, owner *account.Account) (record.Holding, error) {
	packed := l.store.Pool.Holdings.Get(holdingKey(assetId, owner))
	if nil == packed {
		return record.Holding{}, nil
	}
	return record.PackedHolding(packed).Unpack()
}

// Credit - stage the addition of units to a holding
func (l *Ledger) Credit(trx storage.Transaction, assetId record.AssetIdentifier, owner *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}

	holding, err := l.Holding(trx, assetId, owner)
	if nil != err {
		return err
	}

	holding.Units += amount
	trx.Put(l.store.Pool.Holdings, holdingKey(assetId, owner), holding.Pack())
	trx.Put(l.store.Pool.OwnerAssets, ownerKey(owner, assetId), []byte{})

	return nil
}

// Debit - stage the removal of units from a holding
//
// only the unlocked part of the holding can be debited
func (l *Ledger) Debit(trx storage.Transaction, assetId record.AssetIdentifier, owner *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}

	holding, err := l.Holding(trx, assetId, owner)
	if nil != err {
		return err
	}
	if amount > holding.Unlocked() {
		return fault.InsufficientUnits
	}

	holding.Units -= amount
	if 0 == holding.Units {
		trx.Delete(l.store.Pool.Holdings, holdingKey(assetId, owner))
		trx.Delete(l.store.Pool.OwnerAssets, ownerKey(owner, assetId))
	} else {
		trx.Put(l.store.Pool.Holdings, holdingKey(assetId, owner), holding.Pack())
	}

	return nil
}

// Lock - stage the reservation of unlocked units
func (l *Ledger) Lock(trx storage.Transaction, assetId record.AssetIdentifier, owner *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}

	holding, err := l.Holding(trx, assetId, owner)
	if nil != err {
		return err
	}
	if amount > holding.Unlocked() {
		return fault.InsufficientUnlockedUnits
	}

	holding.LockedUnits += amount
	trx.Put(l.store.Pool.Holdings, holdingKey(assetId, owner), holding.Pack())

	return nil
}

// Unlock - stage the release of locked units
func (l *Ledger) Unlock(trx storage.Transaction, assetId record.AssetIdentifier, owner *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}

	holding, err := l.Holding(trx, assetId, owner)
	if nil != err {
		return err
	}
	if amount > holding.LockedUnits {
		return fault.InvalidUnlock
	}

	holding.LockedUnits -= amount
	trx.Put(l.store.Pool.Holdings, holdingKey(assetId, owner), holding.Pack())

	return nil
}

// TotalHeld - sum of all committed holdings of one asset
func (l *Ledger) TotalHeld(assetId record.AssetIdentifier) (uint64, error) {

	sum := uint64(0)
	cursor := l.store.Pool.Holdings.NewFetchCursor().Seek(assetId[:])

	for {
		elements, err := cursor.Fetch(fetchBatchSize)
		if nil != err {
			return 0, err
		}
		for _, e := range elements {
			if !bytes.HasPrefix(e.Key, assetId[:]) {
				return sum, nil
			}
			holding, err := record.PackedHolding(e.Value).Unpack()
			if nil != err {
				return 0, err
			}
			sum += holding.Units
		}
		if len(elements) < fetchBatchSize {
			return sum, nil
		}
	}
}

// HolderEntry - one account's committed holding of an asset
type HolderEntry struct {
	Owner   *account.Account `json:"owner"`
	Holding record.Holding   `json:"holding"`
}

// Holders - list committed holdings of one asset in account order
//
// pass the account bytes of the last entry as after, or nil to start
// from the beginning; the second return is the paging position
func (l *Ledger) Holders(assetId record.AssetIdentifier, after []byte, count int) ([]HolderEntry, []byte, error) {
	if count <= 0 {
		return nil, nil, fault.InvalidCount
	}

	start := assetId[:]
	skip := false
	if nil != after {
		start = append(assetId[:], after...)
		skip = true // the seek position is included in the fetch
	}

	cursor := l.store.Pool.Holdings.NewFetchCursor().Seek(start)

	entries := make([]HolderEntry, 0, count)
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

			owner, err := account.AccountFromBytes(e.Key[record.AssetIdentifierLength:])
			if nil != err {
				return nil, nil, err
			}
			holding, err := record.PackedHolding(e.Value).Unpack()
			if nil != err {
				return nil, nil, err
			}
			entries = append(entries, HolderEntry{
				Owner:   owner,
				Holding: holding,
			})
			next = e.Key[record.AssetIdentifierLength:]
		}
		if len(elements) < fetchBatchSize {
			break fetching
		}
	}
	return entries, next, nil
}

// OwnedAssets - list the assets an account has committed units in
//
// pass the last identifier of the previous page as after, or nil to
// start from the beginning; the second return is the paging position
func (l *Ledger) OwnedAssets(owner *account.Account, after []byte, count int) ([]record.AssetIdentifier, []byte, error) {
	if count <= 0 {
		return nil, nil, fault.InvalidCount
	}

	prefix := owner.Bytes()
	start := prefix
	skip := false
	if nil != after {
		start = append(prefix, after...)
		skip = true
	}

	cursor := l.store.Pool.OwnerAssets.NewFetchCursor().Seek(start)

	assetIds := make([]record.AssetIdentifier, 0, count)
	var next []byte

fetching:
	for len(assetIds) < count {
		elements, err := cursor.Fetch(fetchBatchSize)
		if nil != err {
			return nil, nil, err
		}
		for _, e := range elements {
			if !bytes.HasPrefix(e.Key, prefix) {
				break fetching
			}
			if skip && bytes.Equal(start, e.Key) {
				skip = false
				continue
			}
			if len(assetIds) >= count {
				break fetching
			}

			var assetId record.AssetIdentifier
			err = record.AssetIdentifierFromBytes(&assetId, e.Key[len(prefix):])
			if nil != err {
				return nil, nil, err
			}
			assetIds = append(assetIds, assetId)
			next = e.Key[len(prefix):]
		}
		if len(elements) < fetchBatchSize {
			break fetching
		}
	}
	return assetIds, next, nil
}
