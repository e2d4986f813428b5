// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"bytes"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/storage"
)

// Registry - the set of assets held by one store
type Registry struct {
	store *storage.Store
}

// New - create a registry over a store
func New(store *storage.Store) *Registry {
	return &Registry{
		store: store,
	}
}

// Create - stage a new asset record
//
// the identifier is derived from the metadata, so submitting the same
// metadata twice is rejected rather than silently making a second asset
func (r *Registry) Create(trx storage.Transaction, creator *account.Account, metadata string, totalUnits uint64) (record.AssetIdentifier, error) {

	assetId := record.NewAssetIdentifier([]byte(metadata))

	if 0 == totalUnits {
		return assetId, fault.InvalidDenomination
	}
	if len(metadata) > record.MaximumMetadataLength {
		return assetId, fault.MetadataTooLong
	}
	if trx.Has(r.store.Pool.Assets, assetId[:]) {
		return assetId, fault.AssetAlreadyExists
	}

	asset := record.Asset{
		TotalUnits: totalUnits,
		Status:     record.AssetActive,
		Creator:    creator,
		Metadata:   metadata,
	}
	trx.Put(r.store.Pool.Assets, assetId[:], asset.Pack())

	return assetId, nil
}

// Get - read an asset inside a transaction, staged changes included
func (r *Registry) Get(trx storage.Transaction, assetId record.AssetIdentifier) (*record.Asset, error) {
	packed := trx.Get(r.store.Pool.Assets, assetId[:])
	if nil == packed {
		return nil, fault.AssetNotFound
	}
	return record.PackedAsset(packed).Unpack()
}

// Read - read an asset from committed records only
func (r *Registry) Read(assetId record.AssetIdentifier) (*record.Asset, error) {
	packed := r.store.Pool.Assets.Get(assetId[:])
	if nil == packed {
		return nil, fault.AssetNotFound
	}
	return record.PackedAsset(packed).Unpack()
}

// MarkClaimed - stage the Active to Claimed transition
func (r *Registry) MarkClaimed(trx storage.Transaction, assetId record.AssetIdentifier) (*record.Asset, error) {

	asset, err := r.Get(trx, assetId)
	if nil != err {
		return nil, err
	}
	if record.AssetActive != asset.Status {
		return nil, fault.AssetAlreadyClaimed
	}

	asset.Status = record.AssetClaimed
	trx.Put(r.store.Pool.Assets, assetId[:], asset.Pack())

	return asset, nil
}

// Entry - one asset returned by Scan
type Entry struct {
	Id    record.AssetIdentifier `json:"id"`
	Asset *record.Asset          `json:"asset"`
}

// Scan - list committed assets in identifier order
//
// pass the last identifier of the previous page as after, or nil to
// start from the beginning; the second return is the paging position
func (r *Registry) Scan(after []byte, count int) ([]Entry, []byte, error) {
	if count <= 0 {
		return nil, nil, fault.InvalidCount
	}

	cursor := r.store.Pool.Assets.NewFetchCursor()
	n := count
	if nil != after {
		cursor.Seek(after)
		n += 1 // the seek position is included in the fetch
	}

	elements, err := cursor.Fetch(n)
	if nil != err {
		return nil, nil, err
	}

	entries := make([]Entry, 0, count)
	for _, e := range elements {
		if nil != after && bytes.Equal(after, e.Key) {
			continue
		}
		if len(entries) >= count {
			break
		}

		var assetId record.AssetIdentifier
		err = record.AssetIdentifierFromBytes(&assetId, e.Key)
		if nil != err {
			return nil, nil, err
		}
		asset, err := record.PackedAsset(e.Value).Unpack()
		if nil != err {
			return nil, nil, err
		}
		entries = append(entries, Entry{
			Id:    assetId,
			Asset: asset,
		})
	}

	var next []byte
	if len(entries) > 0 {
		last := entries[len(entries)-1].Id
		next = last[:]
	}
	return entries, next, nil
}
