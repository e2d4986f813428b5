// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
)

// limits
const (
	MaximumMetadataLength = 2048
)

// Asset - a registered asset and its fixed unit denomination
//
// the creator is recorded for provenance only; once units start
// moving the creator has no special rights over the asset
type Asset struct {
	TotalUnits uint64           `json:"totalUnits,string"`
	Status     AssetStatus      `json:"status"`
	Creator    *account.Account `json:"creator"`
	Metadata   string           `json:"metadata"`
}

// structure of the packed asset record
const (
	assetStatusStart  = 0
	assetStatusFinish = assetStatusStart + oneByteSize

	assetTotalUnitsStart  = assetStatusFinish
	assetTotalUnitsFinish = assetTotalUnitsStart + uint64ByteSize

	assetCreatorCountStart  = assetTotalUnitsFinish
	assetCreatorCountFinish = assetCreatorCountStart + oneByteSize

	// creator bytes then metadata follow, both variable length
	assetCreatorStart = assetCreatorCountFinish
)

// PackedAsset - packed data to store in the database
type PackedAsset []byte

// Pack - pack an asset record to a byte slice
func (asset Asset) Pack() PackedAsset {

	totalUnits := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(totalUnits, asset.TotalUnits)

	creator := asset.Creator.Bytes()

	newData := make(PackedAsset, 0, assetCreatorStart+len(creator)+len(asset.Metadata))

	newData = append(newData, byte(asset.Status))
	newData = append(newData, totalUnits...)
	newData = append(newData, byte(len(creator)))
	newData = append(newData, creator...)
	newData = append(newData, asset.Metadata...)

	return newData
}

// Unpack - unpack an asset record
func (packed PackedAsset) Unpack() (*Asset, error) {
	if len(packed) <= assetCreatorStart {
		return nil, fault.NotAssetPack
	}

	creatorCount := int(packed[assetCreatorCountStart])
	creatorFinish := assetCreatorStart + creatorCount
	if len(packed) < creatorFinish {
		return nil, fault.NotAssetPack
	}

	creator, err := account.AccountFromBytes(packed[assetCreatorStart:creatorFinish])
	if nil != err {
		return nil, fault.NotAssetPack
	}

	asset := &Asset{
		TotalUnits: binary.BigEndian.Uint64(packed[assetTotalUnitsStart:assetTotalUnitsFinish]),
		Status:     AssetStatus(packed[assetStatusStart]),
		Creator:    creator,
		Metadata:   string(packed[creatorFinish:]),
	}

	if _, err := assetStatusToString(asset.Status); nil != err {
		return nil, fault.NotAssetPack
	}

	return asset, nil
}
