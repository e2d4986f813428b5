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

// Offer - a standing commitment to sell units at a fixed price
//
// UnitsRemaining only ever decreases; the record is retained after
// the offer closes so identifiers are never reused
type Offer struct {
	AssetId        AssetIdentifier  `json:"assetId"`
	Seller         *account.Account `json:"seller"`
	UnitPrice      uint64           `json:"unitPrice,string"`
	UnitsRemaining uint64           `json:"unitsRemaining,string"`
	Status         OfferStatus      `json:"status"`
}

// structure of the packed offer record
const (
	offerStatusStart  = 0
	offerStatusFinish = offerStatusStart + oneByteSize

	offerUnitPriceStart  = offerStatusFinish
	offerUnitPriceFinish = offerUnitPriceStart + uint64ByteSize

	offerUnitsRemainingStart  = offerUnitPriceFinish
	offerUnitsRemainingFinish = offerUnitsRemainingStart + uint64ByteSize

	offerAssetIdStart  = offerUnitsRemainingFinish
	offerAssetIdFinish = offerAssetIdStart + AssetIdentifierLength

	offerSellerCountStart  = offerAssetIdFinish
	offerSellerCountFinish = offerSellerCountStart + oneByteSize

	// seller bytes follow, variable length
	offerSellerStart = offerSellerCountFinish
)

// PackedOffer - packed data to store in the database
type PackedOffer []byte

// Pack - pack an offer record to a byte slice
func (offer Offer) Pack() PackedOffer {

	unitPrice := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(unitPrice, offer.UnitPrice)

	unitsRemaining := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(unitsRemaining, offer.UnitsRemaining)

	seller := offer.Seller.Bytes()

	newData := make(PackedOffer, 0, offerSellerStart+len(seller))

	newData = append(newData, byte(offer.Status))
	newData = append(newData, unitPrice...)
	newData = append(newData, unitsRemaining...)
	newData = append(newData, offer.AssetId[:]...)
	newData = append(newData, byte(len(seller)))
	newData = append(newData, seller...)

	return newData
}

// Unpack - unpack an offer record
func (packed PackedOffer) Unpack() (*Offer, error) {
	if len(packed) <= offerSellerStart {
		return nil, fault.NotOfferPack
	}

	sellerCount := int(packed[offerSellerCountStart])
	sellerFinish := offerSellerStart + sellerCount
	if len(packed) != sellerFinish {
		return nil, fault.NotOfferPack
	}

	seller, err := account.AccountFromBytes(packed[offerSellerStart:sellerFinish])
	if nil != err {
		return nil, fault.NotOfferPack
	}

	offer := &Offer{
		UnitPrice:      binary.BigEndian.Uint64(packed[offerUnitPriceStart:offerUnitPriceFinish]),
		UnitsRemaining: binary.BigEndian.Uint64(packed[offerUnitsRemainingStart:offerUnitsRemainingFinish]),
		Seller:         seller,
		Status:         OfferStatus(packed[offerStatusStart]),
	}
	AssetIdentifierFromBytes(&offer.AssetId, packed[offerAssetIdStart:offerAssetIdFinish])

	if _, err := offerStatusToString(offer.Status); nil != err {
		return nil, fault.NotOfferPack
	}

	return offer, nil
}
