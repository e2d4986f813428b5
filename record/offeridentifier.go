// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/proportiond/fault"
)

// limits
const (
	OfferIdentifierLength = 32
)

// OfferIdentifier - the type for an offer identifier
// derived from the asset, the seller and the seller's offer sequence
// number, so identifiers are unique and never reused
// represented as hex text for JSON encoding
type OfferIdentifier [OfferIdentifierLength]byte

// NewOfferIdentifier - create an offer id
//
// SHA3-256 Hash over: assetId, seller, big endian sequence
func NewOfferIdentifier(assetId AssetIdentifier, seller []byte, sequence uint64) OfferIdentifier {
	sequenceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(sequenceBytes, sequence)

	buffer := make([]byte, 0, AssetIdentifierLength+len(seller)+len(sequenceBytes))
	buffer = append(buffer, assetId[:]...)
	buffer = append(buffer, seller...)
	buffer = append(buffer, sequenceBytes...)

	return OfferIdentifier(sha3.Sum256(buffer))
}

// String - convert a binary offerId to hex string for use by the fmt package (for %s)
func (offerId OfferIdentifier) String() string {
	return hex.EncodeToString(offerId[:])
}

// GoString - convert a binary offerId to hex string for use by the fmt package (for %#v)
func (offerId OfferIdentifier) GoString() string {
	return "<offer:" + hex.EncodeToString(offerId[:]) + ">"
}

// MarshalText - convert offerId to hex text
func (offerId OfferIdentifier) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(offerId))
	buffer := make([]byte, size)
	hex.Encode(buffer, offerId[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an offerId
func (offerId *OfferIdentifier) UnmarshalText(s []byte) error {
	if len(offerId) != hex.DecodedLen(len(s)) {
		return fault.NotOfferId
	}
	byteCount, err := hex.Decode(offerId[:], s)
	if nil != err {
		return err
	}
	if OfferIdentifierLength != byteCount {
		return fault.NotOfferId
	}
	return nil
}

// OfferIdentifierFromBytes - convert and validate a binary byte slice to an offerId
func OfferIdentifierFromBytes(offerId *OfferIdentifier, buffer []byte) error {
	if OfferIdentifierLength != len(buffer) {
		return fault.NotOfferId
	}
	copy(offerId[:], buffer)
	return nil
}
