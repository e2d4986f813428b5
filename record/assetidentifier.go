// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/proportiond/fault"
)

// limits
const (
	AssetIdentifierLength = 64
)

// AssetIdentifier - the type for an asset identifier
// derived from the asset metadata, so registering the same metadata
// twice always produces the same identifier
// represented as hex text for JSON encoding
type AssetIdentifier [AssetIdentifierLength]byte

// NewAssetIdentifier - create an asset id from the metadata payload
//
// SHA3-512 Hash
func NewAssetIdentifier(metadata []byte) AssetIdentifier {
	return AssetIdentifier(sha3.Sum512(metadata))
}

// String - convert a binary assetId to hex string for use by the fmt package (for %s)
func (assetId AssetIdentifier) String() string {
	return hex.EncodeToString(assetId[:])
}

// GoString - convert a binary assetId to hex string for use by the fmt package (for %#v)
func (assetId AssetIdentifier) GoString() string {
	return "<asset:" + hex.EncodeToString(assetId[:]) + ">"
}

// MarshalText - convert assetId to hex text
func (assetId AssetIdentifier) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(assetId))
	buffer := make([]byte, size)
	hex.Encode(buffer, assetId[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an assetId
func (assetId *AssetIdentifier) UnmarshalText(s []byte) error {
	if len(assetId) != hex.DecodedLen(len(s)) {
		return fault.NotAssetId
	}
	byteCount, err := hex.Decode(assetId[:], s)
	if nil != err {
		return err
	}
	if AssetIdentifierLength != byteCount {
		return fault.NotAssetId
	}
	return nil
}

// AssetIdentifierFromBytes - convert and validate a binary byte slice to an assetId
func AssetIdentifierFromBytes(assetId *AssetIdentifier, buffer []byte) error {
	if AssetIdentifierLength != len(buffer) {
		return fault.NotAssetId
	}
	copy(assetId[:], buffer)
	return nil
}
