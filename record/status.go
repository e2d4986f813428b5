// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/fault"
)

// AssetStatus - the lifecycle flag byte of an asset
type AssetStatus byte

// asset status codes for flag byte
const (
	AssetActive  AssetStatus = iota
	AssetClaimed AssetStatus = iota
)

// internal conversion
func assetStatusToString(status AssetStatus) ([]byte, error) {
	switch status {
	case AssetActive:
		return []byte("Active"), nil
	case AssetClaimed:
		return []byte("Claimed"), nil
	default:
		return []byte{}, fault.InvalidItem
	}
}

// String - convert an asset status to its string form
func (status AssetStatus) String() string {
	s, err := assetStatusToString(status)
	if nil != err {
		logger.Panicf("invalid asset status enumeration: %d", status)
	}
	return string(s)
}

// MarshalText - convert an asset status to text
func (status AssetStatus) MarshalText() ([]byte, error) {
	s, err := assetStatusToString(status)
	if nil != err {
		logger.Panicf("invalid asset status enumeration: %d", status)
	}
	return s, nil
}

// UnmarshalText - convert text back to an asset status
func (status *AssetStatus) UnmarshalText(s []byte) error {
	switch string(s) {
	case "Active":
		*status = AssetActive
	case "Claimed":
		*status = AssetClaimed
	default:
		return fault.InvalidItem
	}
	return nil
}

// OfferStatus - the lifecycle flag byte of an offer
type OfferStatus byte

// offer status codes for flag byte
const (
	OfferOpen      OfferStatus = iota
	OfferFilled    OfferStatus = iota
	OfferCancelled OfferStatus = iota
)

// internal conversion
func offerStatusToString(status OfferStatus) ([]byte, error) {
	switch status {
	case OfferOpen:
		return []byte("Open"), nil
	case OfferFilled:
		return []byte("Filled"), nil
	case OfferCancelled:
		return []byte("Cancelled"), nil
	default:
		return []byte{}, fault.InvalidItem
	}
}

// String - convert an offer status to its string form
func (status OfferStatus) String() string {
	s, err := offerStatusToString(status)
	if nil != err {
		logger.Panicf("invalid offer status enumeration: %d", status)
	}
	return string(s)
}

// MarshalText - convert an offer status to text
func (status OfferStatus) MarshalText() ([]byte, error) {
	s, err := offerStatusToString(status)
	if nil != err {
		logger.Panicf("invalid offer status enumeration: %d", status)
	}
	return s, nil
}

// UnmarshalText - convert text back to an offer status
func (status *OfferStatus) UnmarshalText(s []byte) error {
	switch string(s) {
	case "Open":
		*status = OfferOpen
	case "Filled":
		*status = OfferFilled
	case "Cancelled":
		*status = OfferCancelled
	default:
		return fault.InvalidItem
	}
	return nil
}
