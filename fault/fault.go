// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - record already exists
	ExistsError GenericError
	// InvalidError - invalid data or parameter
	InvalidError GenericError
	// LengthError - data is too long or too short
	LengthError GenericError
	// NotFoundError - requested record is missing
	NotFoundError GenericError
	// ProcessError - operation cannot proceed in the current state
	ProcessError GenericError
	// RecordError - stored data cannot be unpacked
	RecordError GenericError
)

// common errors - keep in alphabetic order
var (
	AccountNotApproved         = InvalidError("account not approved")
	AssetAlreadyClaimed        = ProcessError("asset already claimed")
	AssetAlreadyExists         = ExistsError("asset already exists")
	AssetNotFound              = NotFoundError("asset not found")
	CannotDecodeAccount        = RecordError("cannot decode account")
	CertificateFileExists      = ExistsError("certificate file already exists")
	ChecksumMismatch           = ProcessError("checksum mismatch")
	ExceedsRemaining           = InvalidError("quantity exceeds units remaining")
	HoldingsOutOfBalance       = RecordError("holdings do not balance with the asset total")
	IdentityNameAlreadyExists  = ExistsError("identity name already exists")
	IdentityNameNotFound       = NotFoundError("identity name not found")
	InsufficientFunds          = InvalidError("insufficient funds")
	InsufficientOwnership      = InvalidError("claim requires the entire unit supply")
	InsufficientUnits          = InvalidError("insufficient units")
	InsufficientUnlockedUnits  = InvalidError("insufficient unlocked units")
	InvalidAmount              = InvalidError("unit count cannot be zero")
	InvalidCount               = InvalidError("count out of range")
	InvalidCursor              = InvalidError("cursor is invalid")
	InvalidDenomination        = InvalidError("total units cannot be zero")
	InvalidIpAddress           = InvalidError("invalid ip address")
	InvalidItem                = InvalidError("invalid item")
	InvalidKeyLength           = LengthError("invalid key length")
	InvalidKeyType             = InvalidError("invalid key type")
	InvalidPaymentMode         = InvalidError("invalid payment mode")
	InvalidUnlock              = InvalidError("unlock exceeds locked units")
	KeyFileExists              = ExistsError("key file already exists")
	MetadataTooLong            = LengthError("metadata too long")
	MissingParameters          = LengthError("missing parameters")
	NotAssetId                 = RecordError("not an asset id")
	NotAssetPack               = RecordError("not an asset pack")
	NotAvailableInReadOnlyMode = ProcessError("not available in read only mode")
	NotHoldingPack             = RecordError("not a holding pack")
	NotOfferId                 = RecordError("not an offer id")
	NotOfferPack               = RecordError("not an offer pack")
	NotOfferSeller             = InvalidError("not the offer seller")
	NotPublicKey               = RecordError("not a public key")
	OfferNotFound              = NotFoundError("offer not found")
	OfferNotOpen               = ProcessError("offer is not open")
	PaymentFailed              = ProcessError("payment failed")
	RateLimiting               = ProcessError("rate limiting")
	TotalPriceOverflow         = InvalidError("total price exceeds currency range")
	WrongNetworkForPublicKey   = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine if an error is in the exists class
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is in the invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine if an error is in the length class
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine if an error is in the not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is in the process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine if an error is in the record class
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
