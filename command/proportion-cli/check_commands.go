// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/base64"
	"os"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/command/proportion-cli/configuration"
	"github.com/bitmark-inc/proportiond/record"
)

// identity is required, but not checked against the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}

	return name, nil
}

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}

	return description, nil
}

// asset id is required, hex as printed on creation
func checkAssetId(assetId string) (record.AssetIdentifier, error) {
	var id record.AssetIdentifier
	if "" == assetId {
		return id, ErrRequiredAssetId
	}

	err := id.UnmarshalText([]byte(assetId))
	return id, err
}

// offer id is required, hex as printed when the offer opened
func checkOfferId(offerId string) (record.OfferIdentifier, error) {
	var id record.OfferIdentifier
	if "" == offerId {
		return id, ErrRequiredOfferId
	}

	err := id.UnmarshalText([]byte(offerId))
	return id, err
}

// paging cursor is optional, the base64 next value of a previous reply
func checkAfter(after string) ([]byte, error) {
	if "" == after {
		return nil, nil
	}

	return base64.StdEncoding.DecodeString(after)
}

// owner must name an identity from the configuration, blank selects
// the default identity
func checkOwner(name string, config *configuration.Configuration) (string, *account.Account, error) {
	if "" == name {
		name = config.DefaultIdentity
	}
	if "" == name {
		return "", nil, ErrRequiredIdentity
	}

	owner, err := config.Account(name)
	if nil != err {
		return "", nil, err
	}

	return name, owner, nil
}

// recipient is either an identity name from the configuration or a
// full base58 account
func checkRecipient(name string, config *configuration.Configuration) (string, *account.Account, error) {
	if "" == name {
		return "", nil, ErrRequiredRecipient
	}

	recipient, err := config.Account(name)
	if nil == err {
		return name, recipient, nil
	}

	recipient, err = account.AccountFromBase58(name)
	if nil != err {
		return "", nil, err
	}

	return recipient.String(), recipient, nil
}

// checkFileExists - a file or directory exists, true for a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}

	return s.IsDir(), nil
}
