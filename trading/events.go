// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/record"
)

// Kind - the type of a trading event
type Kind byte

// possible event kinds
const (
	AssetCreated Kind = iota
	SharesOffered
	SharesTransferred
	OfferSettled
	OfferCancelled
	OwnershipClaimed
)

// internal conversion for text output
func kindToString(kind Kind) ([]byte, error) {
	switch kind {
	case AssetCreated:
		return []byte("asset created"), nil
	case SharesOffered:
		return []byte("shares offered"), nil
	case SharesTransferred:
		return []byte("shares transferred"), nil
	case OfferSettled:
		return []byte("offer settled"), nil
	case OfferCancelled:
		return []byte("offer cancelled"), nil
	case OwnershipClaimed:
		return []byte("ownership claimed"), nil
	default:
		return nil, fault.InvalidItem
	}
}

// String - convert a kind to its text form
//
// panics on invalid kinds to catch programming errors
func (kind Kind) String() string {
	s, err := kindToString(kind)
	if nil != err {
		logger.Panicf("invalid event kind: %d", kind)
	}
	return string(s)
}

// Event - one committed change to the ledger
//
// Price carries the unit price for SharesOffered and the total amount
// paid for OfferSettled, zero otherwise; To is the counterparty where
// one exists
type Event struct {
	Kind    Kind
	AssetId record.AssetIdentifier
	OfferId record.OfferIdentifier
	From    *account.Account
	To      *account.Account
	Units   uint64
	Price   uint64
}

// Notifier - receives an event after each committed operation
//
// called with the engine lock held, so implementations must not call
// back into the engine
type Notifier interface {
	Notify(Event)
}
