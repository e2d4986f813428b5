// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/ratelimit"
	"github.com/bitmark-inc/proportiond/trading"
)

const (
	MaximumOfferCount = 100

	rateLimitOffers = 200
	rateBurstOffers = 100
)

// Offers - type for the RPC
type Offers struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	Engine         *trading.Engine
	Book           *offerbook.Book
	IsTestingChain func() bool
	ReadOnly       bool
}

func New(
	log *logger.L,
	engine *trading.Engine,
	b *offerbook.Book,
	isTestingChain func() bool,
	readOnly bool,
) *Offers {
	return &Offers{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitOffers, rateBurstOffers),
		Engine:         engine,
		Book:           b,
		IsTestingChain: isTestingChain,
		ReadOnly:       readOnly,
	}
}

// Offers.Get
// ----------

// GetArguments - arguments for RPC request
type GetArguments struct {
	OfferId record.OfferIdentifier `json:"offerId"`
}

// GetReply - results from get RPC request
type GetReply struct {
	OfferId record.OfferIdentifier `json:"offerId"`
	Offer   *record.Offer          `json:"offer"`
}

// Get - fetch one offer in any state
func (offers *Offers) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(offers.Limiter); nil != err {
		return err
	}

	log := offers.Log
	log.Infof("Offers.Get: %+v", arguments)

	if nil == arguments {
		return fault.InvalidItem
	}

	offer, err := offers.Book.Read(arguments.OfferId)
	if nil != err {
		return err
	}

	reply.OfferId = arguments.OfferId
	reply.Offer = offer
	return nil
}

// Offers.List
// -----------

// ListArguments - arguments for RPC request
//
// After is the opaque cursor from a previous reply, nil for the first page
type ListArguments struct {
	AssetId record.AssetIdentifier `json:"assetId"`
	After   []byte                 `json:"after"` // base64
	Count   int                    `json:"count"`
}

// ListReply - results from list RPC request
//
// Next is the position to pass as After on the following call, nil
// once a page comes back empty
type ListReply struct {
	Offers []offerbook.Entry `json:"offers"`
	Next   []byte            `json:"next"` // base64
}

// List - page through the open offers of one asset
func (offers *Offers) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(offers.Limiter, arguments.Count, MaximumOfferCount); nil != err {
		return err
	}

	log := offers.Log
	log.Infof("Offers.List: %+v", arguments)

	entries, next, err := offers.Book.OpenOffers(arguments.AssetId, arguments.After, arguments.Count)
	if nil != err {
		return err
	}

	reply.Offers = entries
	reply.Next = next
	return nil
}

// Offers.Cancel
// -------------

// CancelArguments - arguments for RPC request
type CancelArguments struct {
	Seller  *account.Account       `json:"seller"` // base58
	OfferId record.OfferIdentifier `json:"offerId"`
}

// CancelReply - results from cancel RPC request
type CancelReply struct {
	Status        record.OfferStatus `json:"status"`
	UnitsReleased uint64             `json:"unitsReleased,string"`
}

// Cancel - withdraw an open offer and release its locked units
func (offers *Offers) Cancel(arguments *CancelArguments, reply *CancelReply) error {

	if err := ratelimit.Limit(offers.Limiter); nil != err {
		return err
	}
	if offers.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := offers.Log
	log.Infof("Offers.Cancel: %+v", arguments)

	if nil == arguments || nil == arguments.Seller {
		return fault.InvalidItem
	}

	if arguments.Seller.IsTesting() != offers.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	err := offers.Engine.CancelOffer(arguments.Seller, arguments.OfferId)
	if nil != err {
		return err
	}

	offer, err := offers.Book.Read(arguments.OfferId)
	if nil != err {
		return err
	}
	reply.Status = offer.Status
	reply.UnitsReleased = offer.UnitsRemaining
	return nil
}
