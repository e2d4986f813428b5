// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package share

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/ratelimit"
	"github.com/bitmark-inc/proportiond/trading"
	"github.com/bitmark-inc/proportiond/trust"
)

const (
	rateLimitShare = 200
	rateBurstShare = 100
)

// Share - type for the RPC
type Share struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	Engine         *trading.Engine
	Ledger         *ledger.Ledger
	Book           *offerbook.Book
	Approver       trust.Approver
	IsTestingChain func() bool
	ReadOnly       bool
}

func New(
	log *logger.L,
	engine *trading.Engine,
	l *ledger.Ledger,
	b *offerbook.Book,
	approver trust.Approver,
	isTestingChain func() bool,
	readOnly bool,
) *Share {
	return &Share{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitShare, rateBurstShare),
		Engine:         engine,
		Ledger:         l,
		Book:           b,
		Approver:       approver,
		IsTestingChain: isTestingChain,
		ReadOnly:       readOnly,
	}
}

// Offer some units for sale
// -------------------------

// OfferArguments - arguments for RPC request
type OfferArguments struct {
	Seller    *account.Account       `json:"seller"` // base58
	AssetId   record.AssetIdentifier `json:"assetId"`
	Units     uint64                 `json:"units,string"`
	UnitPrice uint64                 `json:"unitPrice,string"`
}

// OfferReply - results from offer RPC request
type OfferReply struct {
	OfferId record.OfferIdentifier `json:"offerId"`
}

// Offer - lock units and open a fixed price offer
func (share *Share) Offer(arguments *OfferArguments, reply *OfferReply) error {

	if err := ratelimit.Limit(share.Limiter); nil != err {
		return err
	}
	if share.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := share.Log
	log.Infof("Share.Offer: %+v", arguments)

	if nil == arguments || nil == arguments.Seller {
		return fault.InvalidItem
	}

	if arguments.Seller.IsTesting() != share.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	err := share.Approver.Approve(arguments.Seller)
	if nil != err {
		return err
	}

	offerId, err := share.Engine.OfferShares(arguments.Seller, arguments.AssetId, arguments.Units, arguments.UnitPrice)
	if nil != err {
		return err
	}

	reply.OfferId = offerId
	return nil
}

// Transfer units directly
// -----------------------

// TransferArguments - arguments for RPC request
type TransferArguments struct {
	Sender    *account.Account       `json:"sender"`    // base58
	Recipient *account.Account       `json:"recipient"` // base58
	AssetId   record.AssetIdentifier `json:"assetId"`
	Units     uint64                 `json:"units,string"`
}

// TransferReply - results from transfer RPC request
type TransferReply struct {
	Remaining uint64 `json:"remaining,string"` // sender units after the transfer
}

// Transfer - move units between accounts without payment
func (share *Share) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	if err := ratelimit.Limit(share.Limiter); nil != err {
		return err
	}
	if share.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := share.Log
	log.Infof("Share.Transfer: %+v", arguments)

	if nil == arguments || nil == arguments.Sender || nil == arguments.Recipient {
		return fault.InvalidItem
	}

	if arguments.Sender.IsTesting() != share.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}
	if arguments.Recipient.IsTesting() != share.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	err := share.Engine.TransferShares(arguments.Sender, arguments.Recipient, arguments.AssetId, arguments.Units)
	if nil != err {
		return err
	}

	holding, err := share.Ledger.Read(arguments.AssetId, arguments.Sender)
	if nil != err {
		return err
	}
	reply.Remaining = holding.Units
	return nil
}

// Buy from an open offer
// ----------------------

// BuyArguments - arguments for RPC request
type BuyArguments struct {
	Buyer   *account.Account       `json:"buyer"` // base58
	OfferId record.OfferIdentifier `json:"offerId"`
	Units   uint64                 `json:"units,string"`
}

// BuyReply - results from buy RPC request
type BuyReply struct {
	Remaining uint64             `json:"remaining,string"` // offer units after the purchase
	Status    record.OfferStatus `json:"status"`
}

// Buy - settle part of an open offer, paying its seller
func (share *Share) Buy(arguments *BuyArguments, reply *BuyReply) error {

	if err := ratelimit.Limit(share.Limiter); nil != err {
		return err
	}
	if share.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := share.Log
	log.Infof("Share.Buy: %+v", arguments)

	if nil == arguments || nil == arguments.Buyer {
		return fault.InvalidItem
	}

	if arguments.Buyer.IsTesting() != share.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	err := share.Engine.BuyShares(arguments.Buyer, arguments.OfferId, arguments.Units)
	if nil != err {
		return err
	}

	offer, err := share.Book.Read(arguments.OfferId)
	if nil != err {
		return err
	}
	reply.Remaining = offer.UnitsRemaining
	reply.Status = offer.Status
	return nil
}

// Claim complete ownership
// ------------------------

// ClaimArguments - arguments for RPC request
type ClaimArguments struct {
	Claimant *account.Account       `json:"claimant"` // base58
	AssetId  record.AssetIdentifier `json:"assetId"`
}

// ClaimReply - results from claim RPC request
type ClaimReply struct {
	Status record.AssetStatus `json:"status"`
}

// Claim - take exclusive ownership of a fully held asset
func (share *Share) Claim(arguments *ClaimArguments, reply *ClaimReply) error {

	if err := ratelimit.Limit(share.Limiter); nil != err {
		return err
	}
	if share.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := share.Log
	log.Infof("Share.Claim: %+v", arguments)

	if nil == arguments || nil == arguments.Claimant {
		return fault.InvalidItem
	}

	if arguments.Claimant.IsTesting() != share.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	err := share.Engine.ClaimOwnership(arguments.Claimant, arguments.AssetId)
	if nil != err {
		return err
	}

	reply.Status = record.AssetClaimed
	return nil
}

// Holding balance
// ---------------

// BalanceArguments - arguments for RPC request
type BalanceArguments struct {
	Owner   *account.Account       `json:"owner"` // base58
	AssetId record.AssetIdentifier `json:"assetId"`
}

// BalanceReply - balance of one holding
//
// an account that never held the asset reports zero
type BalanceReply struct {
	Units       uint64 `json:"units,string"`
	LockedUnits uint64 `json:"lockedUnits,string"`
}

// Balance - read one holding
func (share *Share) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(share.Limiter); nil != err {
		return err
	}

	log := share.Log
	log.Infof("Share.Balance: %+v", arguments)

	if nil == arguments || nil == arguments.Owner {
		return fault.InvalidItem
	}

	holding, err := share.Ledger.Read(arguments.AssetId, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Units = holding.Units
	reply.LockedUnits = holding.LockedUnits
	return nil
}
