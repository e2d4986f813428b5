// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/share"
)

// OfferData - parameters for opening a fixed price offer
type OfferData struct {
	Seller    *account.Account
	AssetId   record.AssetIdentifier
	Units     uint64
	UnitPrice uint64
}

// OfferShares - lock units and open an offer
func (client *Client) OfferShares(offerConfig *OfferData) (*share.OfferReply, error) {

	offerArgs := share.OfferArguments{
		Seller:    offerConfig.Seller,
		AssetId:   offerConfig.AssetId,
		Units:     offerConfig.Units,
		UnitPrice: offerConfig.UnitPrice,
	}

	client.printJson("Offer Request", offerArgs)

	reply := &share.OfferReply{}
	err := client.client.Call("Share.Offer", offerArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Offer Reply", reply)

	return reply, nil
}

// TransferData - parameters for a free transfer of units
type TransferData struct {
	Sender    *account.Account
	Recipient *account.Account
	AssetId   record.AssetIdentifier
	Units     uint64
}

// TransferShares - move units to another account without payment
func (client *Client) TransferShares(transferConfig *TransferData) (*share.TransferReply, error) {

	transferArgs := share.TransferArguments{
		Sender:    transferConfig.Sender,
		Recipient: transferConfig.Recipient,
		AssetId:   transferConfig.AssetId,
		Units:     transferConfig.Units,
	}

	client.printJson("Transfer Request", transferArgs)

	reply := &share.TransferReply{}
	err := client.client.Call("Share.Transfer", transferArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return reply, nil
}

// BuyData - parameters for settling part of an open offer
type BuyData struct {
	Buyer   *account.Account
	OfferId record.OfferIdentifier
	Units   uint64
}

// BuyShares - purchase units from an open offer
func (client *Client) BuyShares(buyConfig *BuyData) (*share.BuyReply, error) {

	buyArgs := share.BuyArguments{
		Buyer:   buyConfig.Buyer,
		OfferId: buyConfig.OfferId,
		Units:   buyConfig.Units,
	}

	client.printJson("Buy Request", buyArgs)

	reply := &share.BuyReply{}
	err := client.client.Call("Share.Buy", buyArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Buy Reply", reply)

	return reply, nil
}

// ClaimData - parameters for claiming exclusive ownership
type ClaimData struct {
	Claimant *account.Account
	AssetId  record.AssetIdentifier
}

// ClaimOwnership - retire an asset held in full
func (client *Client) ClaimOwnership(claimConfig *ClaimData) (*share.ClaimReply, error) {

	claimArgs := share.ClaimArguments{
		Claimant: claimConfig.Claimant,
		AssetId:  claimConfig.AssetId,
	}

	client.printJson("Claim Request", claimArgs)

	reply := &share.ClaimReply{}
	err := client.client.Call("Share.Claim", claimArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Claim Reply", reply)

	return reply, nil
}

// BalanceData - parameters for a balance request
type BalanceData struct {
	Owner   *account.Account
	AssetId record.AssetIdentifier
}

// GetBalance - read one holding, zero for an account that never held
// the asset
func (client *Client) GetBalance(balanceConfig *BalanceData) (*share.BalanceReply, error) {

	balanceArgs := share.BalanceArguments{
		Owner:   balanceConfig.Owner,
		AssetId: balanceConfig.AssetId,
	}

	client.printJson("Balance Request", balanceArgs)

	reply := &share.BalanceReply{}
	err := client.client.Call("Share.Balance", balanceArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}
