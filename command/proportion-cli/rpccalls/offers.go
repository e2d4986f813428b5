// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/offers"
)

// GetOffer - fetch one offer in any state
func (client *Client) GetOffer(offerId record.OfferIdentifier) (*offers.GetReply, error) {

	getArgs := offers.GetArguments{
		OfferId: offerId,
	}

	client.printJson("Status Request", getArgs)

	reply := &offers.GetReply{}
	err := client.client.Call("Offers.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return reply, nil
}

// ListOffersData - parameters for one page of open offers
//
// After is the Next value of the previous reply, nil for the first
// page
type ListOffersData struct {
	AssetId record.AssetIdentifier
	After   []byte
	Count   int
}

// ListOffers - page through the open offers of one asset
func (client *Client) ListOffers(listConfig *ListOffersData) (*offers.ListReply, error) {

	listArgs := offers.ListArguments{
		AssetId: listConfig.AssetId,
		After:   listConfig.After,
		Count:   listConfig.Count,
	}

	client.printJson("List Request", listArgs)

	reply := &offers.ListReply{}
	err := client.client.Call("Offers.List", listArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("List Reply", reply)

	return reply, nil
}

// CancelData - parameters for withdrawing an open offer
type CancelData struct {
	Seller  *account.Account
	OfferId record.OfferIdentifier
}

// CancelOffer - withdraw an open offer and release its locked units
func (client *Client) CancelOffer(cancelConfig *CancelData) (*offers.CancelReply, error) {

	cancelArgs := offers.CancelArguments{
		Seller:  cancelConfig.Seller,
		OfferId: cancelConfig.OfferId,
	}

	client.printJson("Cancel Request", cancelArgs)

	reply := &offers.CancelReply{}
	err := client.client.Call("Offers.Cancel", cancelArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Cancel Reply", reply)

	return reply, nil
}
