// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/proportiond/command/proportion-cli/rpccalls"
)

func runOffer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	quantity := c.Uint64("quantity")
	if 0 == quantity {
		return fmt.Errorf("invalid quantity: %d", quantity)
	}

	// a zero price gives the units away
	price := c.Uint64("price")

	name, seller, err := checkOwner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "seller: %s\n", name)
		fmt.Fprintf(m.e, "assetId: %s\n", assetId)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
		fmt.Fprintf(m.e, "price: %d\n", price)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	offerConfig := &rpccalls.OfferData{
		Seller:    seller,
		AssetId:   assetId,
		Units:     quantity,
		UnitPrice: price,
	}

	response, err := client.OfferShares(offerConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
