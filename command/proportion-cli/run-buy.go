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

func runBuy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	offerId, err := checkOfferId(c.String("offer"))
	if nil != err {
		return err
	}

	quantity := c.Uint64("quantity")
	if 0 == quantity {
		return fmt.Errorf("invalid quantity: %d", quantity)
	}

	name, buyer, err := checkOwner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "buyer: %s\n", name)
		fmt.Fprintf(m.e, "offerId: %s\n", offerId)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	buyConfig := &rpccalls.BuyData{
		Buyer:   buyer,
		OfferId: offerId,
		Units:   quantity,
	}

	response, err := client.BuyShares(buyConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
