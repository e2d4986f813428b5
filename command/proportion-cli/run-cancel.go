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

func runCancel(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	offerId, err := checkOfferId(c.String("offer"))
	if nil != err {
		return err
	}

	name, seller, err := checkOwner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "seller: %s\n", name)
		fmt.Fprintf(m.e, "offerId: %s\n", offerId)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	cancelConfig := &rpccalls.CancelData{
		Seller:  seller,
		OfferId: offerId,
	}

	response, err := client.CancelOffer(cancelConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
