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

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	to, recipient, err := checkRecipient(c.String("receiver"), m.config)
	if nil != err {
		return err
	}

	quantity := c.Uint64("quantity")
	if 0 == quantity {
		return fmt.Errorf("invalid quantity: %d", quantity)
	}

	from, sender, err := checkOwner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "assetId: %s\n", assetId)
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "sender: %s\n", from)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	transferConfig := &rpccalls.TransferData{
		Sender:    sender,
		Recipient: recipient,
		AssetId:   assetId,
		Units:     quantity,
	}

	response, err := client.TransferShares(transferConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
