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

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	// any account can be queried, not only configured identities
	ownerName := c.String("owner")
	if "" == ownerName {
		ownerName = c.GlobalString("identity")
		if "" == ownerName {
			ownerName = m.config.DefaultIdentity
		}
	}
	name, owner, err := checkRecipient(ownerName, m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", name)
		fmt.Fprintf(m.e, "assetId: %s\n", assetId)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	balanceConfig := &rpccalls.BalanceData{
		Owner:   owner,
		AssetId: assetId,
	}

	response, err := client.GetBalance(balanceConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
