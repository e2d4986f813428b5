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

func runClaim(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	name, claimant, err := checkOwner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "claimant: %s\n", name)
		fmt.Fprintf(m.e, "assetId: %s\n", assetId)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	claimConfig := &rpccalls.ClaimData{
		Claimant: claimant,
		AssetId:  assetId,
	}

	response, err := client.ClaimOwnership(claimConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
