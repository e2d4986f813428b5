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

func runAsset(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "assetId: %s\n", assetId)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetAsset(assetId)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
