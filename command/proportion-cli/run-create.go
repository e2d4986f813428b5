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

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	meta := c.String("metadata")

	quantity := c.Uint64("quantity")
	if 0 == quantity {
		return fmt.Errorf("invalid quantity: %d", quantity)
	}

	name, creator, err := checkOwner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "creator: %s\n", name)
		fmt.Fprintf(m.e, "metadata: %q\n", meta)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	assetConfig := &rpccalls.AssetData{
		Creator:    creator,
		Metadata:   meta,
		TotalUnits: quantity,
	}

	response, err := client.CreateAsset(assetConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
