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

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	offerId, err := checkOfferId(c.String("offer"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "offerId: %s\n", offerId)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connect, m.config.Fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetOffer(offerId)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
