// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	// blank to generate a new key, or an account for receive-only
	acc := c.String("account")

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
		fmt.Fprintf(m.e, "account: %s\n", acc)
	}

	if "" == acc {
		rawKeyPair, err := makeRawKeyPair(m.testnet)
		if nil != err {
			return err
		}

		err = m.config.AddIdentity(name, description, rawKeyPair.Account, rawKeyPair.PrivateKey)
		if nil != err {
			return err
		}

		printJson(m.w, rawKeyPair)

	} else {
		err = m.config.AddReceiveOnlyIdentity(name, description, acc)
		if nil != err {
			return err
		}
	}

	// require configuration update
	m.save = true
	return nil
}
