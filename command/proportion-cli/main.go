// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/proportiond/command/proportion-cli/configuration"
	"github.com/bitmark-inc/proportiond/version"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

func main() {

	app := cli.NewApp()
	app.Name = "proportion-cli"
	// app.Usage = ""
	app.Version = version.Version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "live",
			Usage: " connect to `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise proportion-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*proportiond host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "fingerprint, f",
					Value: "",
					Usage: " pin the daemon certificate `SHA3-256`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " receive-only base58 `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "create",
			Usage:     "create a new asset with a fixed unit supply",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " asset metadata `STRING`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*total number of units `COUNT`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "asset",
			Usage:     "display one asset record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSETID`",
				},
			},
			Action: runAsset,
		},
		{
			Name:      "offer",
			Usage:     "offer units for sale at a fixed price",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSETID`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*number of units to offer `COUNT`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Value: 0,
					Usage: " price per unit `AMOUNT`",
				},
			},
			Action: runOffer,
		},
		{
			Name:      "transfer",
			Usage:     "transfer units to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSETID`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or account to receive the units `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*number of units to transfer `COUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "buy",
			Usage:     "buy units from an open offer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "offer, o",
					Value: "",
					Usage: "*offer id `OFFERID`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*number of units to buy `COUNT`",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "cancel",
			Usage:     "cancel an open offer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "offer, o",
					Value: "",
					Usage: "*offer id `OFFERID`",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "claim",
			Usage:     "claim outright ownership of a fully held asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSETID`",
				},
			},
			Action: runClaim,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of one holding",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name `ACCOUNT` default is global identity",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSETID`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "offers",
			Usage:     "list open offers of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSETID`",
				},
				cli.StringFlag{
					Name:  "after, s",
					Value: "",
					Usage: " continue from `NEXT` of the previous reply",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runOffers,
		},
		{
			Name:      "status",
			Usage:     "display the status of an offer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "offer, o",
					Value: "",
					Usage: "*offer id `OFFERID`",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "owned",
			Usage:     "list assets held by an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name `ACCOUNT` default is global identity",
				},
				cli.StringFlag{
					Name:  "after, s",
					Value: "",
					Usage: " continue from `NEXT` of the previous reply",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runOwned,
		},
		{
			Name:   "info",
			Usage:  "display proportion-cli status",
			Action: runInfo,
		},
		{
			Name:   "nodeInfo",
			Usage:  "display proportiond status",
			Action: runNodeInfo,
		},
		{
			Name:  "version",
			Usage: "display proportion-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version.Version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		// only want one of these
		network := c.GlobalString("network")
		switch network {
		case "live", "bitmark":
			network = "live"
		case "testing", "test":
			network = "testing"
		case "local", "regression":
			network = "local"
		default:
			return fmt.Errorf("network: %q can only be live/testing/local", network)
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				testnet: network != "live",
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			configuration, err := configuration.GetConfiguration(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  configuration,
				testnet: configuration.TestNet,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
