// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/payment"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/certificate"
	"github.com/bitmark-inc/proportiond/storage"
	"github.com/bitmark-inc/proportiond/trading"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create the certificate files; these commands
// cannot access any internal database or states or the configuration
// file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "fingerprint", "f":
		return false // defer processing until configuration is read

	case "start", "run":
		return false // continue processing

	case "audit", "a", "balance", "bal", "holders", "hld":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  fingerprint                (f)      - display the certificate fingerprint for client pinning\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  audit                      (a)      - check unit conservation for every asset\n")
		fmt.Printf("\n")

		fmt.Printf("  balance ACCOUNT            (bal)    - display the currency balance of an account\n")
		fmt.Printf("\n")

		fmt.Printf("  holders ASSET-ID           (hld)    - display every holding of an asset and their sum\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "fingerprint", "f":
		rpc := options.ClientRPC

		keypair, err := tls.X509KeyPair([]byte(rpc.Certificate), []byte(rpc.PrivateKey))
		if nil != err {
			exitwithstatus.Message("error: cannot decode certificate  error: %s", err)
		}
		fmt.Printf("rpc fingerprint: %x\n", certificate.Fingerprint(keypair.Certificate[0]))

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger and funds databases are open so these commands can
// read and check them
func processDataCommand(log *logger.L, arguments []string, engine *trading.Engine, l *ledger.Ledger, store *storage.Store) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "audit", "a":
		err := engine.Audit()
		if nil != err {
			exitwithstatus.Message("audit failed: %s", err)
		}
		fmt.Printf("audit passed\n")

	case "balance", "bal":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing account argument")
		}
		acct, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in account: %s", err)
		}
		fmt.Printf("%s: %d\n", acct, payment.Balance(store, acct))

	case "holders", "hld":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing asset id argument")
		}
		var assetId record.AssetIdentifier
		err := assetId.UnmarshalText([]byte(arguments[0]))
		if nil != err {
			exitwithstatus.Message("error in asset id: %s", err)
		}

		total := uint64(0)
		var after []byte
	page_loop:
		for {
			entries, next, err := l.Holders(assetId, after, 100)
			if nil != err {
				exitwithstatus.Message("holders error: %s", err)
			}
			if 0 == len(entries) {
				break page_loop
			}
			for _, entry := range entries {
				fmt.Printf("%s: %d units  locked: %d\n", entry.Owner, entry.Holding.Units, entry.Holding.LockedUnits)
				total += entry.Holding.Units
			}
			after = next
		}
		fmt.Printf("total held: %d\n", total)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
