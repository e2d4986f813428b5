// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/background"
	"github.com/bitmark-inc/proportiond/counter"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/offerbook"
	"github.com/bitmark-inc/proportiond/payment"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/rpc/certificate"
	"github.com/bitmark-inc/proportiond/rpc/listeners"
	"github.com/bitmark-inc/proportiond/rpc/server"
	"github.com/bitmark-inc/proportiond/storage"
	"github.com/bitmark-inc/proportiond/trading"
	"github.com/bitmark-inc/proportiond/trust"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("read only: %v", theConfiguration.ReadOnly)
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.Initialise(theConfiguration.Database.Name, theConfiguration.ReadOnly)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Finalise()

	// write initial currency balances, existing records are kept
	if !theConfiguration.ReadOnly && len(theConfiguration.Payment.Balances) > 0 {
		log.Info("seed balances")
		err = payment.Seed(store, theConfiguration.Payment.Balances)
		if nil != err {
			log.Criticalf("balance seed error: %s", err)
			exitwithstatus.Message("balance seed error: %s", err)
		}
	}

	payer, err := payment.NewPayer(theConfiguration.Payment.Mode, store)
	if nil != err {
		log.Criticalf("payment initialise error: %s", err)
		exitwithstatus.Message("payment initialise error: %s", err)
	}
	log.Infof("payment mode: %s", theConfiguration.Payment.Mode)

	// the ledger components
	r := registry.New(store)
	l := ledger.New(store)
	b := offerbook.New(store, l)

	engine := trading.New(store, r, l, b, payer, newLoggingNotifier())

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, engine, l, store) {
		return
	}

	// refuse to serve a ledger that does not balance
	if theConfiguration.Audit {
		log.Info("audit: checking unit conservation")
		err = engine.Audit()
		if nil != err {
			log.Criticalf("audit error: %s", err)
			exitwithstatus.Message("audit error: %s", err)
		}
		log.Info("audit: passed")
	}

	// optional approved seller list
	var approver trust.Approver // nil allows all sellers
	var processes background.Processes
	if "" != theConfiguration.Trust.File {
		log.Infof("approved sellers from: %s", theConfiguration.Trust.File)
		list, err := trust.NewFileList(theConfiguration.Trust.File)
		if nil != err {
			log.Criticalf("trust initialise error: %s", err)
			exitwithstatus.Message("trust initialise error: %s", err)
		}
		approver = list
		processes = append(processes, list)
	}

	// start background processes before serving
	bg := background.Start(processes, nil)
	defer bg.Stop()

	// attach all services and open the listener
	log.Info("initialise rpc")
	rpcLog := logger.New("rpc")
	var connectionCount counter.Counter

	s := server.Create(
		rpcLog,
		version,
		theConfiguration.Chain,
		&connectionCount,
		engine,
		r,
		l,
		b,
		approver,
		theConfiguration.ReadOnly,
	)

	tlsConfiguration, fingerprint, err := certificate.Get(rpcLog, "client_rpc", theConfiguration.ClientRPC.Certificate, theConfiguration.ClientRPC.PrivateKey)
	if nil != err {
		log.Criticalf("certificate error: %s", err)
		exitwithstatus.Message("certificate error: %s", err)
	}

	rpcListener, err := listeners.NewRPC(
		&theConfiguration.ClientRPC,
		rpcLog,
		&connectionCount,
		s,
		tlsConfiguration,
		fingerprint,
	)
	if nil != err {
		log.Criticalf("rpc create error: %s", err)
		exitwithstatus.Message("rpc create error: %s", err)
	}

	err = rpcListener.Serve()
	if nil != err {
		log.Criticalf("rpc serve error: %s", err)
		exitwithstatus.Message("rpc serve error: %s", err)
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
