// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test support for the RPC packages
package fixtures

import (
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

// LogCategory - logger tag for RPC tests
const LogCategory = "rpc-test"

const testingDirName = "testing"

var (
	certificateOnce sync.Once
	certificatePEM  string
	keyPEM          string
)

// SetupTestLogger - start logging into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// Certificate - PEM encoded self-signed test certificate
func Certificate() string {
	generate()
	return certificatePEM
}

// Key - PEM encoded private key matching Certificate
func Key() string {
	generate()
	return keyPEM
}

// one throwaway pair per test binary
func generate() {
	certificateOnce.Do(func() {
		validUntil := time.Now().Add(24 * time.Hour)
		cert, key, err := certgen.NewTLSCertPair("rpc test certificate", validUntil, false, nil)
		if nil != err {
			logger.Panicf("generate test certificate error: %s", err)
		}
		certificatePEM = string(cert)
		keyPEM = string(key)
	})
}
