// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/proportiond/storage"
)

// all test databases share this prefix
const databaseFileName = "test"

// a key that no test ever writes
var nonExistantKey = []byte("/nonexistant")

// remove the database pair left by a previous run
func removeFiles() {
	os.RemoveAll(databaseFileName + "-ledger.leveldb")
	os.RemoveAll(databaseFileName + "-funds.leveldb")
}

// open a fresh store for one test
func setup(t *testing.T) *storage.Store {
	removeFiles()
	store, err := storage.Initialise(databaseFileName, false)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return store
}

// close the store and remove its files
func teardown(t *testing.T, store *storage.Store) {
	store.Finalise()
	removeFiles()
}
