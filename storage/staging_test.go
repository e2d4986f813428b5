// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"
)

// staged changes must stay invisible to pool reads until commit
func TestStagingVisibility(t *testing.T) {
	store := setup(t)
	defer teardown(t, store)

	p := store.Pool.TestData

	trx, err := store.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.Put(p, []byte("staged"), []byte("pending"))

	// the transaction sees its own write
	d := trx.Get(p, []byte("staged"))
	if !bytes.Equal([]byte("pending"), d) {
		t.Errorf("staged read, got: %q  expected: %q", d, "pending")
	}
	if !trx.Has(p, []byte("staged")) {
		t.Errorf("staged key missing from transaction view")
	}

	// the pool does not
	if nil != p.Get([]byte("staged")) {
		t.Errorf("staged record visible before commit")
	}
	if p.Has([]byte("staged")) {
		t.Errorf("staged key visible before commit")
	}

	// a second transaction cannot open while the first is pending
	_, err = store.NewDBTransaction()
	if nil == err {
		t.Errorf("second transaction begin unexpectedly succeeded")
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}

	d = p.Get([]byte("staged"))
	if !bytes.Equal([]byte("pending"), d) {
		t.Errorf("committed read, got: %q  expected: %q", d, "pending")
	}
}

// aborted changes must never reach the database
func TestStagingAbort(t *testing.T) {
	store := setup(t)
	defer teardown(t, store)

	p := store.Pool.TestData
	p.Put([]byte("keep"), []byte("original"))

	trx, err := store.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.Put(p, []byte("keep"), []byte("changed"))
	trx.Put(p, []byte("extra"), []byte("discard"))
	trx.Abort()

	d := p.Get([]byte("keep"))
	if !bytes.Equal([]byte("original"), d) {
		t.Errorf("aborted write leaked, got: %q  expected: %q", d, "original")
	}
	if nil != p.Get([]byte("extra")) {
		t.Errorf("aborted record reached the database")
	}

	// the store accepts a new transaction after abort
	trx, err = store.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error after abort: %s", err)
	}
	trx.Abort()
}

// a staged delete must hide the committed record from the transaction
func TestStagingDelete(t *testing.T) {
	store := setup(t)
	defer teardown(t, store)

	p := store.Pool.TestData
	p.Put([]byte("doomed"), []byte("data"))

	trx, err := store.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.Delete(p, []byte("doomed"))

	if nil != trx.Get(p, []byte("doomed")) {
		t.Errorf("deleted record still readable inside transaction")
	}
	if trx.Has(p, []byte("doomed")) {
		t.Errorf("deleted key still present inside transaction")
	}

	// still committed as far as the pool is concerned
	if !p.Has([]byte("doomed")) {
		t.Errorf("delete leaked before commit")
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}

	if p.Has([]byte("doomed")) {
		t.Errorf("record survived committed delete")
	}
}

// counts stored through PutN come back through GetN on both views
func TestStagingCounts(t *testing.T) {
	store := setup(t)
	defer teardown(t, store)

	p := store.Pool.TestData

	trx, err := store.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.PutN(p, []byte("n"), 42)

	n, found := trx.GetN(p, []byte("n"))
	if !found {
		t.Fatalf("staged count not found")
	}
	if 42 != n {
		t.Errorf("staged count, got: %d  expected: %d", n, 42)
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}

	n, found = p.GetN([]byte("n"))
	if !found {
		t.Fatalf("committed count not found")
	}
	if 42 != n {
		t.Errorf("committed count, got: %d  expected: %d", n, 42)
	}

	// missing key
	_, found = p.GetN(nonExistantKey)
	if found {
		t.Errorf("unexpectedly found: %q", nonExistantKey)
	}
}

// one transaction spans both databases
func TestStagingBothDatabases(t *testing.T) {
	store := setup(t)
	defer teardown(t, store)

	ledger := store.Pool.TestData
	funds := store.Pool.Balances

	trx, err := store.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}

	trx.Put(ledger, []byte("item"), []byte("ledger side"))
	trx.PutN(funds, []byte("account"), 1000)

	if nil != funds.Get([]byte("account")) {
		t.Errorf("funds record visible before commit")
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}

	d := ledger.Get([]byte("item"))
	if !bytes.Equal([]byte("ledger side"), d) {
		t.Errorf("ledger read, got: %q  expected: %q", d, "ledger side")
	}
	n, found := funds.GetN([]byte("account"))
	if !found || 1000 != n {
		t.Errorf("funds read, got: %d/%v  expected: 1000/true", n, found)
	}
}
