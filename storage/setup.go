// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"
)

// Pools - the set of pools held by one store
//
// pool keys are documented in doc.go
type Pools struct {
	Assets      *PoolHandle `prefix:"A" database:"ledger"`
	Holdings    *PoolHandle `prefix:"H" database:"ledger"`
	OwnerAssets *PoolHandle `prefix:"W" database:"ledger"`
	Offers      *PoolHandle `prefix:"O" database:"ledger"`
	AssetOffers *PoolHandle `prefix:"X" database:"ledger"`
	OfferCounts *PoolHandle `prefix:"N" database:"ledger"`
	TestData    *PoolHandle `prefix:"T" database:"ledger"`
	Balances    *PoolHandle `prefix:"B" database:"funds"`
}

// Store - all state for one pair of ledger and funds databases
type Store struct {
	Pool Pools

	ledgerDB *leveldb.DB
	fundsDB  *leveldb.DB
	trx      Transaction
}

// key of the version record in each database
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentLedgerDBVersion = 0x100
	currentFundsDBVersion  = 0x100
)

// Initialise - open the databases and build the pool handles
//
// the database parameter is a path prefix, the files are created as
// "<database>-ledger.leveldb" and "<database>-funds.leveldb"
func Initialise(database string, readOnly bool) (*Store, error) {

	ledgerDB, err := openDB(database+"-ledger.leveldb", currentLedgerDBVersion, readOnly)
	if nil != err {
		return nil, err
	}

	fundsDB, err := openDB(database+"-funds.leveldb", currentFundsDBVersion, readOnly)
	if nil != err {
		ledgerDB.Close()
		return nil, err
	}

	store := &Store{
		ledgerDB: ledgerDB,
		fundsDB:  fundsDB,
	}

	ledgerAccess := newDA(ledgerDB, new(leveldb.Batch), newCache())
	fundsAccess := newDA(fundsDB, new(leveldb.Batch), newCache())

	// this will be a struct of struct {prefix, limit, dataAccess} handles
	poolType := reflect.TypeOf(store.Pool)
	poolValue := reflect.ValueOf(&store.Pool).Elem()

	// create the pool handles
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte{prefix + 1}

		var access Access
		switch databaseTag := fieldInfo.Tag.Get("database"); databaseTag {
		case "ledger":
			access = ledgerAccess
		case "funds":
			access = fundsAccess
		default:
			logger.Panicf("pool: %v has invalid database: %q", fieldInfo, databaseTag)
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	store.trx = newTransaction([]Access{ledgerAccess, fundsAccess})

	return store, nil
}

// Finalise - close the databases
func (store *Store) Finalise() {
	if nil != store.ledgerDB {
		store.ledgerDB.Close()
		store.ledgerDB = nil
	}
	if nil != store.fundsDB {
		store.fundsDB.Close()
		store.fundsDB = nil
	}
	store.Pool = Pools{}
}

// NewDBTransaction - begin staging changes
//
// only one transaction can be open on a store at a time, the error
// reports an attempt to open a second one
func (store *Store) NewDBTransaction() (Transaction, error) {
	err := store.trx.Begin()
	if nil != err {
		return nil, err
	}
	return store.trx, nil
}

// open the file and check or create its version record
//
// a read-only open refuses to create a missing database
func openDB(name string, currentVersion int, readOnly bool) (*leveldb.DB, error) {

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case version == currentVersion:
		// ok

	case 0 == version:
		// a fresh database
		if readOnly {
			db.Close()
			return nil, fmt.Errorf("database: %q is empty, cannot open read-only", name)
		}
		err = putVersion(db, currentVersion)
		if nil != err {
			db.Close()
			return nil, err
		}

	default:
		db.Close()
		return nil, fmt.Errorf("database: %q version: 0x%x  expected: 0x%x", name, version, currentVersion)
	}

	return db, nil
}

// read the version record, zero if absent
func getVersion(db *leveldb.DB) (int, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if 4 != len(value) {
		return 0, fmt.Errorf("incompatible database version length: %d", len(value))
	}
	return int(binary.BigEndian.Uint32(value)), nil
}

// write the version record
func putVersion(db *leveldb.DB, version int) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.Put(versionKey, value, nil)
}
