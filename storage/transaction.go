// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Transaction - staged mutations over the databases of one store
//
// changes made through a transaction stay invisible to pool handles
// and cursors until Commit writes them out in one batch per database,
// Abort discards all of them
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
}

type transactionData struct {
	sync.Mutex
	access []Access
}

func newTransaction(access []Access) Transaction {
	return &transactionData{
		access: access,
	}
}

// Begin - mark all underlying databases as in use
//
// returns an error if any database already has a transaction open
func (t *transactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	begun := make([]Access, 0, len(t.access))
	for _, access := range t.access {
		err := access.Begin()
		if nil != err {
			for _, a := range begun {
				a.Abort()
			}
			return err
		}
		begun = append(begun, access)
	}
	return nil
}

// Put - stage a key/value pair for the pool
func (t *transactionData) Put(p *PoolHandle, key []byte, value []byte) {
	if nil == p.dataAccess {
		logger.Panic("transaction.Put nil data access")
		return
	}
	p.dataAccess.Put(p.prefixKey(key), value)
}

// PutN - stage a uint64 value as 8 byte big endian
func (t *transactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(p, key, buffer)
}

// Delete - stage removal of a key from the pool
func (t *transactionData) Delete(p *PoolHandle, key []byte) {
	if nil == p.dataAccess {
		logger.Panic("transaction.Delete nil data access")
		return
	}
	p.dataAccess.Delete(p.prefixKey(key))
}

// Get - read a value, seeing staged changes first
//
// this returns the actual element - copy the result if it must be preserved
func (t *transactionData) Get(p *PoolHandle, key []byte) []byte {
	if nil == p.dataAccess {
		return nil
	}
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

// GetN - read a staged or committed record and decode the first
// 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (t *transactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < uint64ByteSize {
		logger.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:uint64ByteSize])
	return n, true
}

// Has - check if a key exists, seeing staged changes first
func (t *transactionData) Has(p *PoolHandle, key []byte) bool {
	if nil == p.dataAccess {
		return false
	}
	value, err := p.dataAccess.Has(p.prefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return value
}

// Commit - write all staged changes, one batch per database
func (t *transactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.access {
		err := access.Commit()
		if nil != err {
			return err
		}
	}
	return nil
}

// Abort - discard all staged changes
func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.access {
		access.Abort()
	}
}

// InUse - check if any underlying database has a transaction open
func (t *transactionData) InUse() bool {
	for _, access := range t.access {
		if access.InUse() {
			return true
		}
	}
	return false
}
