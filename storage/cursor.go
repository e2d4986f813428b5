// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/proportiond/fault"
)

// FetchCursor - remembers the position of an incremental fetch over a pool
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {

	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - reposition the cursor to a key inside the pool
//
// a nil key rewinds to the start of the pool
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// copy one entry out of the iterator's own buffers, which are only
// valid until the next call to Next, stripping the pool prefix byte
func copyElement(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-1)
	copy(dataKey, key[1:])

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}

// move the range start so the next fetch begins strictly after a key
//
// the smallest possible following key is that key with a zero byte
// appended
func (cursor *FetchCursor) advance(lastKey []byte) {
	start := make([]byte, 0, len(lastKey)+2)
	start = append(start, cursor.pool.prefix)
	start = append(start, lastKey...)
	cursor.maxRange.Start = append(start, 0x00)
}

// Fetch - return some elements starting from the current cursor position
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	if nil == cursor.pool.dataAccess {
		return nil, nil
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.maxRange)

	results := make([]Element, 0, count)
loop:
	for iter.Next() {
		results = append(results, copyElement(iter.Key(), iter.Value()))
		if len(results) >= count {
			break loop
		}
	}
	iter.Release()
	err := iter.Error()

	if n := len(results); n > 0 {
		cursor.advance(results[n-1].Key)
	}
	return results, err
}

// Map - run a function on all elements from the cursor position to the
// end of the pool, stopping on the first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}

	if nil == cursor.pool.dataAccess {
		return nil
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.maxRange)

	var err error
loop:
	for iter.Next() {
		e := copyElement(iter.Key(), iter.Value())
		err = f(e.Key, e.Value)
		if nil != err {
			break loop
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
