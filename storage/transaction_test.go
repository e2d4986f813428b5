// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/proportiond/storage/mocks"
)

func setupTestTransaction(t *testing.T) (Transaction, *mocks.MockAccess, *gomock.Controller) {
	ctl := gomock.NewController(t)
	mock := mocks.NewMockAccess(ctl)

	trx := newTransaction([]Access{mock})
	return trx, mock, ctl
}

func testPoolHandle(access Access) *PoolHandle {
	return &PoolHandle{
		prefix:     'T',
		limit:      []byte{'T' + 1},
		dataAccess: access,
	}
}

func TestBegin(t *testing.T) {
	tx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Begin().Return(nil).Times(1)

	err := tx.Begin()
	assert.Equal(t, nil, err, "first Begin should not return any error")

	mock.EXPECT().Begin().Return(fmt.Errorf("batch already in use")).Times(1)

	err = tx.Begin()
	assert.NotEqual(t, nil, err, "second Begin should return error")
}

func TestBeginAbortsEarlierDatabases(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	first := mocks.NewMockAccess(ctl)
	second := mocks.NewMockAccess(ctl)

	tx := newTransaction([]Access{first, second})

	first.EXPECT().Begin().Return(nil).Times(1)
	second.EXPECT().Begin().Return(fmt.Errorf("batch already in use")).Times(1)
	first.EXPECT().Abort().Times(1)

	err := tx.Begin()
	assert.NotEqual(t, nil, err, "Begin should propagate the error")
}

func TestTransactionPut(t *testing.T) {
	tx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	p := testPoolHandle(mock)

	mock.EXPECT().Put([]byte("Tkey"), []byte("value")).Times(1)

	tx.Put(p, []byte("key"), []byte("value"))
}

func TestTransactionPutN(t *testing.T) {
	tx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	p := testPoolHandle(mock)

	mock.EXPECT().Put([]byte("Tcount"), []byte{0, 0, 0, 0, 0, 0, 0x01, 0x02}).Times(1)

	tx.PutN(p, []byte("count"), 0x0102)
}

func TestTransactionDelete(t *testing.T) {
	tx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	p := testPoolHandle(mock)

	mock.EXPECT().Delete([]byte("Tkey")).Times(1)

	tx.Delete(p, []byte("key"))
}

func TestTransactionGetN(t *testing.T) {
	tx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	p := testPoolHandle(mock)

	mock.EXPECT().Get([]byte("Tcount")).Return([]byte{0, 0, 0, 0, 0, 0, 0, 0x07}, nil).Times(1)

	n, found := tx.GetN(p, []byte("count"))
	assert.Equal(t, true, found, "record should be found")
	assert.Equal(t, uint64(7), n, "wrong decoded count")
}

func TestTransactionCommit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	first := mocks.NewMockAccess(ctl)
	second := mocks.NewMockAccess(ctl)

	tx := newTransaction([]Access{first, second})

	first.EXPECT().Commit().Return(nil).Times(1)
	second.EXPECT().Commit().Return(nil).Times(1)

	err := tx.Commit()
	assert.Equal(t, nil, err, "Commit should not return any error")
}

func TestTransactionAbort(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	first := mocks.NewMockAccess(ctl)
	second := mocks.NewMockAccess(ctl)

	tx := newTransaction([]Access{first, second})

	first.EXPECT().Abort().Times(1)
	second.EXPECT().Abort().Times(1)

	tx.Abort()
}

func TestTransactionInUse(t *testing.T) {
	tx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().InUse().Return(false).Times(1)
	assert.Equal(t, false, tx.InUse(), "idle transaction reported in use")

	mock.EXPECT().InUse().Return(true).Times(1)
	assert.Equal(t, true, tx.InUse(), "open transaction reported idle")
}
