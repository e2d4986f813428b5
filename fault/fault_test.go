// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/proportiond/fault"
)

var (
	errExistsOne   = fault.ExistsError("exists one")
	errExistsTwo   = fault.ExistsError("exists two")
	errInvalidOne  = fault.InvalidError("invalid one")
	errInvalidTwo  = fault.InvalidError("invalid two")
	errLengthOne   = fault.LengthError("length one")
	errLengthTwo   = fault.LengthError("length two")
	errNotFoundOne = fault.NotFoundError("not found one")
	errNotFoundTwo = fault.NotFoundError("not found two")
	errProcessOne  = fault.ProcessError("process one")
	errProcessTwo  = fault.ProcessError("process two")
	errRecordOne   = fault.RecordError("record one")
	errRecordTwo   = fault.RecordError("record two")
)

// test that each class is disjoint from all of the others
func TestClassification(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
	}{
		{errExistsOne, true, false, false, false, false, false},
		{errExistsTwo, true, false, false, false, false, false},
		{errInvalidOne, false, true, false, false, false, false},
		{errInvalidTwo, false, true, false, false, false, false},
		{errLengthOne, false, false, true, false, false, false},
		{errLengthTwo, false, false, true, false, false, false},
		{errNotFoundOne, false, false, false, true, false, false},
		{errNotFoundTwo, false, false, false, true, false, false},
		{errProcessOne, false, false, false, false, true, false},
		{errProcessTwo, false, false, false, false, true, false},
		{errRecordOne, false, false, false, false, false, true},
		{errRecordTwo, false, false, false, false, false, true},
		{fault.AssetAlreadyExists, true, false, false, false, false, false},
		{fault.AssetNotFound, false, false, false, true, false, false},
		{fault.InsufficientUnits, false, true, false, false, false, false},
		{fault.MetadataTooLong, false, false, true, false, false, false},
		{fault.NotOfferPack, false, false, false, false, false, true},
		{fault.PaymentFailed, false, false, false, false, true, false},
	}

	for i, item := range errorList {
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: exists misclassification of: %s", i, item.err)
		}
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: invalid misclassification of: %s", i, item.err)
		}
		if fault.IsErrLength(item.err) != item.length {
			t.Errorf("%d: length misclassification of: %s", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.notFound {
			t.Errorf("%d: not found misclassification of: %s", i, item.err)
		}
		if fault.IsErrProcess(item.err) != item.process {
			t.Errorf("%d: process misclassification of: %s", i, item.err)
		}
		if fault.IsErrRecord(item.err) != item.record {
			t.Errorf("%d: record misclassification of: %s", i, item.err)
		}
	}
}

// error comparison must be by instance and not by message text
func TestInstanceComparison(t *testing.T) {
	same := fault.InvalidError("invalid one")
	if same != errInvalidOne {
		t.Errorf("same class and text expected to compare equal")
	}
	other := fault.ProcessError("invalid one")
	if error(other) == error(errInvalidOne) {
		t.Errorf("different classes expected to compare unequal")
	}
}
