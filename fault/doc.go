// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - the single instance of every error value
//
// each error is a typed constant so callers compare with == rather
// than matching message text, and the type carries the class of the
// error (exists, invalid, length, not found, process, record) for the
// IsErr* tests
package fault
