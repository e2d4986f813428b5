// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a LevelDB database for the unit ledger and a separate
// LevelDB database for account funds, with a single prefix byte to
// separate individual pools of records
//
// ledger database
//
//	A<asset id>             - packed asset record
//	H<asset id><account>    - packed holding record
//	W<account><asset id>    - presence marker for owner index
//	O<offer id>             - packed offer record
//	X<asset id><offer id>   - presence marker for open offers on an asset
//	N<account>              - count of offers ever opened by an account
//	T<key>                  - test data, never created outside unit tests
//
// funds database
//
//	B<account>              - balance as 8 byte big endian
//
// the zero key of each database carries a version record:
//
//	00 56 45 52 53 49 4f 4e  - "VERSION"
//
// mutations are normally staged through a Transaction: writes go to a
// batch and a lookaside cache so the transaction sees its own changes,
// while pool handles and cursors only ever read committed records.
// Commit applies the batch in a single LevelDB write.
package storage
