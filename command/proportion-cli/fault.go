// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/proportiond/fault"
)

// common errors - keep in alphabetic order
const (
	ErrRequiredAssetId     = fault.InvalidError("asset id is required")
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredIdentity    = fault.InvalidError("identity is required")
	ErrRequiredOfferId     = fault.InvalidError("offer id is required")
	ErrRequiredRecipient   = fault.InvalidError("recipient is required")
)
