// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package owner

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/ledger"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/ratelimit"
)

const (
	MaximumOwnedCount = 100

	rateLimitOwner = 200
	rateBurstOwner = 100
)

// Owner - type for the RPC
type Owner struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Ledger
}

func New(log *logger.L, l *ledger.Ledger) *Owner {
	return &Owner{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOwner, rateBurstOwner),
		Ledger:  l,
	}
}

// OwnedArguments - arguments for RPC request
//
// After is the opaque cursor from a previous reply, nil for the first page
type OwnedArguments struct {
	Owner *account.Account `json:"owner"` // base58
	After []byte           `json:"after"` // base64
	Count int              `json:"count"`
}

// OwnedReply - results from owned RPC request
//
// Next is the position to pass as After on the following call, nil
// once a page comes back empty
type OwnedReply struct {
	Assets []record.AssetIdentifier `json:"assets"`
	Next   []byte                   `json:"next"` // base64
}

// Owned - list the assets an account currently holds units of
func (owner *Owner) Owned(arguments *OwnedArguments, reply *OwnedReply) error {

	if err := ratelimit.LimitN(owner.Limiter, arguments.Count, MaximumOwnedCount); nil != err {
		return err
	}

	log := owner.Log
	log.Infof("Owner.Owned: %+v", arguments)

	if nil == arguments.Owner {
		return fault.InvalidItem
	}

	assets, next, err := owner.Ledger.OwnedAssets(arguments.Owner, arguments.After, arguments.Count)
	if nil != err {
		return err
	}

	reply.Assets = assets
	reply.Next = next
	return nil
}
