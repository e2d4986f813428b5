// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/registry"
	"github.com/bitmark-inc/proportiond/rpc/ratelimit"
	"github.com/bitmark-inc/proportiond/trading"
)

const (
	rateLimitAssets = 200
	rateBurstAssets = 100
)

// Assets - type for the RPC
type Assets struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	Engine         *trading.Engine
	Registry       *registry.Registry
	IsTestingChain func() bool
	ReadOnly       bool
}

func New(log *logger.L, engine *trading.Engine, r *registry.Registry, isTestingChain func() bool, readOnly bool) *Assets {
	return &Assets{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		Engine:         engine,
		Registry:       r,
		IsTestingChain: isTestingChain,
		ReadOnly:       readOnly,
	}
}

// Asset creation
// --------------

// CreateArguments - arguments for RPC request
type CreateArguments struct {
	Creator    *account.Account `json:"creator"` // base58
	Metadata   string           `json:"metadata"`
	TotalUnits uint64           `json:"totalUnits,string"`
}

// CreateReply - results from create RPC request
type CreateReply struct {
	AssetId record.AssetIdentifier `json:"assetId"`
}

// Create - register a new asset and credit its creator
func (assets *Assets) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if assets.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := assets.Log
	log.Infof("Assets.Create: %+v", arguments)

	if nil == arguments || nil == arguments.Creator {
		return fault.InvalidItem
	}

	if arguments.Creator.IsTesting() != assets.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	assetId, err := assets.Engine.CreateAsset(arguments.Creator, arguments.Metadata, arguments.TotalUnits)
	if nil != err {
		return err
	}

	reply.AssetId = assetId
	return nil
}

// Asset lookup
// ------------

// GetArguments - arguments for RPC request
type GetArguments struct {
	AssetId record.AssetIdentifier `json:"assetId"`
}

// GetReply - results from get RPC request
type GetReply struct {
	AssetId record.AssetIdentifier `json:"assetId"`
	Asset   *record.Asset          `json:"asset"`
}

// Get - fetch one asset record
func (assets *Assets) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}

	log := assets.Log
	log.Infof("Assets.Get: %+v", arguments)

	if nil == arguments {
		return fault.InvalidItem
	}

	asset, err := assets.Registry.Read(arguments.AssetId)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Asset = asset
	return nil
}
