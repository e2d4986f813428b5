// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/record"
	"github.com/bitmark-inc/proportiond/rpc/assets"
)

// AssetData - parameters for an asset creation request
type AssetData struct {
	Creator    *account.Account
	Metadata   string
	TotalUnits uint64
}

// CreateAsset - register a new asset
func (client *Client) CreateAsset(assetConfig *AssetData) (*assets.CreateReply, error) {

	createArgs := assets.CreateArguments{
		Creator:    assetConfig.Creator,
		Metadata:   assetConfig.Metadata,
		TotalUnits: assetConfig.TotalUnits,
	}

	client.printJson("Create Request", createArgs)

	reply := &assets.CreateReply{}
	err := client.client.Call("Assets.Create", createArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Create Reply", reply)

	return reply, nil
}

// GetAsset - fetch one asset record
func (client *Client) GetAsset(assetId record.AssetIdentifier) (*assets.GetReply, error) {

	getArgs := assets.GetArguments{
		AssetId: assetId,
	}

	client.printJson("Asset Request", getArgs)

	reply := &assets.GetReply{}
	err := client.client.Call("Assets.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Asset Reply", reply)

	return reply, nil
}
