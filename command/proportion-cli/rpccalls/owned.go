// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/rpc/owner"
)

// OwnedData - parameters for an ownership listing
//
// After is the Next value of the previous reply, nil for the first
// page
type OwnedData struct {
	Owner *account.Account
	After []byte
	Count int
}

// GetOwned - list the assets an account holds units of
func (client *Client) GetOwned(ownedConfig *OwnedData) (*owner.OwnedReply, error) {

	ownedArgs := owner.OwnedArguments{
		Owner: ownedConfig.Owner,
		After: ownedConfig.After,
		Count: ownedConfig.Count,
	}

	client.printJson("Owned Request", ownedArgs)

	reply := &owner.OwnedReply{}
	err := client.client.Call("Owner.Owned", ownedArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Owned Reply", reply)

	return reply, nil
}
