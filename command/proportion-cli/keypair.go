// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/proportiond/account"
)

// RawKeyPair - key pair in printable form
type RawKeyPair struct {
	Account    string `json:"account"`
	PrivateKey string `json:"private_key"`
}

// makeRawKeyPair - generate a new ed25519 account for a network
func makeRawKeyPair(testnet bool) (*RawKeyPair, error) {

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}

	acc := &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      testnet,
			PublicKey: publicKey,
		},
	}

	return &RawKeyPair{
		Account:    acc.String(),
		PrivateKey: hex.EncodeToString(privateKey),
	}, nil
}
