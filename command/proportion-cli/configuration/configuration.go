// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - per-network JSON configuration for proportion-cli
//
// a flat file holding the daemon connection address and the named
// accounts; one file per network so live and testing identities never
// mix
package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
)

// Identity - one named account
//
// PrivateKey is blank for receive-only identities
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	PrivateKey  string `json:"private_key,omitempty"`
}

// Configuration - configuration file data format
//
// Fingerprint optionally pins the daemon certificate, hex SHA3-256 as
// printed by: proportiond fingerprint
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	TestNet         bool                `json:"testnet"`
	Connect         string              `json:"connect"`
	Fingerprint     string              `json:"fingerprint,omitempty"`
	Identities      map[string]Identity `json:"identities"`
}

// GetConfiguration - read and decode the configuration file
func GetConfiguration(filename string) (*Configuration, error) {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{
		Identities: make(map[string]Identity),
	}

	dec := json.NewDecoder(f)
	err = dec.Decode(options)
	if nil != err {
		return nil, err
	}

	return options, nil
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.IdentityNameNotFound
	}

	return &id, nil
}

// Account - find identity for a given name and convert to an account
func (config *Configuration) Account(name string) (*account.Account, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	acc, err := account.AccountFromBase58(id.Account)

	return acc, err
}

// AddIdentity - store an identity together with its private key
func (config *Configuration) AddIdentity(name string, description string, acc string, privateKey string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameAlreadyExists
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     acc,
		PrivateKey:  privateKey,
	}

	return nil
}

// AddReceiveOnlyIdentity - store public-only identity
func (config *Configuration) AddReceiveOnlyIdentity(name string, description string, acc string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameAlreadyExists
	}

	_, err := account.AccountFromBase58(acc)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     acc,
	}

	return nil
}
