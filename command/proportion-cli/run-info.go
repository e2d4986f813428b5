// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"

	"github.com/urfave/cli"
)

type infoIdentity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
}

type infoConfiguration struct {
	DefaultIdentity string         `json:"default_identity"`
	TestNet         bool           `json:"testnet"`
	Connect         string         `json:"connect"`
	Identities      []infoIdentity `json:"identities"`
}

// private keys are never displayed
func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	info := infoConfiguration{
		DefaultIdentity: m.config.DefaultIdentity,
		TestNet:         m.config.TestNet,
		Connect:         m.config.Connect,
		Identities:      make([]infoIdentity, 0, len(m.config.Identities)),
	}

	names := make([]string, 0, len(m.config.Identities))
	for name := range m.config.Identities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id := m.config.Identities[name]
		info.Identities = append(info.Identities, infoIdentity{
			Name:        name,
			Description: id.Description,
			Account:     id.Account,
		})
	}

	printJson(m.w, info)
	return nil
}
