// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command line interface to the proportiond JSON-RPC service
//
// typical first use on a local network:
//
//   proportion-cli -n local -i alice setup -c 127.0.0.1:2130 -d "first account"
//   proportion-cli -n local create -m "deed:12 example street" -q 100
//   proportion-cli -n local offer -a ASSETID -q 25 -p 10
//   proportion-cli -n local -i bob buy -o OFFERID -q 5
//
// one configuration file is kept per network so live and testing
// identities never mix
package main
