// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - run a Lua chunk and decode the table it returns
//
// the daemon configuration is a small Lua program rather than static
// data, so one file can branch on the chain, derive paths from arg[0]
// or os.getenv and finally return a single table holding the whole
// configuration
package configuration
