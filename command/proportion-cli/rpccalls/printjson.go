// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"
	"fmt"
)

// printJson - dump a request or reply on the verbose stream
func (client *Client) printJson(title string, message interface{}) error {

	if !client.verbose {
		return nil
	}

	if "" != title {
		fmt.Fprintf(client.handle, "%s:\n", title)
	}
	encoder := json.NewEncoder(client.handle)
	encoder.SetIndent("", "  ")
	return encoder.Encode(message)
}
