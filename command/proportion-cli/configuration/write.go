// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"io/ioutil"
	"os"
)

// Save - write an updated configuration to its file
//
// keeps one backup of the previous contents
func Save(filename string, configuration *Configuration) error {

	b, err := json.MarshalIndent(configuration, "", "  ")
	if nil != err {
		return err
	}

	tempFile := filename + ".new"
	previousFile := filename + ".bk"

	os.Remove(tempFile)

	err = ioutil.WriteFile(tempFile, append(b, '\n'), 0600)
	if nil != err {
		return err
	}

	err = os.Remove(previousFile)
	if nil != err && !os.IsNotExist(err) {
		return err
	}

	err = os.Rename(filename, previousFile)
	if nil != err && !os.IsNotExist(err) {
		return err
	}

	err = os.Rename(tempFile, filename)
	if nil != err {
		return err
	}

	return nil
}
