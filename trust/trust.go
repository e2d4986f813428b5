// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trust - optional approval of selling accounts
//
// the RPC layer consults an approver before accepting a sell offer;
// the trading operations themselves never do, so a node without an
// approved list behaves exactly as one running AllowAll
package trust

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
)

// Approver - decide whether an account may offer shares
type Approver interface {
	Approve(seller *account.Account) error
}

// AllowAll - approve every account
type AllowAll struct{}

// Approve - always succeeds
func (AllowAll) Approve(seller *account.Account) error {
	return nil
}

// FileList - approved accounts loaded from a file
//
// one Base58 account per line, blank lines and '#' comments are
// skipped; the file is reloaded whenever it changes on disk
type FileList struct {
	sync.RWMutex

	log      *logger.L
	filename string
	approved map[string]struct{}
	watcher  *fsnotify.Watcher
}

// NewFileList - load an approved list and prepare its watcher
//
// the returned list is a background.Process; Run must be started for
// live reloading to happen
func NewFileList(filename string) (*FileList, error) {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	// watch the directory so an editor's rename-replace still counts
	// as a change to the file
	err = watcher.Add(filepath.Dir(filename))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	list := &FileList{
		log:      logger.New("trust"),
		filename: filename,
		approved: map[string]struct{}{},
		watcher:  watcher,
	}

	err = list.load()
	if nil != err {
		watcher.Close()
		return nil, err
	}
	return list, nil
}

// Approve - check a seller against the loaded list
func (list *FileList) Approve(seller *account.Account) error {
	list.RLock()
	defer list.RUnlock()

	if _, ok := list.approved[seller.String()]; !ok {
		return fault.AccountNotApproved
	}
	return nil
}

// read the file into a fresh map
//
// a broken line is logged and skipped so one typo cannot lock every
// seller out
func (list *FileList) load() error {

	f, err := os.Open(list.filename)
	if nil != err {
		return err
	}
	defer f.Close()

	approved := map[string]struct{}{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if "" == line || strings.HasPrefix(line, "#") {
			continue
		}
		acct, err := account.AccountFromBase58(line)
		if nil != err {
			list.log.Warnf("skip unparseable account: %q  error: %s", line, err)
			continue
		}
		approved[acct.String()] = struct{}{}
	}
	err = scanner.Err()
	if nil != err {
		return err
	}

	list.Lock()
	list.approved = approved
	list.Unlock()

	list.log.Infof("loaded %d approved accounts from: %s", len(approved), list.filename)
	return nil
}

// Run - reload the list whenever its file changes
func (list *FileList) Run(args interface{}, shutdown <-chan struct{}) {

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-list.watcher.Events:
			if filepath.Base(event.Name) != filepath.Base(list.filename) {
				continue loop
			}
			if 0 == event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod) {
				continue loop
			}
			err := list.load()
			if nil != err {
				// keep serving the previous list
				list.log.Errorf("reload failed: %s", err)
			}

		case err := <-list.watcher.Errors:
			list.log.Errorf("watcher error: %s", err)
		}
	}

	list.watcher.Close()
}
