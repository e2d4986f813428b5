// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - settle offer prices in external currency
//
// the trading engine never touches buyer or seller funds itself, it
// asks a Payer to move the price and treats any refusal as a payment
// failure
package payment

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/proportiond/account"
	"github.com/bitmark-inc/proportiond/fault"
	"github.com/bitmark-inc/proportiond/storage"
)

// Payer - move external currency from a buyer to a seller
//
// Pay either moves the full amount or returns an error leaving both
// sides untouched
type Payer interface {
	Pay(buyer *account.Account, seller *account.Account, amount uint64) error
}

// available payer modes
const (
	ModeBalances = "balances"
	ModeAuto     = "auto"
)

// Configuration - daemon configuration of payment settlement
//
// Balances are only written for accounts with no balance record yet
type Configuration struct {
	Mode     string            `gluamapper:"mode" json:"mode"`
	Balances map[string]uint64 `gluamapper:"balances" json:"balances"`
}

// NewPayer - create the payer selected by the daemon configuration
func NewPayer(mode string, store *storage.Store) (Payer, error) {
	switch mode {
	case ModeBalances:
		return &BalancePayer{store: store}, nil
	case ModeAuto:
		return &AutoPayer{}, nil
	default:
		return nil, fault.InvalidPaymentMode
	}
}

// BalancePayer - settle against currency balances in the funds database
type BalancePayer struct {
	store *storage.Store
}

// Pay - move the amount between balance records
//
// all checks precede both writes so a refused payment leaves both
// balances untouched; the buyer is debited before the seller is
// credited so that a crash between the two writes can never create
// funds
func (p *BalancePayer) Pay(buyer *account.Account, seller *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}

	balances := p.store.Pool.Balances

	buyerBalance, _ := balances.GetN(buyer.Bytes())
	if buyerBalance < amount {
		return fault.InsufficientFunds
	}

	// a buyer paying themselves nets to zero
	if bytes.Equal(buyer.Bytes(), seller.Bytes()) {
		return nil
	}

	sellerBalance, _ := balances.GetN(seller.Bytes())
	if sellerBalance+amount < sellerBalance {
		return fmt.Errorf("balance overflow for: %s", seller)
	}

	putBalance(balances, buyer, buyerBalance-amount)
	putBalance(balances, seller, sellerBalance+amount)

	return nil
}

// AutoPayer - every payment succeeds
//
// for private networks where currency settlement happens off the books
type AutoPayer struct{}

// Pay - accept the payment unconditionally
func (p *AutoPayer) Pay(buyer *account.Account, seller *account.Account, amount uint64) error {
	return nil
}

// Balance - committed balance of one account, zero if never seeded
func Balance(store *storage.Store, owner *account.Account) uint64 {
	n, _ := store.Pool.Balances.GetN(owner.Bytes())
	return n
}

// Seed - write initial balances for accounts that have none yet
//
// accounts with an existing balance record keep it, so restarting the
// daemon does not roll anyone's funds back to the configured value
func Seed(store *storage.Store, balances map[string]uint64) error {
	for owner, amount := range balances {
		acct, err := account.AccountFromBase58(owner)
		if nil != err {
			return err
		}
		if store.Pool.Balances.Has(acct.Bytes()) {
			continue
		}
		putBalance(store.Pool.Balances, acct, amount)
	}
	return nil
}

func putBalance(pool *storage.PoolHandle, owner *account.Account, amount uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, amount)
	pool.Put(owner.Bytes(), buffer)
}
