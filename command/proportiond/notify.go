// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/proportiond/trading"
)

// write each committed trading event to its own log channel
type loggingNotifier struct {
	log *logger.L
}

func newLoggingNotifier() *loggingNotifier {
	return &loggingNotifier{
		log: logger.New("events"),
	}
}

// Notify - record one committed event
func (n *loggingNotifier) Notify(event trading.Event) {
	switch event.Kind {
	case trading.AssetCreated:
		n.log.Infof("%s: asset: %s  creator: %s  units: %d", event.Kind, event.AssetId, event.From, event.Units)
	case trading.SharesOffered:
		n.log.Infof("%s: offer: %s  seller: %s  units: %d  unit price: %d", event.Kind, event.OfferId, event.From, event.Units, event.Price)
	case trading.SharesTransferred:
		n.log.Infof("%s: asset: %s  from: %s  to: %s  units: %d", event.Kind, event.AssetId, event.From, event.To, event.Units)
	case trading.OfferSettled:
		n.log.Infof("%s: offer: %s  buyer: %s  seller: %s  units: %d  paid: %d", event.Kind, event.OfferId, event.From, event.To, event.Units, event.Price)
	case trading.OfferCancelled:
		n.log.Infof("%s: offer: %s  seller: %s  units released: %d", event.Kind, event.OfferId, event.From, event.Units)
	case trading.OwnershipClaimed:
		n.log.Infof("%s: asset: %s  owner: %s", event.Kind, event.AssetId, event.From)
	default:
		n.log.Warnf("unknown event kind: %d", byte(event.Kind))
	}
}
