// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/proportiond/fault"
)

const (
	oneByteSize    = 1
	uint64ByteSize = 8
)

// Holding - the units of one asset held by one account
//
// locked units stay inside Units; they are the portion committed to
// open offers and unavailable for spending
type Holding struct {
	Units       uint64 `json:"units,string"`
	LockedUnits uint64 `json:"lockedUnits,string"`
}

// structure of the packed holding record
const (
	holdingUnitsStart  = 0
	holdingUnitsFinish = holdingUnitsStart + uint64ByteSize

	holdingLockedStart  = holdingUnitsFinish
	holdingLockedFinish = holdingLockedStart + uint64ByteSize

	holdingPackLength = holdingLockedFinish
)

// PackedHolding - packed data to store in the database
type PackedHolding []byte

// Unlocked - units available for transfer or for a new offer
func (holding Holding) Unlocked() uint64 {
	return holding.Units - holding.LockedUnits
}

// Pack - pack a holding record to a byte slice
func (holding Holding) Pack() PackedHolding {

	units := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(units, holding.Units)

	locked := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(locked, holding.LockedUnits)

	newData := make(PackedHolding, 0, holdingPackLength)

	newData = append(newData, units...)
	newData = append(newData, locked...)

	return newData
}

// Unpack - unpack a holding record
func (packed PackedHolding) Unpack() (Holding, error) {
	if holdingPackLength != len(packed) {
		return Holding{}, fault.NotHoldingPack
	}

	holding := Holding{
		Units:       binary.BigEndian.Uint64(packed[holdingUnitsStart:holdingUnitsFinish]),
		LockedUnits: binary.BigEndian.Uint64(packed[holdingLockedStart:holdingLockedFinish]),
	}

	if holding.LockedUnits > holding.Units {
		return Holding{}, fault.NotHoldingPack
	}

	return holding, nil
}
