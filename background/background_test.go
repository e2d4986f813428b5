// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/proportiond/background"
)

type counter struct {
	ticks   int
	stopped bool
}

func (state *counter) Run(args interface{}, shutdown <-chan struct{}) {

	t := args.(*testing.T)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		state.ticks += 1
		t.Logf("ticks: %d", state.ticks)
		time.Sleep(time.Millisecond)
	}

	state.stopped = true
}

func TestStartStop(t *testing.T) {

	one := &counter{}
	two := &counter{}

	processes := background.Processes{
		one,
		two,
	}

	p := background.Start(processes, t)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	if !one.stopped || !two.stopped {
		t.Fatalf("stop did not wait: one: %v  two: %v", one.stopped, two.stopped)
	}
	if 0 == one.ticks || 0 == two.ticks {
		t.Fatalf("processes never ran: one: %d  two: %d", one.ticks, two.ticks)
	}
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
