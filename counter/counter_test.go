// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/proportiond/counter"
)

func TestCounter(t *testing.T) {
	c := counter.Counter(0)

	assert.Equal(t, uint64(1), c.Increment(), "first increment")
	assert.Equal(t, uint64(2), c.Increment(), "second increment")
	assert.Equal(t, uint64(1), c.Decrement(), "decrement")
	assert.Equal(t, uint64(1), c.Uint64(), "current value")
}

func TestCounterConcurrent(t *testing.T) {
	c := counter.Counter(0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j += 1 {
				c.Increment()
				c.Decrement()
				c.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(10000), c.Uint64(), "net increments")
}
