// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package dataset

import "github.com/randomx-go/dataset-core/cache"

// AsyncWorker wraps a Cache with a single-slot prefetch pipeline: one
// block can be in flight while the VM consumes the previous one,
// hiding init_block's AES latency behind VM execution. It is the
// channel-based producer/consumer the LightAsync dataset mode calls
// get_block/prepare_block against.
//
// An AsyncWorker is only safe for use by a single VM thread at a time;
// the pipeline depth of one assumes a strict prepare-then-get ordering.
type AsyncWorker struct {
	cache *cache.Cache
	soft  bool

	pending chan asyncResult
}

type asyncResult struct {
	addr uint32
	line [LineSize]byte
}

// NewAsyncWorker starts an AsyncWorker backed by c. addr is the first
// block address to begin prefetching.
func NewAsyncWorker(c *cache.Cache, soft bool, addr uint32) *AsyncWorker {
	w := &AsyncWorker{
		cache:   c,
		soft:    soft,
		pending: make(chan asyncResult, 1),
	}
	w.PrepareBlock(addr)
	return w
}

// PrepareBlock submits addr for background recomputation. Only one
// request may be outstanding at a time; callers (the LightAsync read
// path) always consume the pending block with GetBlock before
// submitting the next one.
func (w *AsyncWorker) PrepareBlock(addr uint32) {
	go func() {
		var res asyncResult
		res.addr = addr
		InitBlock(w.cache.Bytes(), res.line[:], addr/LineSize, w.cache.Keys(), w.soft)
		w.pending <- res
	}()
}

// GetBlock blocks until the block requested by the most recent
// PrepareBlock call has finished recomputing, then returns its
// LineSize bytes as 8 little-endian 64-bit words.
func (w *AsyncWorker) GetBlock(addr uint32) *[LineSize]byte {
	res := <-w.pending
	if res.addr != addr {
		panic("dataset: async worker block mismatch; prepare/get calls are out of order")
	}
	line := res.line
	return &line
}
