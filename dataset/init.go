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

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/randomx-go/dataset-core/cache"
	"github.com/randomx-go/dataset-core/ints"
)

// Init writes blocks [startBlock, startBlock+blockCount) into d from c.
// d must be a Full dataset. Init has no internal synchronization: it is
// safe to call concurrently from multiple goroutines only when their
// [start, start+count) ranges are disjoint, since each call only ever
// touches the dataset bytes its own range covers.
func Init(c *cache.Cache, d *Dataset, startBlock, blockCount uint32, soft bool) error {
	d.mustBe(Full)
	if uint64(startBlock)+uint64(blockCount) > LineCount {
		return fmt.Errorf("dataset: range [%d, %d) exceeds %d blocks", startBlock, uint64(startBlock)+uint64(blockCount), LineCount)
	}
	buf := d.full
	for i := startBlock; i < startBlock+blockCount; i++ {
		off := int(i) * LineSize
		InitBlock(c.Bytes(), buf[off:off+LineSize], i, c.Keys(), soft)
	}
	return nil
}

// InitParallel partitions the full block range across workers disjoint
// ranges of ceil(LineCount/workers) blocks each (the last range is
// shorter when workers does not divide LineCount) and runs Init over
// each concurrently. workers <= 0
// uses runtime.NumCPU(). This is test/bench tooling built on top of
// Init's per-range contract, not part of the contract itself: the outer
// orchestrator that drives dataset_init across threads is out of scope
// for this package.
func InitParallel(c *cache.Cache, d *Dataset, workers int, soft bool) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	total := uint32(LineCount)
	chunk := ints.ChunkCount(total, uint32(workers))

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		start := uint32(w) * chunk
		if start >= total {
			break
		}
		count := chunk
		if start+count > total {
			count = total - start
		}
		wg.Add(1)
		go func(w int, start, count uint32) {
			defer wg.Done()
			errs[w] = Init(c, d, start, count, soft)
		}(w, start, count)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
