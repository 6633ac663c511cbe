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

// Bench runs init_block blockCount times with a fixed, aliased
// LineSize-byte buffer as both the cache input and the output, and a
// fixed block number of zero on every iteration. It is a throughput
// micro-benchmark only: the output it produces has no correctness
// meaning and must never be used as a dataset block.
func Bench(blockCount int, keys *cache.Keys, soft bool) {
	var buffer [LineSize]byte
	for i := 0; i < blockCount; i++ {
		InitBlock(buffer[:], buffer[:], 0, keys, soft)
	}
}
