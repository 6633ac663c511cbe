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
	"encoding/binary"

	"github.com/randomx-go/dataset-core/cache"
	"github.com/randomx-go/dataset-core/internal/aesround"
)

// InitBlock deterministically derives the LineSize-byte dataset block
// numbered blockNumber from cacheBytes and keys, and writes it to out.
// out must be exactly LineSize bytes; it may alias cacheBytes only for
// calibration purposes (see Bench) since production initialization reads
// and writes disjoint memory.
//
// The four lanes walk cacheBytes in a data-dependent pattern driven by
// repeated AES rounds, so every output byte depends on a pseudo-random
// sequence of cache lines; this is what makes on-the-fly reconstruction
// memory-hard.
func InitBlock(cacheBytes []byte, out []byte, blockNumber uint32, keys *cache.Keys, soft bool) {
	if len(out) != LineSize {
		panic("dataset: InitBlock out must be exactly LineSize bytes")
	}

	var x0 aesround.Block
	binary.LittleEndian.PutUint32(x0[0:4], blockNumber)

	mask := uint32(len(cacheBytes)/LineSize) - 1

	var x1, x2, x3 aesround.Block
	for i := 0; i < Iterations; i++ {
		x0 = aesround.Enc(x0, keys[0], soft)
		x1 = aesround.Enc(x0, keys[2], soft)
		x2 = aesround.Enc(x1, keys[4], soft)
		x3 = aesround.Enc(x2, keys[6], soft)

		index := binary.LittleEndian.Uint32(x3[0:4]) & mask
		off := int(index) * LineSize

		t0 := cacheBytes[off : off+16]
		t1 := cacheBytes[off+16 : off+32]
		t2 := cacheBytes[off+32 : off+48]
		t3 := cacheBytes[off+48 : off+64]

		xorBlock(&x0, t0)
		xorBlock(&x1, t1)
		xorBlock(&x2, t2)
		xorBlock(&x3, t3)
	}

	copy(out[0:16], x0[:])
	copy(out[16:32], x1[:])
	copy(out[32:48], x2[:])
	copy(out[48:64], x3[:])
}

func xorBlock(b *aesround.Block, with []byte) {
	for i := range b {
		b[i] ^= with[i]
	}
}
