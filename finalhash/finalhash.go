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

// Package finalhash implements the 4-lane single-round AES absorbing
// construction used to compress the VM scratchpad into the final
// 64-byte digest handed to the outer hasher.
package finalhash

import (
	"fmt"

	"github.com/randomx-go/dataset-core/internal/aesround"
)

// Size is the number of bytes written by Sum.
const Size = 64

// initLanes holds the fixed initial values for the four parallel lanes,
// given as big-endian 32-bit words in the order AES-NI's set_epi32 would
// take them (highest word first), matching the reference construction.
var initLanes = [4]aesround.Block{
	wordsToBlock(0x9d04b0ae, 0x59943385, 0x30ac8d93, 0x3fe49f5d),
	wordsToBlock(0x8a39ebf1, 0xddc10935, 0xa724ecd3, 0x7b0c6064),
	wordsToBlock(0x7ec70420, 0xdf01edda, 0x7c12ecf7, 0xfb5382e3),
	wordsToBlock(0x94a9d201, 0x5082d1c8, 0xb2e74109, 0x7728b705),
}

var finalKeys = [2]aesround.Block{
	wordsToBlock(0x4ff637c5, 0x053bd705, 0x8231a744, 0xc3767b17),
	wordsToBlock(0x6594a1a6, 0xa8879d58, 0xb01da200, 0x8a8fae2e),
}

// wordsToBlock packs four 32-bit words into a Block using the same
// byte order _mm_set_epi32 produces: the last argument occupies the
// lowest-addressed bytes.
func wordsToBlock(w0, w1, w2, w3 uint32) aesround.Block {
	var b aesround.Block
	putWordLE(b[0:4], w3)
	putWordLE(b[4:8], w2)
	putWordLE(b[8:12], w1)
	putWordLE(b[12:16], w0)
	return b
}

func putWordLE(dst []byte, w uint32) {
	dst[0] = byte(w)
	dst[1] = byte(w >> 8)
	dst[2] = byte(w >> 16)
	dst[3] = byte(w >> 24)
}

// Sum computes hash_aes_1r_x4 over input, which must have a length that
// is a positive multiple of 64, and writes exactly Size bytes to output.
// It panics if either length requirement is violated; callers at the VM
// boundary are expected to enforce chunk alignment before calling in.
func Sum(input, output []byte, soft bool) {
	if len(input) == 0 || len(input)%64 != 0 {
		panic(fmt.Sprintf("finalhash: input length %d is not a positive multiple of 64", len(input)))
	}
	if len(output) != Size {
		panic(fmt.Sprintf("finalhash: output length %d != %d", len(output), Size))
	}

	state := initLanes

	for off := 0; off < len(input); off += 64 {
		var in [4]aesround.Block
		copy(in[0][:], input[off:off+16])
		copy(in[1][:], input[off+16:off+32])
		copy(in[2][:], input[off+32:off+48])
		copy(in[3][:], input[off+48:off+64])

		state[0] = aesround.Enc(state[0], in[0], soft)
		state[1] = aesround.Dec(state[1], in[1], soft)
		state[2] = aesround.Enc(state[2], in[2], soft)
		state[3] = aesround.Dec(state[3], in[3], soft)
	}

	for _, xkey := range finalKeys {
		state[0] = aesround.Enc(state[0], xkey, soft)
		state[1] = aesround.Dec(state[1], xkey, soft)
		state[2] = aesround.Enc(state[2], xkey, soft)
		state[3] = aesround.Dec(state[3], xkey, soft)
	}

	copy(output[0:16], state[0][:])
	copy(output[16:32], state[1][:])
	copy(output[32:48], state[2][:])
	copy(output[48:64], state[3][:])
}
