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

package finalhash_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/randomx-go/dataset-core/finalhash"
	"github.com/randomx-go/dataset-core/internal/aesround"
)

func TestSumLength(t *testing.T) {
	out := make([]byte, finalhash.Size)
	finalhash.Sum(make([]byte, 64), out, true)
	finalhash.Sum(make([]byte, 128), out, true)
}

func TestSumPanicsOnBadInputLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a non-multiple-of-64 input")
		}
	}()
	out := make([]byte, finalhash.Size)
	finalhash.Sum(make([]byte, 65), out, true)
}

func TestSumDeterministic(t *testing.T) {
	input := make([]byte, 192)
	for i := range input {
		input[i] = byte(i)
	}
	var out1, out2 [finalhash.Size]byte
	finalhash.Sum(input, out1[:], true)
	finalhash.Sum(input, out2[:], true)
	if out1 != out2 {
		t.Fatal("Sum is not deterministic across repeated calls")
	}
}

func TestSumSoftHardwareAgree(t *testing.T) {
	if !aesround.HasNI {
		t.Skip("AES-NI not available on this host")
	}
	r := rand.New(rand.NewSource(42))
	for _, n := range []int{64, 128, 320} {
		input := make([]byte, n)
		r.Read(input)
		var soft, hw [finalhash.Size]byte
		finalhash.Sum(input, soft[:], true)
		finalhash.Sum(input, hw[:], false)
		if soft != hw {
			t.Fatalf("length %d: soft and hardware outputs differ", n)
		}
	}
}

func TestSumDiffusion(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	input := make([]byte, 256)
	r.Read(input)

	var base [finalhash.Size]byte
	finalhash.Sum(input, base[:], true)

	flipped := append([]byte(nil), input...)
	flipped[0] ^= 0x01
	var changed [finalhash.Size]byte
	finalhash.Sum(flipped, changed[:], true)

	diffBits := 0
	for i := range base {
		diffBits += bits.OnesCount8(base[i] ^ changed[i])
	}
	// Flipping one input bit should perturb a large fraction of the
	// 512 output bits; require at least a quarter to catch a broken
	// mixing stage without being a tight statistical assertion.
	if diffBits < 128 {
		t.Fatalf("flipping one input bit only changed %d/512 output bits", diffBits)
	}
}
