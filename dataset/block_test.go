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

package dataset_test

import (
	"math/rand"
	"testing"

	"github.com/randomx-go/dataset-core/cache"
	"github.com/randomx-go/dataset-core/dataset"
	"github.com/randomx-go/dataset-core/internal/aesround"
)

func randomCacheAndKeys(r *rand.Rand, lines int) ([]byte, *cache.Keys) {
	buf := make([]byte, lines*dataset.LineSize)
	r.Read(buf)
	var keys cache.Keys
	for i := range keys {
		var k aesround.Block
		r.Read(k[:])
		keys[i] = k
	}
	return buf, &keys
}

func TestInitBlockDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	cacheBytes, keys := randomCacheAndKeys(r, 16)

	var out1, out2 [dataset.LineSize]byte
	dataset.InitBlock(cacheBytes, out1[:], 5, keys, true)
	dataset.InitBlock(cacheBytes, out2[:], 5, keys, true)
	if out1 != out2 {
		t.Fatal("InitBlock is not deterministic across repeated calls")
	}
}

func TestInitBlockSoftHardwareAgree(t *testing.T) {
	if !aesround.HasNI {
		t.Skip("AES-NI not available on this host")
	}
	r := rand.New(rand.NewSource(11))
	cacheBytes, keys := randomCacheAndKeys(r, 16)

	for _, block := range []uint32{0, 1, 255} {
		var soft, hw [dataset.LineSize]byte
		dataset.InitBlock(cacheBytes, soft[:], block, keys, true)
		dataset.InitBlock(cacheBytes, hw[:], block, keys, false)
		if soft != hw {
			t.Fatalf("block %d: soft and hardware outputs differ", block)
		}
	}
}

func TestInitBlockDiffersAcrossBlockNumbers(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	cacheBytes, keys := randomCacheAndKeys(r, 16)

	var a, b [dataset.LineSize]byte
	dataset.InitBlock(cacheBytes, a[:], 0, keys, true)
	dataset.InitBlock(cacheBytes, b[:], 1, keys, true)
	if a == b {
		t.Fatal("adjacent block numbers produced identical output")
	}
}

func TestInitBlockPanicsOnWrongOutputLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a short out buffer")
		}
	}()
	r := rand.New(rand.NewSource(17))
	cacheBytes, keys := randomCacheAndKeys(r, 16)
	dataset.InitBlock(cacheBytes, make([]byte, 32), 0, keys, true)
}

func TestBenchAliasesInputAndOutput(t *testing.T) {
	// Bench must complete without panicking even though init_block's
	// cache and output buffers are the same memory, mirroring the
	// reference calibration harness.
	var keys cache.Keys
	dataset.Bench(64, &keys, true)
}
