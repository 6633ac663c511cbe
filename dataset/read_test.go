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
	"math/rand"
	"testing"
)

// newFixture builds a small, disjoint-from-the-real-Size Full dataset for
// exercising the read path without allocating a multi-gigabyte buffer.
func newFixture(lines int, r *rand.Rand) *Dataset {
	buf := make([]byte, lines*LineSize)
	r.Read(buf)
	return &Dataset{kind: Full, full: buf}
}

func TestAdvanceSwapProperty(t *testing.T) {
	mem := MemoryRegisters{Ma: 0x40, Mx: 0x80}
	oldMa, oldMx := mem.Ma, mem.Mx
	const addr = 0x12345678

	advance(&mem, addr)

	wantMa := (oldMx ^ addr) &^ (LineSize - 1)
	if mem.Ma != wantMa {
		t.Fatalf("new Ma = %#x, want %#x", mem.Ma, wantMa)
	}
	if mem.Mx != oldMa {
		t.Fatalf("new Mx = %#x, want old Ma %#x", mem.Mx, oldMa)
	}
	if mem.Ma%LineSize != 0 {
		t.Fatalf("new Ma %#x is not line aligned", mem.Ma)
	}
}

func TestReadFullUsesOldMaForXOR(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	ds := newFixture(4, r)

	var reg RegisterFile
	mem := MemoryRegisters{Ma: LineSize, Mx: 0}

	var want RegisterFile
	line := ds.full[LineSize : 2*LineSize]
	for i := 0; i < RegistersCount; i++ {
		want.R[i] = binary.LittleEndian.Uint64(line[i*8 : i*8+8])
	}

	ds.Read(0, &mem, &reg, true)
	if reg != want {
		t.Fatalf("registers after read = %v, want %v", reg, want)
	}
}

func TestReadPanicsOnMissingBacking(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic reading a Light dataset with no Cache")
		}
	}()
	ds := &Dataset{kind: Light}
	var reg RegisterFile
	var mem MemoryRegisters
	ds.Read(0, &mem, &reg, true)
}
