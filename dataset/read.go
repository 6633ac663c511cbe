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

import "encoding/binary"

// MemoryRegisters is the VM's dataset read-pointer pair. Ma is always
// 64-byte aligned; Mx is mutated freely and is only aligned at the
// moment a read consumes it.
type MemoryRegisters struct {
	Ma uint32
	Mx uint32
}

// RegisterFile holds the RegistersCount 64-bit integer registers a
// dataset read XORs a cache line into.
type RegisterFile struct {
	R [RegistersCount]uint64
}

// Read performs one dataset_read step against d, dispatching on d.Kind.
// It panics if d holds no usable backing (e.g. a Light dataset with a
// nil Cache); that is a construction bug, not a runtime condition this
// package recovers from.
func (d *Dataset) Read(addr uint32, mem *MemoryRegisters, reg *RegisterFile, soft bool) {
	switch d.kind {
	case Full:
		d.readFull(addr, mem, reg)
	case Light:
		d.readLight(addr, mem, reg, soft)
	case LightAsync:
		d.readLightAsync(addr, mem, reg)
	default:
		panic("dataset: unknown Kind")
	}
}

// readFull loads the line directly from the materialized buffer.
func (d *Dataset) readFull(addr uint32, mem *MemoryRegisters, reg *RegisterFile) {
	line := d.full[mem.Ma : mem.Ma+LineSize]
	xorRegisters(reg, line)
	advance(mem, addr)
}

// readLight recomputes the line from the Cache instead of reading
// materialized memory.
func (d *Dataset) readLight(addr uint32, mem *MemoryRegisters, reg *RegisterFile, soft bool) {
	var line [LineSize]byte
	InitBlock(d.cache.Bytes(), line[:], mem.Ma/LineSize, d.cache.Keys(), soft)
	xorRegisters(reg, line[:])
	advance(mem, addr)
}

// readLightAsync pulls a line the AsyncWorker has already started
// recomputing, then submits the next block for prefetch so recomputation
// overlaps with VM execution.
func (d *Dataset) readLightAsync(addr uint32, mem *MemoryRegisters, reg *RegisterFile) {
	line := d.async.GetBlock(mem.Ma)
	xorRegisters(reg, line[:])
	advance(mem, addr)
	d.async.PrepareBlock(mem.Ma)
}

// xorRegisters XORs one LineSize-byte line into reg, 8 lanes of 64 bits.
func xorRegisters(reg *RegisterFile, line []byte) {
	for i := 0; i < RegistersCount; i++ {
		reg.R[i] ^= binary.LittleEndian.Uint64(line[i*8 : i*8+8])
	}
}

// advance applies the read-pointer update shared by all three modes: the
// XOR into registers above used the OLD Ma; this mixes addr into Mx,
// aligns it to a cache line, and swaps Ma/Mx so Ma becomes the address
// of the NEXT read and Mx becomes the former Ma.
func advance(mem *MemoryRegisters, addr uint32) {
	mem.Mx ^= addr
	mem.Mx &^= LineSize - 1
	mem.Ma, mem.Mx = mem.Mx, mem.Ma
}
