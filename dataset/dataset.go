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

// Package dataset expands a Cache into the large pseudo-random working
// memory the VM reads from, and implements the three dataset_read modes
// (materialized, on-the-fly, and prefetched) that all produce identical
// effects on VM registers and read pointers.
package dataset

import (
	"errors"
	"unsafe"

	"github.com/google/uuid"
	"github.com/randomx-go/dataset-core/cache"
	"github.com/randomx-go/dataset-core/internal/memalloc"
)

// LineSize is the width of one dataset block and one register-file read.
const LineSize = cache.LineSize

// Size is the total length of a Full dataset buffer: a power-of-two
// multiple of LineSize in the multi-gigabyte range.
const Size = 2 << 30 // 2 GiB

// LineCount is the number of LineSize-byte blocks in a Full dataset.
const LineCount = Size / LineSize

// Iterations is the number of dependent-read mixing rounds init_block
// performs per block.
const Iterations = 8

// RegistersCount is the number of 64-bit registers XORed per read.
const RegistersCount = 8

func init() {
	if Size%LineSize != 0 || LineCount&(LineCount-1) != 0 {
		panic("dataset: Size/LineSize must be a power of two")
	}
}

// ErrPlatformTooSmall is returned by AllocateFull when the platform's address
// space cannot represent a dataset of Size bytes.
var ErrPlatformTooSmall = errors.New("dataset: platform doesn't support enough address space for the dataset")

// AllocationError is returned by AllocateFull when the OS refuses to back a
// dataset allocation, and names the resource and size that were requested.
type AllocationError struct {
	Resource string
	Size     int
	Large    bool
	Cause    error
}

func (e *AllocationError) Error() string {
	if e.Large {
		return e.Resource + " memory allocation failed (large pages)"
	}
	return e.Resource + " memory allocation failed. >4 GiB of free virtual memory is needed."
}

func (e *AllocationError) Unwrap() error { return e.Cause }

// Kind discriminates which of the three representations a Dataset holds.
type Kind int

const (
	// Full datasets own a materialized Size-byte buffer.
	Full Kind = iota
	// Light datasets hold no materialized buffer and recompute blocks
	// on demand from a Cache.
	Light
	// LightAsync datasets recompute blocks through a prefetching
	// AsyncWorker instead of synchronously.
	LightAsync
)

func (k Kind) String() string {
	switch k {
	case Full:
		return "full"
	case Light:
		return "light"
	case LightAsync:
		return "light-async"
	default:
		return "unknown"
	}
}

// Dataset is a tagged handle over exactly one of the three dataset
// representations. The zero value is not usable; construct one with
// AllocateFull, NewLight or NewLightAsync.
type Dataset struct {
	kind  Kind
	id    uuid.UUID
	full  []byte
	cache *cache.Cache
	async *AsyncWorker
}

// Kind reports which representation this Dataset holds.
func (d *Dataset) Kind() Kind { return d.kind }

// ID returns a process-local identifier used only for diagnostic
// log correlation.
func (d *Dataset) ID() uuid.UUID { return d.id }

// AllocateFull reserves Size bytes of 64-byte-aligned memory for a Full
// dataset, optionally backed by large pages. The returned buffer is
// uninitialized; callers must run Init or InitParallel over the full
// block range before any read.
func AllocateFull(largePages bool) (*Dataset, error) {
	if unsafe.Sizeof(uintptr(0)) <= 4 {
		return nil, ErrPlatformTooSmall
	}
	buf, err := memalloc.Alloc(Size, largePages)
	if err != nil {
		return nil, &AllocationError{Resource: "dataset", Size: Size, Large: largePages, Cause: err}
	}
	return &Dataset{kind: Full, id: uuid.New(), full: buf}, nil
}

// NewLight wraps an already-initialized Cache as a Light dataset: reads
// recompute blocks on demand instead of touching materialized memory.
func NewLight(c *cache.Cache) *Dataset {
	return &Dataset{kind: Light, id: uuid.New(), cache: c}
}

// NewLightAsync wraps an AsyncWorker as a LightAsync dataset: reads pull
// blocks the worker has already started recomputing in the background.
func NewLightAsync(w *AsyncWorker) *Dataset {
	return &Dataset{kind: LightAsync, id: uuid.New(), async: w}
}

// Bytes returns the materialized buffer of a Full dataset. It panics if
// called on a Light or LightAsync dataset; mode mismatches are
// programmer errors this package does not attempt to recover from.
func (d *Dataset) Bytes() []byte {
	d.mustBe(Full)
	return d.full
}

// Release returns a Full dataset's memory to the OS. It is a no-op on
// Light and LightAsync datasets, which own no materialized memory.
func (d *Dataset) Release() error {
	if d.kind != Full || d.full == nil {
		return nil
	}
	err := memalloc.Free(d.full)
	d.full = nil
	return err
}

func (d *Dataset) mustBe(k Kind) {
	if d.kind != k {
		panic("dataset: operation requires a " + k.String() + " dataset, got " + d.kind.String())
	}
}
