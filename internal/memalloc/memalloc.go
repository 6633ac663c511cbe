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

// Package memalloc reserves large, page-aligned regions of anonymous memory
// for the dataset and cache buffers. Every platform-specific Alloc
// implementation returns memory that is at least page aligned, which
// satisfies the 64-byte alignment the dataset and cache require.
package memalloc

import (
	"errors"

	"github.com/randomx-go/dataset-core/ints"
)

// ErrLargePagesUnavailable is returned by Alloc when largePages is requested
// but the host platform or kernel configuration cannot satisfy it. Alloc
// does not retry with regular pages; the cache and dataset allocators
// return it, wrapped, to their callers.
var ErrLargePagesUnavailable = errors.New("memalloc: large pages requested but unavailable")

// LineSize is the alignment granularity the dataset and cache require.
const LineSize = 64

// AlignSize rounds size up to a multiple of LineSize. Every platform Alloc
// implementation applies this before reserving memory, so a request that
// isn't already line-aligned still comes back line-aligned in length, not
// just in starting address.
func AlignSize(size uintptr) uintptr {
	return uintptr(ints.AlignUp64(uint64(size), LineSize))
}
