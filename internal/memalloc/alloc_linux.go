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

//go:build linux

package memalloc

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// linux implementation: anonymous mmap, optionally backed by MAP_HUGETLB.

// Alloc reserves size bytes of anonymous, page-aligned memory. Anonymous
// mmap regions are always aligned to the system page size, which is a
// multiple of the 64-byte line size the dataset and cache require.
func Alloc(size uintptr, largePages bool) ([]byte, error) {
	size = AlignSize(size)
	prot := syscall.PROT_READ | syscall.PROT_WRITE
	flags := syscall.MAP_PRIVATE | syscall.MAP_ANONYMOUS
	if largePages {
		flags |= unix.MAP_HUGETLB
	}
	buf, err := syscall.Mmap(-1, 0, int(size), prot, flags)
	if err != nil {
		if largePages {
			return nil, ErrLargePagesUnavailable
		}
		return nil, err
	}
	return buf, nil
}

// Free releases memory obtained from Alloc.
func Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return syscall.Munmap(buf)
}
