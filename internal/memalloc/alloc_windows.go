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

//go:build windows

package memalloc

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func Alloc(size uintptr, largePages bool) ([]byte, error) {
	size = AlignSize(size)
	flags := uint32(windows.MEM_RESERVE | windows.MEM_COMMIT)
	if largePages {
		flags |= windows.MEM_LARGE_PAGES
	}
	addr, err := windows.VirtualAlloc(0, size, flags, windows.PAGE_READWRITE)
	if err != nil {
		if largePages {
			return nil, ErrLargePagesUnavailable
		}
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
