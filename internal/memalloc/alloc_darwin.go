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

//go:build darwin

package memalloc

import "syscall"

// darwin has no portable large-page mmap flag reachable from the syscall
// package, so a largePages request always returns ErrLargePagesUnavailable.

func Alloc(size uintptr, largePages bool) ([]byte, error) {
	if largePages {
		return nil, ErrLargePagesUnavailable
	}
	size = AlignSize(size)
	buf, err := syscall.Mmap(-1, 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return syscall.Munmap(buf)
}
