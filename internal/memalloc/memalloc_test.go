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

package memalloc

import "testing"

func TestAllocFreeRoundTrip(t *testing.T) {
	buf, err := Alloc(1<<20, false)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(buf) != 1<<20 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), 1<<20)
	}
	buf[0] = 'x'
	buf[len(buf)-1] = 'y'

	if err := Free(buf); err != nil {
		t.Fatalf("Free: %v", err)
	}
}

func TestAllocLargePagesSucceedsOrReportsUnavailable(t *testing.T) {
	buf, err := Alloc(2<<20, true)
	if err != nil {
		if err != ErrLargePagesUnavailable {
			t.Fatalf("unexpected error requesting large pages: %v", err)
		}
		return
	}
	defer Free(buf)
	if len(buf) != 2<<20 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), 2<<20)
	}
}
