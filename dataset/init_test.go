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
	"testing"

	"github.com/randomx-go/dataset-core/dataset"
)

func TestInitParallelMatchesSequential(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates two dataset-sized buffers; skipped in -short")
	}
	c := newTestCache(t)

	seq, err := dataset.AllocateFull(false)
	if err != nil {
		t.Fatalf("AllocateFull: %v", err)
	}
	t.Cleanup(func() { seq.Release() })
	if err := dataset.Init(c, seq, 0, dataset.LineCount, true); err != nil {
		t.Fatalf("Init: %v", err)
	}

	par, err := dataset.AllocateFull(false)
	if err != nil {
		t.Fatalf("AllocateFull: %v", err)
	}
	t.Cleanup(func() { par.Release() })
	if err := dataset.InitParallel(c, par, 8, true); err != nil {
		t.Fatalf("InitParallel: %v", err)
	}

	if seq.Fingerprint() != par.Fingerprint() {
		t.Fatal("parallel dataset_init produced a dataset different from sequential init")
	}
}

func TestInitRejectsOutOfRangeCount(t *testing.T) {
	c := newTestCache(t)
	d, err := dataset.AllocateFull(false)
	if err != nil {
		t.Fatalf("AllocateFull: %v", err)
	}
	t.Cleanup(func() { d.Release() })

	if err := dataset.Init(c, d, dataset.LineCount-1, 2, true); err == nil {
		t.Fatal("expected an error for a range exceeding LineCount")
	}
}
