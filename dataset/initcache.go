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

import "github.com/randomx-go/dataset-core/cache"

// InitCache allocates a Cache honoring largePages, derives it from seed
// through d, and wires the result into a freshly allocated Full dataset.
// It composes cache.Allocate, Cache.Initialize and AllocateFull into the
// single entry point a caller uses to go from a seed straight to a
// dataset ready for Init or InitParallel.
//
// On any failure the partially constructed Cache is released before the
// error is returned; callers never need to clean up after a failed call.
func InitCache(seed []byte, d cache.KeyDeriver, largePages bool) (*Dataset, *cache.Cache, error) {
	c, err := cache.Allocate(largePages)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Initialize(seed, d); err != nil {
		c.Release()
		return nil, nil, err
	}

	ds, err := AllocateFull(largePages)
	if err != nil {
		c.Release()
		return nil, nil, err
	}
	ds.cache = c
	return ds, c, nil
}
