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

// Package refderive is a reference implementation of cache.KeyDeriver
// for use by this repository's own tests and benchmarks. The production
// argon-like seed-derivation routine is an external collaborator and is
// intentionally not implemented here; this package exists so the Cache
// contract has at least one conforming, deterministic implementation to
// test against.
package refderive

import (
	"hash"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"github.com/randomx-go/dataset-core/cache"
)

// Deriver expands a seed into cache bytes with argon2id and round keys
// with an independent HKDF-over-BLAKE2b expansion, so that changing one
// output does not perturb the other.
type Deriver struct {
	// Time, Memory and Threads are the argon2id cost parameters. Zero
	// values fall back to conservative defaults.
	Time, Memory uint32
	Threads      uint8
}

// Derive implements cache.KeyDeriver.
func (d Deriver) Derive(seed []byte, cacheBytes []byte, keys *cache.Keys) error {
	t, m, p := d.Time, d.Memory, d.Threads
	if t == 0 {
		t = 3
	}
	if m == 0 {
		m = 64 * 1024
	}
	if p == 0 {
		p = 1
	}

	expanded := argon2.IDKey(seed, []byte("dataset-core-cache"), t, m, p, uint32(len(cacheBytes)))
	copy(cacheBytes, expanded)

	newHash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
	kdf := hkdf.New(newHash, seed, nil, []byte("dataset-core-keys"))
	for i := range keys {
		if _, err := io.ReadFull(kdf, keys[i][:]); err != nil {
			return err
		}
	}
	return nil
}
