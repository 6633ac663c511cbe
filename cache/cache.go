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

// Package cache holds the read-only, seed-derived table that dataset
// blocks are reconstructed from. A Cache is opaque outside of this
// package except for the two views it exposes: the raw byte buffer and
// the round-key schedule. Seed derivation itself (the argon-like key
// stretching step) lives outside this package; Cache only consumes the
// output of that process through the KeyDeriver interface.
package cache

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/randomx-go/dataset-core/internal/aesround"
	"github.com/randomx-go/dataset-core/internal/memalloc"
	"github.com/randomx-go/dataset-core/ints"
)

// LineSize is the granularity at which the cache is addressed by
// Block index during dataset block initialization.
const LineSize = 64

// Size is the total length of the cache buffer. It must stay a power of
// two and a multiple of LineSize so that LineCount-1 is a valid mask.
const Size = 256 << 20 // 256 MiB

// LineCount is the number of LineSize-byte lines in the cache, and the
// modulus used to turn a 32-bit AES output into a line index.
const LineCount = Size / LineSize

// KeysCount is the number of round-key slots derived alongside the
// cache bytes. The current block-initialization protocol reads only
// slots 0, 2, 4 and 6; the rest are reserved by the protocol.
const KeysCount = 8

// SeedSize is the fixed length a seed must have before it can be passed
// to a KeyDeriver: 32 bytes, the width of two Blocks. The production
// seed-derivation routine is an external collaborator and may enforce
// the same contract independently.
const SeedSize = 32

func init() {
	if Size%LineSize != 0 || LineCount&(LineCount-1) != 0 {
		panic("cache: Size/LineSize must be a power of two")
	}
}

// Keys is the round-key schedule derived alongside the cache bytes.
type Keys [KeysCount]aesround.Block

// KeyDeriver turns a fixed-length seed into cache bytes and a round-key
// schedule. Implementations are expected to be deterministic: the same
// seed must always produce the same bytes and keys. The production
// implementation of this interface (argon2-family memory-hard key
// stretching) is an external collaborator; this package only consumes
// it through this narrow contract.
type KeyDeriver interface {
	Derive(seed []byte, cacheBytes []byte, keys *Keys) error
}

// Cache is an immutable, 64-byte-aligned table of Size bytes plus its
// round-key schedule. Once Initialize returns successfully, a Cache is
// safe for concurrent use by any number of readers without further
// synchronization.
type Cache struct {
	id    uuid.UUID
	bytes []byte
	keys  Keys
	large bool
}

// Allocate reserves Size bytes of 64-byte-aligned memory for a cache,
// optionally backed by large pages, without populating its contents.
// The returned Cache is not yet safe to read; call Initialize first.
func Allocate(largePages bool) (*Cache, error) {
	buf, err := memalloc.Alloc(Size, largePages)
	if err != nil {
		return nil, fmt.Errorf("cache: allocate %d bytes (large pages=%v): %w", Size, largePages, err)
	}
	if !ints.IsAligned64(uint64(len(buf)), LineSize) {
		return nil, fmt.Errorf("cache: allocator returned misaligned length %d", len(buf))
	}
	return &Cache{
		id:    uuid.New(),
		bytes: buf,
		large: largePages,
	}, nil
}

// Initialize populates the cache bytes and round-key schedule from seed
// using d. seed must be exactly SeedSize bytes. After Initialize
// returns without error, the Cache is immutable and may be shared
// freely across goroutines.
func (c *Cache) Initialize(seed []byte, d KeyDeriver) error {
	if len(seed) != SeedSize {
		return fmt.Errorf("cache: seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	if err := d.Derive(seed, c.bytes, &c.keys); err != nil {
		return fmt.Errorf("cache: key derivation failed: %w", err)
	}
	return nil
}

// Bytes returns the cache's backing buffer. The slice must not be
// mutated or retained past the Cache's Release.
func (c *Cache) Bytes() []byte { return c.bytes }

// Keys returns the cache's round-key schedule.
func (c *Cache) Keys() *Keys { return &c.keys }

// ID returns a process-local identifier assigned at Allocate time, used
// only to correlate log lines across cache and dataset lifecycle events.
func (c *Cache) ID() uuid.UUID { return c.id }

// Release returns the cache's memory to the OS. The Cache must not be
// used after Release returns.
func (c *Cache) Release() error {
	if c.bytes == nil {
		return nil
	}
	err := memalloc.Free(c.bytes)
	c.bytes = nil
	return err
}
