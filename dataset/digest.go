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

import "github.com/dchest/siphash"

// fingerprintKey0/1 are fixed, arbitrary SipHash keys used only to
// produce a cheap diagnostic fingerprint of a materialized dataset; they
// carry no protocol meaning and are never part of the PoW output.
const (
	fingerprintKey0 = 0x9d04b0ae59943385
	fingerprintKey1 = 0x30ac8d933fe49f5d
)

// Fingerprint returns a SipHash-2-4 digest of a Full dataset's entire
// buffer. It exists so tests and benchmarks can cheaply compare two
// multi-gigabyte datasets (e.g. parallel vs. sequential Init output)
// without a byte-for-byte diff on every failure.
func (d *Dataset) Fingerprint() uint64 {
	d.mustBe(Full)
	return siphash.Hash(fingerprintKey0, fingerprintKey1, d.full)
}
