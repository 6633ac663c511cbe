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

// Package aesround provides the single-round AES primitives that the
// dataset expansion and finalization hash are built on: aesenc and aesdec,
// each exactly one FIPS-197 AES round (no key schedule, no multi-round
// cipher). Every primitive is available in two forms: a hardware form that
// dispatches to the AESENC/AESDEC machine instructions when the CPU
// supports AES-NI, and a portable software form built from precomputed
// tables. Both forms are required to produce bit-identical output; the
// software form is the reference used to validate the hardware one.
package aesround

// Block is a 128-bit AES state or round key, stored as 16 bytes in the
// same little-endian, column-major order the AES-NI instructions use:
// byte i is row i%4, column i/4 of the FIPS-197 state array.
type Block [16]byte

// HasNI reports whether the hardware AES-NI path is available on this CPU.
// It is evaluated once at package initialization.
var HasNI = hasHardwareAES()

// Enc applies one AES encryption round (SubBytes, ShiftRows, MixColumns,
// AddRoundKey) to state using key. When soft is false and the CPU supports
// AES-NI, the hardware instruction is used; otherwise the software
// implementation runs. Both paths return bit-identical results.
func Enc(state, key Block, soft bool) Block {
	if !soft && HasNI {
		return hwEnc(state, key)
	}
	return softEnc(state, key)
}

// Dec applies one AES decryption round (InvShiftRows, InvSubBytes,
// InvMixColumns, AddRoundKey) to state using key, mirroring the semantics
// of the AESDEC machine instruction.
func Dec(state, key Block, soft bool) Block {
	if !soft && HasNI {
		return hwDec(state, key)
	}
	return softDec(state, key)
}
