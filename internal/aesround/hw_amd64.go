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

//go:build amd64

package aesround

import "golang.org/x/sys/cpu"

func hasHardwareAES() bool {
	return cpu.X86.HasAES
}

//go:noescape
func aesencAsm(dst, state, key *[16]byte)

//go:noescape
func aesdecAsm(dst, state, key *[16]byte)

func hwEnc(state, key Block) Block {
	var out Block
	aesencAsm((*[16]byte)(&out), (*[16]byte)(&state), (*[16]byte)(&key))
	return out
}

func hwDec(state, key Block) Block {
	var out Block
	aesdecAsm((*[16]byte)(&out), (*[16]byte)(&state), (*[16]byte)(&key))
	return out
}
