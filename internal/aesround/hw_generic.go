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

//go:build !amd64

package aesround

// Platforms without an AES-NI code path always run the software rounds;
// the dispatch in Enc/Dec never reaches hwEnc/hwDec because HasNI is false.

func hasHardwareAES() bool { return false }

func hwEnc(state, key Block) Block { return softEnc(state, key) }

func hwDec(state, key Block) Block { return softDec(state, key) }
