// This file is part of elflayout.
//
// elflayout is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// elflayout is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with elflayout.  If not, see <https://www.gnu.org/licenses/>.

package layout

import "fmt"

// Region is a block of memory in the address map of the board.
type Region struct {
	Name string
	Base uint64
	Size uint64
}

func (r Region) String() string {
	return fmt.Sprintf("%s (%08x to %08x)", r.Name, r.Base, r.End())
}

// End returns the first address after the region.
func (r Region) End() uint64 {
	return r.Base + r.Size
}

// Contains returns true if the memory range is entirely inside the region.
func (r Region) Contains(addr uint64, size uint64) bool {
	return addr >= r.Base && addr-r.Base <= r.Size && size <= r.Size-(addr-r.Base)
}

// Align rounds the value up to the next multiple of the alignment. The
// alignment must be a power of two. An alignment of zero or one leaves the
// value unchanged.
func Align(value uint64, alignment uint64) uint64 {
	if alignment <= 1 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

func isPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}
