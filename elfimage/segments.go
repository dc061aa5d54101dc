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

package elfimage

import (
	"debug/elf"
)

// Segment is an entry in the program header table. Data is the content of the
// segment in the file and will be Filesz bytes long. Data is only loaded for
// PT_LOAD segments.
type Segment struct {
	Type   elf.ProgType
	Flags  elf.ProgFlag
	Vaddr  uint64
	Paddr  uint64
	Memsz  uint64
	Filesz uint64
	Data   []byte
}

// Contains returns true if the virtual address is inside the segment.
func (s Segment) Contains(addr uint64) bool {
	return addr >= s.Vaddr && addr-s.Vaddr < s.Memsz
}

func (s Segment) overlaps(o Segment) bool {
	if s.Memsz == 0 || o.Memsz == 0 {
		return false
	}
	return s.Vaddr < o.Vaddr+o.Memsz && o.Vaddr < s.Vaddr+s.Memsz
}

// Segments returns a copy of the program header table in table order.
func (img *Image) Segments() []Segment {
	return append([]Segment{}, img.segments...)
}

// LoadSegments returns the PT_LOAD segments in table order.
func (img *Image) LoadSegments() []Segment {
	var l []Segment
	for _, s := range img.segments {
		if s.Type == elf.PT_LOAD {
			l = append(l, s)
		}
	}
	return l
}

// Translate returns the LMA of the section. The LMA is found by looking for
// the first PT_LOAD segment that contains the section's VMA. The second return
// value is true if such a segment was found.
//
// If no segment is found then the LMA is the same as the VMA and the second
// return value is false.
func (img *Image) Translate(sec Section) (uint64, bool) {
	for _, s := range img.segments {
		if s.Type != elf.PT_LOAD {
			continue
		}
		if s.Contains(sec.Address) {
			return sec.Address - s.Vaddr + s.Paddr, true
		}
	}
	return sec.Address, false
}

// LoadAddress returns the LMA of the section. See Translate() for details.
func (img *Image) LoadAddress(sec Section) uint64 {
	lma, _ := img.Translate(sec)
	return lma
}

// FileBacked returns true if the memory range starting at the virtual address
// is entirely covered by content from the file. ie. that the bytes will be in
// the load image.
func (img *Image) FileBacked(addr uint64, size uint64) bool {
	for _, s := range img.segments {
		if s.Type != elf.PT_LOAD || s.Filesz == 0 {
			continue
		}
		if addr >= s.Vaddr && addr-s.Vaddr <= s.Filesz && size <= s.Filesz-(addr-s.Vaddr) {
			return true
		}
	}
	return false
}
