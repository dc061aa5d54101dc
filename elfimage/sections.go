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
	"fmt"
)

// Section is an entry in the section header table. The Address field is the
// VMA of the section.
type Section struct {
	Name    string
	Address uint64
	Size    uint64
	Type    elf.SectionType
	Flags   elf.SectionFlag
}

func (s Section) String() string {
	return fmt.Sprintf("%s: %08x (%d)", s.Name, s.Address, s.Size)
}

// Allocated returns true if the section occupies memory when the program is
// running.
func (s Section) Allocated() bool {
	return s.Flags&elf.SHF_ALLOC == elf.SHF_ALLOC
}

// HasContent returns true if the section header says the section has content
// in the file, and therefore that the content must be loaded from somewhere.
// This is the section's own statement of whether it is loaded. Compare with
// Image.Translate(), which infers the same from the segment table.
func (s Section) HasContent() bool {
	return s.Allocated() && s.Type != elf.SHT_NOBITS
}

// FindSection returns the first section with the name.
func (img *Image) FindSection(name string) (Section, bool) {
	if i, ok := img.sectionIdx[name]; ok {
		return img.sections[i], true
	}
	return Section{}, false
}

// Sections returns a copy of the section header table, minus the null
// section, in table order.
func (img *Image) Sections() []Section {
	return append([]Section{}, img.sections...)
}
