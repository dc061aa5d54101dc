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

// Package elfimage parses a 32bit little-endian ARM ELF file into an
// immutable Image. The Image gives access to the symbol table, the section
// headers and the loadable segments of the file.
//
// The Load() function takes the entire file as a byte slice. LoadFile() is a
// convenience function that reads a file from disk before calling Load().
//
//	img, err := elfimage.LoadFile("firmware.elf")
//	if err != nil {
//		if curated.Is(err, elfimage.ParseError) {
//			...
//		}
//	}
//
// Symbols and sections are found by name with FindSymbol() and FindSection().
// Names are matched exactly. In the case of duplicate symbol names the first
// symbol in the symbol table is the one that is returned.
//
// The run-time address (VMA) of a section is translated into its load-time
// address (LMA) with Translate(). The first PT_LOAD segment that contains the
// VMA is used for the translation. If no segment contains the VMA then the
// LMA is the same as the VMA. This is the normal case for NOLOAD sections,
// such as .bss or .uninit, which occupy memory but which have no content in
// the file. The second return value of Translate() says which of the two
// cases applied.
package elfimage
