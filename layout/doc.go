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

// Package layout checks the placement of the sections and symbols of an ELF
// image against the requirements of a board.
//
// The requirements for a board are described by a Profile. A Profile lists the
// memory regions of the board, the symbols that must be present and the
// sections that must be present, in the order the linker script places them.
// Each section entry is an Expectation, which says which region the section
// must be in, how it should be aligned, whether it is loaded from the boot
// image or not, and how it must be placed relative to the entries before it.
//
// Verify() runs every check in the profile and returns a Report. Verify()
// never stops at the first failure. Every failed check results in a Diagnostic
// and all checks that can be run are run. A single mistake in a linker script
// will often cause several checks to fail and seeing all of them together is
// useful when finding the cause.
//
// Load-resident sections are those which have content in the boot image. The
// load address (LMA) of a load-resident section must immediately follow the
// LMA of the previous load-resident section in the profile, rounded up to the
// alignment of the section. The first load-resident section can be given a
// fixed LMA with the LoadAt field.
//
// Non-load sections are those which occupy memory but which are not copied
// from the boot image. By default the run-time address (VMA) of a non-load
// section must immediately follow the VMA of the previous entry in the
// profile, rounded up to the alignment of the section. The LMA of a non-load
// section must be the same as its VMA.
//
// The default placement of a section's VMA can be changed with the VMA field
// of the Expectation.
//
// A Report is written as text with Write() or as a YAML document with
// WriteYAML().
package layout
