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
	"bytes"
	"debug/elf"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/logger"
)

// ParseError is the pattern for all errors returned by Load() and LoadFile().
const ParseError = "elfimage: %v"

// Image is the parsed and immutable view of an ELF file.
type Image struct {
	Class   elf.Class
	Data    elf.Data
	Machine elf.Machine
	Type    elf.Type
	Entry   uint64

	symbols  []Symbol
	sections []Section
	segments []Segment

	// index of the first symbol or section with a given name
	symbolIdx  map[string]int
	sectionIdx map[string]int
}

// LoadFile reads the file at path and parses it with Load().
func LoadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	return Load(data)
}

// Load parses the data as a 32bit little-endian ARM ELF file.
func Load(data []byte) (*Image, error) {
	ef, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	defer ef.Close()

	// sanity checks on ELF data
	if ef.Class != elf.ELFCLASS32 {
		return nil, curated.Errorf(ParseError, "is not 32bit")
	}
	if ef.Data != elf.ELFDATA2LSB || ef.ByteOrder != binary.LittleEndian {
		return nil, curated.Errorf(ParseError, "is not little-endian")
	}
	if ef.Machine != elf.EM_ARM {
		return nil, curated.Errorf(ParseError, "is not ARM")
	}
	if ef.Version != elf.EV_CURRENT {
		return nil, curated.Errorf(ParseError, "unknown version")
	}

	img := &Image{
		Class:      ef.Class,
		Data:       ef.Data,
		Machine:    ef.Machine,
		Type:       ef.Type,
		Entry:      ef.Entry,
		symbolIdx:  make(map[string]int),
		sectionIdx: make(map[string]int),
	}

	logger.Logf(logger.Allow, "ELF", "%s %s, entry %08x", img.Machine, img.Type, img.Entry)

	if err := img.loadSections(ef); err != nil {
		return nil, err
	}
	if err := img.loadSegments(ef, uint64(len(data))); err != nil {
		return nil, err
	}
	if err := img.loadSymbols(ef); err != nil {
		return nil, err
	}

	return img, nil
}

func (img *Image) loadSections(ef *elf.File) error {
	for _, sec := range ef.Sections {
		if sec.Type == elf.SHT_NULL {
			continue
		}

		s := Section{
			Name:    sec.Name,
			Address: sec.Addr,
			Size:    sec.Size,
			Type:    sec.Type,
			Flags:   sec.Flags,
		}

		if _, ok := img.sectionIdx[s.Name]; !ok {
			img.sectionIdx[s.Name] = len(img.sections)
		}
		img.sections = append(img.sections, s)

		if s.Allocated() {
			logger.Logf(logger.Allow, "ELF", "%s: %08x to %08x (%d)", s.Name, s.Address, s.Address+s.Size, s.Size)
		}
	}

	return nil
}

func (img *Image) loadSegments(ef *elf.File, fileSize uint64) error {
	for _, p := range ef.Progs {
		s := Segment{
			Type:   p.Type,
			Flags:  p.Flags,
			Vaddr:  p.Vaddr,
			Paddr:  p.Paddr,
			Memsz:  p.Memsz,
			Filesz: p.Filesz,
		}

		if p.Type == elf.PT_LOAD && p.Filesz > 0 {
			if p.Off > fileSize || p.Filesz > fileSize-p.Off {
				return curated.Errorf(ParseError, "segment data is truncated")
			}
			s.Data = make([]byte, p.Filesz)
			if _, err := io.ReadFull(p.Open(), s.Data); err != nil {
				return curated.Errorf(ParseError, err)
			}
		}

		// overlapping virtual ranges mean the segment used for translation
		// depends on program header order
		if s.Type == elf.PT_LOAD {
			for _, o := range img.segments {
				if o.Type == elf.PT_LOAD && s.overlaps(o) {
					logger.Logf(logger.Allow, "ELF", "segment at %08x overlaps segment at %08x", s.Vaddr, o.Vaddr)
				}
			}
			logger.Logf(logger.Allow, "ELF", "PT_LOAD: vaddr %08x paddr %08x memsz %d filesz %d", s.Vaddr, s.Paddr, s.Memsz, s.Filesz)
		}

		img.segments = append(img.segments, s)
	}

	return nil
}

func (img *Image) loadSymbols(ef *elf.File) error {
	symbols, err := ef.Symbols()
	if err != nil {
		// an image without a symbol table is not malformed. every symbol
		// lookup will fail and it is for the caller to decide if that's a
		// problem
		if errors.Is(err, elf.ErrNoSymbols) {
			logger.Log(logger.Allow, "ELF", "no symbol table")
			return nil
		}
		return curated.Errorf(ParseError, err)
	}

	for _, sym := range symbols {
		s := Symbol{
			Name:    sym.Name,
			Address: sym.Value,
			Size:    sym.Size,
		}
		if _, ok := img.symbolIdx[s.Name]; !ok {
			img.symbolIdx[s.Name] = len(img.symbols)
		}
		img.symbols = append(img.symbols, s)
	}

	logger.Logf(logger.Allow, "ELF", "%d symbols", len(img.symbols))

	return nil
}
