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

// Package elftest creates 32bit little-endian ELF files for use in tests. The
// files have the section headers, program headers and symbols that are
// specified in a File value and nothing else. There is no code and no
// relocation information.
//
// Content is written separately for every section and for every segment. This
// is unlike the output of a real linker, where segments share content with
// the sections they contain, but nothing in this project needs the two to be
// shared.
package elftest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Section describes a section header in the file.
type Section struct {
	Name string

	// Type defaults to SHT_PROGBITS. Flags defaults to SHF_ALLOC
	Type  elf.SectionType
	Flags elf.SectionFlag

	Addr uint32
	Size uint32

	// content of the section. Data is padded with zero bytes if it is
	// shorter than Size. nothing is written for SHT_NOBITS sections
	Data []byte
}

// NoLoad is a convenience function that creates a SHT_NOBITS section.
func NoLoad(name string, addr uint32, size uint32) Section {
	return Section{
		Name:  name,
		Type:  elf.SHT_NOBITS,
		Flags: elf.SHF_ALLOC | elf.SHF_WRITE,
		Addr:  addr,
		Size:  size,
	}
}

// Segment describes an entry in the program header table.
type Segment struct {
	// Type defaults to PT_LOAD
	Type elf.ProgType

	Vaddr  uint32
	Paddr  uint32
	Memsz  uint32
	Filesz uint32

	// content of the segment. Data is padded with the value 0xff if it is
	// shorter than Filesz
	Data []byte
}

// Load is a convenience function that creates a PT_LOAD segment where all of
// the segment is in the file.
func Load(vaddr uint32, paddr uint32, size uint32) Segment {
	return Segment{
		Type:   elf.PT_LOAD,
		Vaddr:  vaddr,
		Paddr:  paddr,
		Memsz:  size,
		Filesz: size,
	}
}

// Symbol describes an entry in the symbol table.
type Symbol struct {
	Name  string
	Value uint32
	Size  uint32

	// name of the section the symbol is in. if the section is empty or not
	// found then the symbol is an absolute symbol
	Section string
}

// File describes an ELF file.
type File struct {
	// Machine defaults to EM_ARM
	Machine elf.Machine

	Entry    uint32
	Sections []Section
	Segments []Segment
	Symbols  []Symbol

	// the symbol table is omitted if NoSymbolTable is true. otherwise an
	// empty Symbols slice will result in a symbol table with just the null
	// symbol
	NoSymbolTable bool
}

const (
	ehdrSize = 52
	phdrSize = 32
	shdrSize = 40
	symSize  = 16
)

type strtab struct {
	buf bytes.Buffer
}

func newStrtab() *strtab {
	s := &strtab{}
	s.buf.WriteByte(0)
	return s
}

func (s *strtab) add(name string) uint32 {
	if name == "" {
		return 0
	}
	idx := uint32(s.buf.Len())
	s.buf.WriteString(name)
	s.buf.WriteByte(0)
	return idx
}

type shdr struct {
	name, typ, flags, addr, offset, size, link, info, align, entsize uint32
}

// Bytes returns the contents of the ELF file.
func (f File) Bytes() []byte {
	le := binary.LittleEndian

	machine := f.Machine
	if machine == elf.EM_NONE {
		machine = elf.EM_ARM
	}

	var body bytes.Buffer
	offset := func() uint32 {
		// content starts after the ELF and program headers
		return uint32(ehdrSize + phdrSize*len(f.Segments) + body.Len())
	}
	pad := func() {
		for body.Len()%4 != 0 {
			body.WriteByte(0)
		}
	}

	// segment content
	phdrs := make([]byte, 0, phdrSize*len(f.Segments))
	for _, s := range f.Segments {
		typ := s.Type
		if typ == elf.PT_NULL {
			typ = elf.PT_LOAD
		}

		off := offset()
		data := append(append([]byte{}, s.Data...), bytes.Repeat([]byte{0xff}, int(s.Filesz))...)
		body.Write(data[:s.Filesz])
		pad()

		p := make([]byte, phdrSize)
		le.PutUint32(p[0:], uint32(typ))
		le.PutUint32(p[4:], off)
		le.PutUint32(p[8:], s.Vaddr)
		le.PutUint32(p[12:], s.Paddr)
		le.PutUint32(p[16:], s.Filesz)
		le.PutUint32(p[20:], s.Memsz)
		le.PutUint32(p[24:], uint32(elf.PF_R|elf.PF_W|elf.PF_X))
		le.PutUint32(p[28:], 4)
		phdrs = append(phdrs, p...)
	}

	shstrtab := newStrtab()
	strtab := newStrtab()

	// section headers. the first is the null section
	shdrs := []shdr{{}}
	index := make(map[string]int)

	for _, s := range f.Sections {
		typ := s.Type
		if typ == elf.SHT_NULL {
			typ = elf.SHT_PROGBITS
		}
		flags := s.Flags
		if flags == 0 {
			flags = elf.SHF_ALLOC
		}

		h := shdr{
			name:  shstrtab.add(s.Name),
			typ:   uint32(typ),
			flags: uint32(flags),
			addr:  s.Addr,
			size:  s.Size,
			align: 4,
		}

		if typ != elf.SHT_NOBITS {
			h.offset = offset()
			data := append(append([]byte{}, s.Data...), make([]byte, s.Size)...)
			body.Write(data[:s.Size])
			pad()
		} else {
			h.offset = offset()
		}

		if _, ok := index[s.Name]; !ok {
			index[s.Name] = len(shdrs)
		}
		shdrs = append(shdrs, h)
	}

	// symbol table and the string table for the symbol names
	if !f.NoSymbolTable {
		symtabIdx := len(shdrs)
		strtabIdx := symtabIdx + 1

		var syms bytes.Buffer
		syms.Write(make([]byte, symSize))
		for _, s := range f.Symbols {
			b := make([]byte, symSize)
			le.PutUint32(b[0:], strtab.add(s.Name))
			le.PutUint32(b[4:], s.Value)
			le.PutUint32(b[8:], s.Size)
			b[12] = byte(elf.STB_GLOBAL)<<4 | byte(elf.STT_OBJECT)
			shndx := uint16(elf.SHN_ABS)
			if i, ok := index[s.Section]; ok {
				shndx = uint16(i)
			}
			le.PutUint16(b[14:], shndx)
			syms.Write(b)
		}

		h := shdr{
			name:    shstrtab.add(".symtab"),
			typ:     uint32(elf.SHT_SYMTAB),
			offset:  offset(),
			size:    uint32(syms.Len()),
			link:    uint32(strtabIdx),
			info:    1,
			align:   4,
			entsize: symSize,
		}
		body.Write(syms.Bytes())
		pad()
		shdrs = append(shdrs, h)

		h = shdr{
			name:   shstrtab.add(".strtab"),
			typ:    uint32(elf.SHT_STRTAB),
			offset: offset(),
			size:   uint32(strtab.buf.Len()),
			align:  1,
		}
		body.Write(strtab.buf.Bytes())
		pad()
		shdrs = append(shdrs, h)
	}

	// section header string table is always the last section
	shstrndx := len(shdrs)
	h := shdr{
		name:  shstrtab.add(".shstrtab"),
		typ:   uint32(elf.SHT_STRTAB),
		align: 1,
	}
	h.offset = offset()
	h.size = uint32(shstrtab.buf.Len())
	body.Write(shstrtab.buf.Bytes())
	pad()
	shdrs = append(shdrs, h)

	shoff := offset()

	// ELF header
	var out bytes.Buffer
	ident := [elf.EI_NIDENT]byte{0x7f, 'E', 'L', 'F', byte(elf.ELFCLASS32), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)}
	out.Write(ident[:])

	e := make([]byte, ehdrSize-elf.EI_NIDENT)
	le.PutUint16(e[0:], uint16(elf.ET_EXEC))
	le.PutUint16(e[2:], uint16(machine))
	le.PutUint32(e[4:], uint32(elf.EV_CURRENT))
	le.PutUint32(e[8:], f.Entry)
	if len(f.Segments) > 0 {
		le.PutUint32(e[12:], ehdrSize)
	}
	le.PutUint32(e[16:], shoff)
	le.PutUint32(e[20:], 0x05000400)
	le.PutUint16(e[24:], ehdrSize)
	le.PutUint16(e[26:], phdrSize)
	le.PutUint16(e[28:], uint16(len(f.Segments)))
	le.PutUint16(e[30:], shdrSize)
	le.PutUint16(e[32:], uint16(len(shdrs)))
	le.PutUint16(e[34:], uint16(shstrndx))
	out.Write(e)

	out.Write(phdrs)
	out.Write(body.Bytes())

	for _, h := range shdrs {
		b := make([]byte, shdrSize)
		le.PutUint32(b[0:], h.name)
		le.PutUint32(b[4:], h.typ)
		le.PutUint32(b[8:], h.flags)
		le.PutUint32(b[12:], h.addr)
		le.PutUint32(b[16:], h.offset)
		le.PutUint32(b[20:], h.size)
		le.PutUint32(b[24:], h.link)
		le.PutUint32(b[28:], h.info)
		le.PutUint32(b[32:], h.align)
		le.PutUint32(b[36:], h.entsize)
		out.Write(b)
	}

	return out.Bytes()
}
