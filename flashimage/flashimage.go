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

// Package flashimage creates the load image of an ELF file. The load image is
// the content of every loadable segment placed at the segment's physical
// address. This is the data that a flashing tool would write to the boot
// device.
//
// The load image is created with the gohex package and can be written in the
// Intel HEX format.
package flashimage

import (
	"fmt"
	"io"

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/elfimage"
	"github.com/jetsetilly/elflayout/logger"
	"github.com/marcinbor85/gohex"
)

// BuildError is the pattern for errors returned by Build().
const BuildError = "flashimage: %v"

// number of data bytes in each line of Intel HEX output.
const lineLength = 16

// Build the load image. Segments with no file content are ignored. It is an
// error for segments to overlap in the load image or for a segment to be
// outside the 32bit address space. The start address of the load image is the
// entry point of the ELF image.
func Build(img *elfimage.Image) (*gohex.Memory, error) {
	mem := gohex.NewMemory()

	for _, seg := range img.LoadSegments() {
		if seg.Filesz == 0 {
			continue
		}

		if seg.Paddr+seg.Filesz > 1<<32 {
			return nil, curated.Errorf(BuildError, fmt.Sprintf("segment at %08x is outside 32bit address space", seg.Paddr))
		}

		// the load image has its own copy of the segment data
		data := append([]byte(nil), seg.Data...)

		if err := mem.AddBinary(uint32(seg.Paddr), data); err != nil {
			return nil, curated.Errorf(BuildError, fmt.Sprintf("segment at %08x: %v", seg.Paddr, err))
		}

		logger.Logf(logger.Allow, "flashimage", "%08x to %08x", seg.Paddr, seg.Paddr+seg.Filesz)
	}

	if len(mem.GetDataSegments()) == 0 {
		return nil, curated.Errorf(BuildError, "no loadable content")
	}

	mem.SetStartAddress(uint32(img.Entry))

	return mem, nil
}

// Write the load image to the io.Writer in the Intel HEX format.
func Write(w io.Writer, img *elfimage.Image) error {
	mem, err := Build(img)
	if err != nil {
		return err
	}

	if err := mem.DumpIntelHex(w, lineLength); err != nil {
		return curated.Errorf(BuildError, err)
	}

	return nil
}
