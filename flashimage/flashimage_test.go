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

package flashimage_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/elfimage"
	"github.com/jetsetilly/elflayout/elfimage/elftest"
	"github.com/jetsetilly/elflayout/flashimage"
	"github.com/jetsetilly/elflayout/test"
	"github.com/marcinbor85/gohex"
)

func load(t *testing.T, f elftest.File) *elfimage.Image {
	t.Helper()
	img, err := elfimage.Load(f.Bytes())
	test.DemandSuccess(t, err)
	return img
}

func testFile() elftest.File {
	fcb := elftest.Load(0x60000400, 0x60000400, 0x200)
	fcb.Data = []byte{0x46, 0x43, 0x46, 0x42}

	vt := elftest.Load(0x20002000, 0x60002000, 0x400)
	vt.Data = []byte{0x00, 0x20, 0x00, 0x20}

	text := elftest.Load(0x00000000, 0x60003000, 0x10)
	text.Data = bytes.Repeat([]byte{0xaa}, 0x10)

	return elftest.File{
		Entry: 0x00000001,
		Sections: []elftest.Section{
			{Name: ".vector_table", Addr: 0x20002000, Size: 0x400},
			{Name: ".text", Addr: 0x00000000, Size: 0x10},
		},
		Segments: []elftest.Segment{
			vt,
			text,
			fcb,
			// not in the file and not in the load image
			{Vaddr: 0x20200000, Paddr: 0x20200000, Memsz: 0x100},
		},
	}
}

func TestBuild(t *testing.T) {
	mem, err := flashimage.Build(load(t, testFile()))
	test.DemandSuccess(t, err)

	segs := mem.GetDataSegments()
	test.DemandEquality(t, len(segs), 3)

	test.ExpectEquality(t, segs[0].Address, 0x60000400)
	test.ExpectEquality(t, len(segs[0].Data), 0x200)
	test.ExpectSuccess(t, bytes.HasPrefix(segs[0].Data, []byte("FCFB")))
	test.ExpectEquality(t, segs[0].Data[4], 0xff)

	test.ExpectEquality(t, segs[1].Address, 0x60002000)
	test.ExpectEquality(t, len(segs[1].Data), 0x400)

	test.ExpectEquality(t, segs[2].Address, 0x60003000)
	test.ExpectSuccess(t, bytes.Equal(segs[2].Data, bytes.Repeat([]byte{0xaa}, 0x10)))

	start, ok := mem.GetStartAddress()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, start, 1)
}

func TestWrite(t *testing.T) {
	img := load(t, testFile())

	var b bytes.Buffer
	test.DemandSuccess(t, flashimage.Write(&b, img))
	test.ExpectSuccess(t, strings.HasPrefix(b.String(), ":"))
	test.ExpectSuccess(t, strings.Contains(b.String(), ":00000001FF"))

	mem := gohex.NewMemory()
	test.DemandSuccess(t, mem.ParseIntelHex(&b))

	expected, err := flashimage.Build(img)
	test.DemandSuccess(t, err)

	a := mem.GetDataSegments()
	e := expected.GetDataSegments()
	test.DemandEquality(t, len(a), len(e))
	for i := range a {
		test.ExpectEquality(t, a[i].Address, e[i].Address)
		test.ExpectSuccess(t, bytes.Equal(a[i].Data, e[i].Data))
	}
}

func TestOverlap(t *testing.T) {
	f := testFile()
	f.Segments = append(f.Segments, elftest.Load(0x20000000, 0x60002200, 0x10))

	_, err := flashimage.Build(load(t, f))
	test.ExpectSuccess(t, curated.Is(err, flashimage.BuildError))
}

func TestNoContent(t *testing.T) {
	f := testFile()
	f.Segments = f.Segments[3:]

	_, err := flashimage.Build(load(t, f))
	test.ExpectSuccess(t, curated.Is(err, flashimage.BuildError))

	var b bytes.Buffer
	test.ExpectFailure(t, flashimage.Write(&b, load(t, f)))
	test.ExpectEquality(t, b.Len(), 0)
}

// the ELF image is not changed by building the load image
func TestReadOnly(t *testing.T) {
	data := testFile().Bytes()
	original := append([]byte{}, data...)

	img, err := elfimage.Load(data)
	test.DemandSuccess(t, err)

	mem, err := flashimage.Build(img)
	test.DemandSuccess(t, err)

	// changing the load image does not change the ELF image
	segs := mem.GetDataSegments()
	segs[0].Data[0] = 0x00

	test.ExpectSuccess(t, bytes.Equal(data, original))
	test.ExpectEquality(t, img.LoadSegments()[2].Data[0], 0x46)
}
