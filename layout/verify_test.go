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

package layout_test

import (
	"debug/elf"
	"reflect"
	"testing"

	"github.com/jetsetilly/elflayout/elfimage"
	"github.com/jetsetilly/elflayout/elfimage/elftest"
	"github.com/jetsetilly/elflayout/layout"
	"github.com/jetsetilly/elflayout/test"
)

func testProfile() layout.Profile {
	return layout.Profile{
		Board: "test",
		Regions: []layout.Region{
			{Name: "ITCM", Base: 0x00000000, Size: 0x8000},
			{Name: "DTCM", Base: 0x20000000, Size: 0x8000},
			{Name: "FLASH", Base: 0x60000000, Size: 0x100000},
		},
		Symbols: []layout.SymbolExpectation{
			{Symbol: "FLEXSPI_CONFIGURATION_BLOCK", Address: layout.Exactly(0x60000400), Size: layout.Exactly(512), Region: "FLASH", InLoadImage: true},
			{Symbol: "__flexram_config", Address: layout.Exactly(0xe5)},
		},
		Sections: []layout.Expectation{
			{Section: ".stack", Region: "DTCM", Align: 4, Load: layout.NoLoad,
				VMA: layout.Placement{Rule: layout.PlaceRegionBase}, Size: layout.Exactly(0x2000)},
			{Section: ".vector_table", Region: "DTCM", Align: 4, FixedAlign: 1024, Load: layout.LoadResident,
				VMA: layout.Placement{Rule: layout.PlaceAfterPrevious}, LoadAt: layout.Exactly(0x60002000),
				LoadRegion: "FLASH", Size: layout.Exactly(0x400)},
			{Section: ".text", Region: "ITCM", Align: 4, Load: layout.LoadResident,
				VMA: layout.Placement{Rule: layout.PlaceRegionBase}, LoadRegion: "FLASH"},
			{Section: ".rodata", Region: "DTCM", Align: 16, Load: layout.LoadResident,
				VMA: layout.Placement{Rule: layout.PlaceAfter, After: ".vector_table"}, LoadRegion: "FLASH"},
			{Section: ".bss", Region: "DTCM", Align: 4, Load: layout.NoLoad},
		},
	}
}

// an image that conforms to testProfile()
func testFile() elftest.File {
	return elftest.File{
		Sections: []elftest.Section{
			elftest.NoLoad(".stack", 0x20000000, 0x2000),
			{Name: ".vector_table", Addr: 0x20002000, Size: 0x400},
			{Name: ".text", Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Addr: 0x00000000, Size: 0x104},
			{Name: ".rodata", Addr: 0x20002400, Size: 0x20},
			elftest.NoLoad(".bss", 0x20002420, 0x10),
		},
		Segments: []elftest.Segment{
			elftest.Load(0x60000400, 0x60000400, 0x200),
			elftest.Load(0x20002000, 0x60002000, 0x400),
			elftest.Load(0x00000000, 0x60002400, 0x104),
			elftest.Load(0x20002400, 0x60002510, 0x20),
		},
		Symbols: []elftest.Symbol{
			{Name: "FLEXSPI_CONFIGURATION_BLOCK", Value: 0x60000400, Size: 512},
			{Name: "__flexram_config", Value: 0xe5},
		},
	}
}

func section(f *elftest.File, name string) *elftest.Section {
	for i := range f.Sections {
		if f.Sections[i].Name == name {
			return &f.Sections[i]
		}
	}
	panic(name)
}

func symbol(f *elftest.File, name string) *elftest.Symbol {
	for i := range f.Symbols {
		if f.Symbols[i].Name == name {
			return &f.Symbols[i]
		}
	}
	panic(name)
}

func verify(t *testing.T, f elftest.File) layout.Report {
	t.Helper()
	img, err := elfimage.Load(f.Bytes())
	test.DemandSuccess(t, err)
	return layout.Verify(img, testProfile())
}

func TestProfileIsValid(t *testing.T) {
	test.ExpectSuccess(t, testProfile().Validate())
}

func TestConforming(t *testing.T) {
	r := verify(t, testFile())
	test.ExpectSuccess(t, r.Passed())
	test.ExpectEquality(t, len(r.Diagnostics), 0)
	test.ExpectEquality(t, r.Board, "test")
}

func TestMissingSymbol(t *testing.T) {
	f := testFile()
	f.Symbols = f.Symbols[1:]

	r := verify(t, f)
	test.ExpectFailure(t, r.Passed())
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Rule, layout.RuleSymbolNotFound)
	test.ExpectEquality(t, r.Diagnostics[0].Subject, "FLEXSPI_CONFIGURATION_BLOCK")
}

func TestSymbolAddress(t *testing.T) {
	f := testFile()
	symbol(&f, "FLEXSPI_CONFIGURATION_BLOCK").Value = 0x60000000
	f.Segments[0] = elftest.Load(0x60000000, 0x60000000, 0x200)

	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	d := r.Diagnostics[0]
	test.ExpectEquality(t, d.Rule, layout.RuleSymbolAddress)
	test.ExpectEquality(t, d.Expected, 0x60000400)
	test.ExpectEquality(t, d.Actual, 0x60000000)
}

func TestSymbolValue(t *testing.T) {
	f := testFile()
	symbol(&f, "__flexram_config").Value = 0xaa

	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Subject, "__flexram_config")
	test.ExpectEquality(t, r.Diagnostics[0].Rule, layout.RuleSymbolAddress)
	test.ExpectEquality(t, r.Diagnostics[0].Actual, 0xaa)
}

func TestSymbolSize(t *testing.T) {
	f := testFile()
	symbol(&f, "FLEXSPI_CONFIGURATION_BLOCK").Size = 256

	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Rule, layout.RuleSymbolSize)
	test.ExpectEquality(t, r.Diagnostics[0].Expected, 512)
	test.ExpectEquality(t, r.Diagnostics[0].Actual, 256)
}

func TestSymbolNotLoaded(t *testing.T) {
	f := testFile()
	f.Segments = f.Segments[1:]

	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Rule, layout.RuleSymbolNotLoaded)
}

// the stack moved by one word. the only error for the stack is its
// placement. the vector table, which follows the stack, is also reported
func TestStackOffset(t *testing.T) {
	f := testFile()
	section(&f, ".stack").Addr = 0x20000004

	r := verify(t, f)
	test.ExpectFailure(t, r.Passed())

	stack := r.Subject(".stack")
	test.DemandEquality(t, len(stack), 1)
	test.ExpectEquality(t, stack[0].Severity, layout.Error)
	test.ExpectEquality(t, stack[0].Rule, layout.RuleAdjacency)
	test.ExpectEquality(t, stack[0].Expected, 0x20000000)
	test.ExpectEquality(t, stack[0].Actual, 0x20000004)

	vt := r.Subject(".vector_table")
	test.DemandEquality(t, len(vt), 1)
	test.ExpectEquality(t, vt[0].Rule, layout.RuleAdjacency)
	test.ExpectEquality(t, vt[0].Expected, 0x20002004)
}

func TestLoadAdjacency(t *testing.T) {
	f := testFile()
	f.Segments[3] = elftest.Load(0x20002400, 0x60002514, 0x20)

	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	d := r.Diagnostics[0]
	test.ExpectEquality(t, d.Subject, ".rodata")
	test.ExpectEquality(t, d.Rule, layout.RuleLoadAdjacency)
	test.ExpectEquality(t, d.Expected, 0x60002510)
	test.ExpectEquality(t, d.Actual, 0x60002514)
}

func TestLoadAt(t *testing.T) {
	f := testFile()
	f.Segments[1] = elftest.Load(0x20002000, 0x60001000, 0x400)

	r := verify(t, f)
	vt := r.Subject(".vector_table")
	test.DemandEquality(t, len(vt), 1)
	test.ExpectEquality(t, vt[0].Rule, layout.RuleLoadAdjacency)
	test.ExpectEquality(t, vt[0].Expected, 0x60002000)
	test.ExpectEquality(t, vt[0].Actual, 0x60001000)

	// text follows the vector table in the load image
	text := r.Subject(".text")
	test.DemandEquality(t, len(text), 1)
	test.ExpectEquality(t, text[0].Rule, layout.RuleLoadAdjacency)
	test.ExpectEquality(t, text[0].Expected, 0x60001400)
}

func TestFixedAlignment(t *testing.T) {
	f := testFile()
	section(&f, ".vector_table").Addr = 0x20002100
	f.Segments[1] = elftest.Load(0x20002100, 0x60002000, 0x400)

	r := verify(t, f)
	test.ExpectFailure(t, r.Passed())

	fa := r.Rule(layout.RuleFixedAlignment)
	test.DemandEquality(t, len(fa), 1)
	test.ExpectEquality(t, fa[0].Subject, ".vector_table")
	test.ExpectEquality(t, fa[0].Expected, 1024)
	test.ExpectEquality(t, fa[0].Actual, 0x100)
}

// 0x20002400 is a multiple of 1024 so the vector table is aligned but it is
// not immediately after the stack
func TestFixedAlignmentMisplaced(t *testing.T) {
	f := testFile()
	section(&f, ".vector_table").Addr = 0x20002400
	f.Segments[1] = elftest.Load(0x20002400, 0x60002000, 0x400)

	r := verify(t, f)
	test.ExpectEquality(t, len(r.Rule(layout.RuleFixedAlignment)), 0)

	vt := r.Subject(".vector_table")
	test.DemandEquality(t, len(vt), 1)
	test.ExpectEquality(t, vt[0].Rule, layout.RuleAdjacency)
	test.ExpectEquality(t, vt[0].Expected, 0x20002000)
	test.ExpectEquality(t, vt[0].Actual, 0x20002400)
}

func TestAlignment(t *testing.T) {
	f := testFile()
	section(&f, ".rodata").Addr = 0x20002408
	f.Segments[3] = elftest.Load(0x20002408, 0x60002510, 0x20)

	r := verify(t, f)
	rodata := r.Subject(".rodata")
	test.DemandEquality(t, len(rodata), 2)
	test.ExpectEquality(t, rodata[0].Rule, layout.RuleAlignment)
	test.ExpectEquality(t, rodata[0].Expected, 16)
	test.ExpectEquality(t, rodata[0].Actual, 8)
	test.ExpectEquality(t, rodata[1].Rule, layout.RuleAdjacency)
}

func TestRegion(t *testing.T) {
	f := testFile()
	section(&f, ".bss").Size = 0x10000

	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	d := r.Diagnostics[0]
	test.ExpectEquality(t, d.Rule, layout.RuleRegion)
	test.ExpectEquality(t, d.Expected, 0x20008000)
	test.ExpectEquality(t, d.Actual, 0x20012420)
}

func TestSize(t *testing.T) {
	f := testFile()
	section(&f, ".stack").Size = 0x1000

	r := verify(t, f)
	sz := r.Rule(layout.RuleSize)
	test.DemandEquality(t, len(sz), 1)
	test.ExpectEquality(t, sz[0].Subject, ".stack")
	test.ExpectEquality(t, sz[0].Expected, 0x2000)
	test.ExpectEquality(t, sz[0].Actual, 0x1000)
}

func TestMissingSection(t *testing.T) {
	f := testFile()
	f.Sections = append(f.Sections[:1], f.Sections[2:]...)

	// the checks that depend on the vector table are not run and so there
	// is only one diagnostic
	r := verify(t, f)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Rule, layout.RuleSectionNotFound)
	test.ExpectEquality(t, r.Diagnostics[0].Subject, ".vector_table")
}

func TestNoLoadInSegment(t *testing.T) {
	f := testFile()
	f.Segments[3] = elftest.Segment{Vaddr: 0x20002400, Paddr: 0x60002510, Memsz: 0x30, Filesz: 0x20}

	r := verify(t, f)
	bss := r.Subject(".bss")
	test.DemandEquality(t, len(bss), 2)
	test.ExpectEquality(t, bss[0].Rule, layout.RuleLoadEqualsRun)
	test.ExpectEquality(t, bss[0].Expected, 0x20002420)
	test.ExpectEquality(t, bss[0].Actual, 0x60002530)
	test.ExpectEquality(t, bss[1].Severity, layout.Warning)
	test.ExpectEquality(t, bss[1].Rule, layout.RuleLoadClassification)
}

// .text has content but no segment contains it. the load address falls back
// to the run address
func TestExcludedSection(t *testing.T) {
	f := testFile()
	f.Segments = append(f.Segments[:2], f.Segments[3:]...)

	r := verify(t, f)
	test.ExpectFailure(t, r.Passed())

	text := r.Subject(".text")
	test.DemandEquality(t, len(text), 3)
	test.ExpectEquality(t, text[0].Rule, layout.RuleLoadAdjacency)
	test.ExpectEquality(t, text[0].Expected, 0x60002400)
	test.ExpectEquality(t, text[0].Actual, 0)
	test.ExpectEquality(t, text[1].Rule, layout.RuleLoadRegion)
	test.ExpectEquality(t, text[2].Severity, layout.Warning)
	test.ExpectEquality(t, text[2].Rule, layout.RuleLoadClassification)

	rodata := r.Subject(".rodata")
	test.DemandEquality(t, len(rodata), 1)
	test.ExpectEquality(t, rodata[0].Rule, layout.RuleLoadAdjacency)
	test.ExpectEquality(t, rodata[0].Expected, 0x110)
}

func TestClassificationWarning(t *testing.T) {
	f := testFile()
	stack := section(&f, ".stack")
	stack.Type = elf.SHT_PROGBITS

	r := verify(t, f)
	test.ExpectSuccess(t, r.Passed())
	test.ExpectEquality(t, r.Errors(), 0)
	test.ExpectEquality(t, r.Warnings(), 2)
	for _, d := range r.Diagnostics {
		test.ExpectEquality(t, d.Subject, ".stack")
		test.ExpectEquality(t, d.Rule, layout.RuleLoadClassification)
	}
}

func TestEmptyImage(t *testing.T) {
	r := verify(t, elftest.File{})

	expected := []string{
		"FLEXSPI_CONFIGURATION_BLOCK",
		"__flexram_config",
		".stack",
		".vector_table",
		".text",
		".rodata",
		".bss",
	}

	test.DemandEquality(t, len(r.Diagnostics), len(expected))
	for i, d := range r.Diagnostics {
		test.ExpectEquality(t, d.Subject, expected[i])
		test.ExpectEquality(t, d.Severity, layout.Error)
	}
}

func TestIdempotence(t *testing.T) {
	f := testFile()
	section(&f, ".stack").Addr = 0x20000004
	data := f.Bytes()

	// the same bytes loaded and verified twice
	imgA, err := elfimage.Load(data)
	test.DemandSuccess(t, err)
	imgB, err := elfimage.Load(data)
	test.DemandSuccess(t, err)

	a := layout.Verify(imgA, testProfile())
	b := layout.Verify(imgB, testProfile())
	test.ExpectSuccess(t, reflect.DeepEqual(a, b))
	test.ExpectSuccess(t, len(a.Diagnostics) > 0)
}

func TestAtLoadAddress(t *testing.T) {
	p := testProfile()
	p.Sections[2].Region = "FLASH"
	p.Sections[2].VMA = layout.Placement{Rule: layout.PlaceAtLoadAddress}
	test.DemandSuccess(t, p.Validate())

	f := testFile()
	section(&f, ".text").Addr = 0x60002400
	f.Segments[2] = elftest.Load(0x60002400, 0x60002400, 0x104)

	img, err := elfimage.Load(f.Bytes())
	test.DemandSuccess(t, err)

	r := layout.Verify(img, p)
	test.ExpectEquality(t, len(r.Diagnostics), 0)

	// execute in place with the wrong run address
	section(&f, ".text").Addr = 0x60003000
	f.Segments[2] = elftest.Load(0x60003000, 0x60002400, 0x104)

	img, err = elfimage.Load(f.Bytes())
	test.DemandSuccess(t, err)

	r = layout.Verify(img, p)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Rule, layout.RuleAdjacency)
	test.ExpectEquality(t, r.Diagnostics[0].Expected, 0x60002400)
	test.ExpectEquality(t, r.Diagnostics[0].Actual, 0x60003000)
}

func TestPlaceAddress(t *testing.T) {
	p := testProfile()
	p.Sections[4].VMA = layout.Placement{Rule: layout.PlaceAddress, Address: 0x20004000}

	img, err := elfimage.Load(testFile().Bytes())
	test.DemandSuccess(t, err)

	r := layout.Verify(img, p)
	test.DemandEquality(t, len(r.Diagnostics), 1)
	test.ExpectEquality(t, r.Diagnostics[0].Subject, ".bss")
	test.ExpectEquality(t, r.Diagnostics[0].Expected, 0x20004000)
	test.ExpectEquality(t, r.Diagnostics[0].Actual, 0x20002420)
}
