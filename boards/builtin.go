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

package boards

import "github.com/jetsetilly/elflayout/layout"

// names of the memory regions used by the built-in boards.
const (
	ITCM  = "ITCM"
	DTCM  = "DTCM"
	OCRAM = "OCRAM"
	FLASH = "FLASH"
)

// names of the symbols checked by the built-in boards.
const (
	FlexSPIConfigurationBlock = "FLEXSPI_CONFIGURATION_BLOCK"
	FlexRAMConfig             = "__flexram_config"
)

const (
	fcbSize         = 512
	stackSize       = 8 * 1024
	vectorTableSize = 1024
	imageOffset     = 0x2000
)

func regions(itcm uint64, dtcm uint64, ocramBase uint64, ocram uint64, flashBase uint64, flash uint64) []layout.Region {
	return []layout.Region{
		{Name: ITCM, Base: 0x00000000, Size: itcm},
		{Name: DTCM, Base: 0x20000000, Size: dtcm},
		{Name: OCRAM, Base: ocramBase, Size: ocram},
		{Name: FLASH, Base: flashBase, Size: flash},
	}
}

func symbols(fcb uint64, flexram uint64) []layout.SymbolExpectation {
	return []layout.SymbolExpectation{
		{
			Symbol:      FlexSPIConfigurationBlock,
			Address:     layout.Exactly(fcb),
			Size:        layout.Exactly(fcbSize),
			Region:      FLASH,
			InLoadImage: true,
		},
		{
			// the value of the symbol is the value written to the FlexRAM
			// bank configuration register
			Symbol:  FlexRAMConfig,
			Address: layout.Exactly(flexram),
		},
	}
}

func stack() layout.Expectation {
	return layout.Expectation{
		Section: ".stack",
		Region:  DTCM,
		Align:   4,
		Load:    layout.NoLoad,
		VMA:     layout.Placement{Rule: layout.PlaceRegionBase},
		Size:    layout.Exactly(stackSize),
	}
}

func vectorTable(flashBase uint64) layout.Expectation {
	return layout.Expectation{
		Section:    ".vector_table",
		Region:     DTCM,
		Align:      4,
		FixedAlign: 1024,
		Load:       layout.LoadResident,
		VMA:        layout.Placement{Rule: layout.PlaceAfterPrevious},
		LoadAt:     layout.Exactly(flashBase + imageOffset),
		LoadRegion: FLASH,
		Size:       layout.Exactly(vectorTableSize),
	}
}

func text(region string, vma layout.PlacementRule) layout.Expectation {
	return layout.Expectation{
		Section:    ".text",
		Region:     region,
		Align:      4,
		Load:       layout.LoadResident,
		VMA:        layout.Placement{Rule: vma},
		LoadRegion: FLASH,
	}
}

func rodata(region string, vma layout.Placement) layout.Expectation {
	return layout.Expectation{
		Section:    ".rodata",
		Region:     region,
		Align:      16,
		Load:       layout.LoadResident,
		VMA:        vma,
		LoadRegion: FLASH,
	}
}

func data(region string, vma layout.PlacementRule) layout.Expectation {
	return layout.Expectation{
		Section:    ".data",
		Region:     region,
		Align:      4,
		Load:       layout.LoadResident,
		VMA:        layout.Placement{Rule: vma},
		LoadRegion: FLASH,
	}
}

func noload(section string, region string, size layout.Optional) layout.Expectation {
	return layout.Expectation{
		Section: section,
		Region:  region,
		Align:   4,
		Load:    layout.NoLoad,
		VMA:     layout.Placement{Rule: layout.PlaceAfterPrevious},
		Size:    size,
	}
}

// the built-in profiles
var builtin = []layout.Profile{
	{
		Board:       "imxrt1010evk",
		Description: "NXP i.MX RT1010 EVK",
		Regions:     regions(32*1024, 32*1024, 0x20200000, 64*1024, 0x60000000, 16*1024*1024),
		Symbols:     symbols(0x60000400, 0b11_10_0101),
		Sections: []layout.Expectation{
			stack(),
			vectorTable(0x60000000),
			noload(".heap", DTCM, layout.Exactly(1024)),
			text(ITCM, layout.PlaceRegionBase),
			rodata(FLASH, layout.Placement{Rule: layout.PlaceAtLoadAddress}),
			data(OCRAM, layout.PlaceRegionBase),
			noload(".bss", OCRAM, layout.Optional{}),
			noload(".uninit", OCRAM, layout.Optional{}),
		},
	},
	{
		Board:       "teensy4",
		Description: "PJRC Teensy 4.0 and 4.1",
		Regions:     regions(128*1024, 384*1024, 0x20200000, 512*1024, 0x60000000, 2*1024*1024),
		Symbols:     symbols(0x60000000, 0xffaaaaaa),
		Sections: []layout.Expectation{
			stack(),
			vectorTable(0x60000000),
			text(FLASH, layout.PlaceAtLoadAddress),
			rodata(DTCM, layout.Placement{Rule: layout.PlaceAfter, After: ".vector_table"}),
			data(DTCM, layout.PlaceAfterPrevious),
			noload(".bss", DTCM, layout.Optional{}),
			noload(".uninit", DTCM, layout.Optional{}),
			noload(".heap", DTCM, layout.Exactly(1024)),
		},
	},
	{
		Board:       "imxrt1170evk-cm7",
		Description: "NXP i.MX RT1170 EVK (Cortex-M7)",
		Regions:     regions(256*1024, 256*1024, 0x20240000, 512*1024, 0x30000000, 16*1024*1024),
		Symbols:     symbols(0x30000400, 0xffffaaaa),
		Sections: []layout.Expectation{
			stack(),
			vectorTable(0x30000000),
			text(ITCM, layout.PlaceRegionBase),
			rodata(DTCM, layout.Placement{Rule: layout.PlaceAfter, After: ".vector_table"}),
			noload(".heap", DTCM, layout.Exactly(0)),
			data(OCRAM, layout.PlaceRegionBase),
			noload(".bss", OCRAM, layout.Optional{}),
			noload(".uninit", OCRAM, layout.Optional{}),
		},
	},
}
