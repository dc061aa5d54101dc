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

package layout

import (
	"fmt"

	"github.com/jetsetilly/elflayout/curated"
)

// InvalidProfile is the pattern for errors returned by Profile.Validate().
const InvalidProfile = "layout: profile %s: %v"

// Optional is a value that may or may not be required by a profile.
type Optional struct {
	Value uint64
	Set   bool
}

// Exactly returns an Optional that requires the value.
func Exactly(v uint64) Optional {
	return Optional{Value: v, Set: true}
}

func (o Optional) String() string {
	if !o.Set {
		return "-"
	}
	return fmt.Sprintf("%#x", o.Value)
}

// LoadKind says whether a section has content in the boot image.
type LoadKind int

// List of valid LoadKind values.
const (
	// the section occupies memory but is not loaded from the boot image. the
	// LMA of the section must be the same as the VMA
	NoLoad LoadKind = iota

	// the section has content that is loaded from the boot image. the LMA may
	// be different to the VMA
	LoadResident
)

func (k LoadKind) String() string {
	switch k {
	case NoLoad:
		return "noload"
	case LoadResident:
		return "load"
	}
	return "unknown"
}

// PlacementRule specifies how the VMA of a section is checked.
type PlacementRule int

// List of valid PlacementRule values.
const (
	// after the previous entry for non-load sections. unconstrained for
	// load-resident sections
	PlaceDefault PlacementRule = iota

	// no placement check
	PlaceFree

	// the base address of the section's region
	PlaceRegionBase

	// the address in the Placement.Address field
	PlaceAddress

	// immediately after the previous entry, rounded up to the section's
	// alignment. the first entry in a profile is placed at the base of its
	// region
	PlaceAfterPrevious

	// immediately after the entry named in the Placement.After field, rounded
	// up to the section's alignment
	PlaceAfter

	// the VMA is the same as the LMA. ie. the section runs from where it is
	// stored
	PlaceAtLoadAddress
)

// Placement of a section's VMA.
type Placement struct {
	Rule    PlacementRule
	Address uint64
	After   string
}

func (p Placement) String() string {
	switch p.Rule {
	case PlaceFree:
		return "free"
	case PlaceRegionBase:
		return "region base"
	case PlaceAddress:
		return fmt.Sprintf("at %08x", p.Address)
	case PlaceAfterPrevious:
		return "after previous"
	case PlaceAfter:
		return fmt.Sprintf("after %s", p.After)
	case PlaceAtLoadAddress:
		return "at load address"
	}
	return "default"
}

// Expectation is the requirement for one section.
type Expectation struct {
	Section string

	// the region that must contain the VMA range of the section. can be empty
	Region string

	// the alignment of the VMA. also the alignment used when calculating the
	// address that follows the previous entry
	Align uint64

	// an additional alignment requirement of the VMA that is independent of
	// placement. the vector table must be aligned to 1024 bytes for example
	FixedAlign uint64

	Load LoadKind
	VMA  Placement

	// fixed LMA for a load-resident section. usually only used for the
	// first load-resident section
	LoadAt Optional

	// the region that must contain the LMA range of the section. can be empty
	LoadRegion string

	Size Optional
}

// SymbolExpectation is the requirement for one symbol.
type SymbolExpectation struct {
	Symbol  string
	Address Optional
	Size    Optional

	// the region that must contain the symbol. can be empty
	Region string

	// the symbol must be covered by content in the boot image
	InLoadImage bool
}

// Profile is the complete list of requirements for a board.
type Profile struct {
	Board       string
	Description string
	Regions     []Region
	Symbols     []SymbolExpectation
	Sections    []Expectation
}

// Region returns the named region.
func (p Profile) Region(name string) (Region, bool) {
	for _, r := range p.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Validate checks that the profile is self-consistent. Verify() does not
// require a profile to be valid but the results are unlikely to be useful if
// it isn't.
func (p Profile) Validate() error {
	if p.Board == "" {
		return curated.Errorf(InvalidProfile, "?", "no board identifier")
	}

	regions := make(map[string]bool)
	for _, r := range p.Regions {
		if r.Name == "" {
			return curated.Errorf(InvalidProfile, p.Board, "unnamed region")
		}
		if regions[r.Name] {
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("duplicate region (%s)", r.Name))
		}
		if r.Size == 0 {
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("region has no size (%s)", r.Name))
		}
		regions[r.Name] = true
	}

	checkRegion := func(subject string, region string) error {
		if region != "" && !regions[region] {
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: unknown region (%s)", subject, region))
		}
		return nil
	}

	for _, s := range p.Symbols {
		if s.Symbol == "" {
			return curated.Errorf(InvalidProfile, p.Board, "unnamed symbol")
		}
		if err := checkRegion(s.Symbol, s.Region); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for _, e := range p.Sections {
		if e.Section == "" {
			return curated.Errorf(InvalidProfile, p.Board, "unnamed section")
		}
		if seen[e.Section] {
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("duplicate section (%s)", e.Section))
		}
		if err := checkRegion(e.Section, e.Region); err != nil {
			return err
		}
		if err := checkRegion(e.Section, e.LoadRegion); err != nil {
			return err
		}
		if e.Align > 1 && !isPowerOfTwo(e.Align) {
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: alignment is not a power of two (%d)", e.Section, e.Align))
		}
		if e.FixedAlign > 1 && !isPowerOfTwo(e.FixedAlign) {
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: fixed alignment is not a power of two (%d)", e.Section, e.FixedAlign))
		}

		switch e.VMA.Rule {
		case PlaceRegionBase:
			if e.Region == "" {
				return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: placed at region base but has no region", e.Section))
			}
		case PlaceAfter:
			if !seen[e.VMA.After] {
				return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: placed after an unknown or later section (%s)", e.Section, e.VMA.After))
			}
		case PlaceAfterPrevious:
			if len(seen) == 0 && e.Region == "" {
				return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: first section placed after previous but has no region", e.Section))
			}
		case PlaceDefault:
			if e.Load == NoLoad && len(seen) == 0 && e.Region == "" {
				return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: first section placed after previous but has no region", e.Section))
			}
		case PlaceFree, PlaceAddress, PlaceAtLoadAddress:
		default:
			return curated.Errorf(InvalidProfile, p.Board, fmt.Sprintf("%s: unknown placement rule (%d)", e.Section, e.VMA.Rule))
		}

		seen[e.Section] = true
	}

	return nil
}
