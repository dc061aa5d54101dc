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

	"github.com/jetsetilly/elflayout/elfimage"
	"github.com/jetsetilly/elflayout/logger"
)

// Image is the view of an ELF image required by Verify(). It is satisfied by
// *elfimage.Image.
type Image interface {
	FindSymbol(name string) (elfimage.Symbol, bool)
	FindSection(name string) (elfimage.Section, bool)
	Translate(sec elfimage.Section) (uint64, bool)
	FileBacked(addr uint64, size uint64) bool
}

// a section that was found in the image.
type placed struct {
	exp Expectation
	sec elfimage.Section
	lma uint64
}

func (p placed) end(alignment uint64) uint64 {
	return p.sec.Address + Align(p.sec.Size, alignment)
}

func (p placed) loadEnd(alignment uint64) uint64 {
	return p.lma + Align(p.sec.Size, alignment)
}

type verifier struct {
	img     Image
	profile Profile
	report  Report

	// sections found so far, keyed by name
	placed map[string]placed

	// the previous entry in the profile and the previous load-resident
	// entry. the pointers are nil if the entry was missing from the image
	prev     *placed
	prevLoad *placed

	// whether any entry or any load-resident entry has been seen. a missing
	// section still counts as being seen
	seen     bool
	seenLoad bool
}

// Verify checks the image against the profile. Every check that can be run is
// run and the results are collected in the returned Report. The image is not
// altered and the same image and profile always produce the same Report.
func Verify(img Image, profile Profile) Report {
	v := verifier{
		img:     img,
		profile: profile,
		report: Report{
			Board: profile.Board,
		},
		placed: make(map[string]placed),
	}

	for _, s := range profile.Symbols {
		v.symbol(s)
	}

	for _, e := range profile.Sections {
		v.section(e)
	}

	logger.Logf(logger.Allow, "layout", "%s: %d errors, %d warnings", profile.Board, v.report.Errors(), v.report.Warnings())

	return v.report
}

func (v *verifier) fail(subject string, rule Rule, expected uint64, actual uint64, detail string) {
	v.report.Diagnostics = append(v.report.Diagnostics, Diagnostic{
		Severity: Error,
		Subject:  subject,
		Rule:     rule,
		Expected: expected,
		Actual:   actual,
		Detail:   detail,
	})
}

func (v *verifier) warn(subject string, rule Rule, detail string) {
	v.report.Diagnostics = append(v.report.Diagnostics, Diagnostic{
		Severity: Warning,
		Subject:  subject,
		Rule:     rule,
		Detail:   detail,
	})
}

// checks the range against the named region. the region name can be empty,
// in which case there is nothing to check.
func (v *verifier) region(subject string, rule Rule, name string, addr uint64, size uint64) {
	if name == "" {
		return
	}

	r, ok := v.profile.Region(name)
	if !ok {
		logger.Logf(logger.Allow, "layout", "%s: region %s is not in the %s profile", subject, name, v.profile.Board)
		return
	}

	if r.Contains(addr, size) {
		return
	}

	detail := fmt.Sprintf("%08x to %08x is outside %s", addr, addr+size, r)
	if addr < r.Base {
		v.fail(subject, rule, r.Base, addr, detail)
	} else {
		v.fail(subject, rule, r.End(), addr+size, detail)
	}
}

func (v *verifier) symbol(s SymbolExpectation) {
	sym, ok := v.img.FindSymbol(s.Symbol)
	if !ok {
		v.fail(s.Symbol, RuleSymbolNotFound, 0, 0, "")
		return
	}

	if s.Address.Set && sym.Address != s.Address.Value {
		v.fail(s.Symbol, RuleSymbolAddress, s.Address.Value, sym.Address, "")
	}

	if s.Size.Set && sym.Size != s.Size.Value {
		v.fail(s.Symbol, RuleSymbolSize, s.Size.Value, sym.Size, "")
	}

	v.region(s.Symbol, RuleSymbolRegion, s.Region, sym.Address, sym.Size)

	if s.InLoadImage && !v.img.FileBacked(sym.Address, sym.Size) {
		v.fail(s.Symbol, RuleSymbolNotLoaded, 0, 0,
			fmt.Sprintf("%08x to %08x is not in the load image", sym.Address, sym.Address+sym.Size))
	}
}

func (v *verifier) section(e Expectation) {
	name := e.Section

	first := !v.seen
	firstLoad := !v.seenLoad
	v.seen = true
	if e.Load == LoadResident {
		v.seenLoad = true
	}

	sec, ok := v.img.FindSection(name)
	if !ok {
		v.fail(name, RuleSectionNotFound, 0, 0, "")
		v.prev = nil
		if e.Load == LoadResident {
			v.prevLoad = nil
		}
		return
	}

	lma, contained := v.img.Translate(sec)
	p := placed{exp: e, sec: sec, lma: lma}

	logger.Logf(logger.Allow, "layout", "%s: vma %08x lma %08x size %#x", name, sec.Address, lma, sec.Size)

	// region
	v.region(name, RuleRegion, e.Region, sec.Address, sec.Size)

	// alignment
	if e.Align > 1 && sec.Address%e.Align != 0 {
		v.fail(name, RuleAlignment, e.Align, sec.Address%e.Align,
			fmt.Sprintf("%08x is not a multiple of %d", sec.Address, e.Align))
	}

	// placement of the VMA
	v.placement(p, first)

	// placement of the LMA
	switch e.Load {
	case LoadResident:
		if e.LoadAt.Set && lma != e.LoadAt.Value {
			v.fail(name, RuleLoadAdjacency, e.LoadAt.Value, lma, "at fixed load address")
		}
		if !firstLoad && v.prevLoad != nil {
			expected := v.prevLoad.loadEnd(e.Align)
			if lma != expected {
				v.fail(name, RuleLoadAdjacency, expected, lma, fmt.Sprintf("after %s in the load image", v.prevLoad.exp.Section))
			}
		}
	case NoLoad:
		if lma != sec.Address {
			v.fail(name, RuleLoadEqualsRun, sec.Address, lma, "")
		}
	}

	// fixed alignment
	if e.FixedAlign > 1 && sec.Address%e.FixedAlign != 0 {
		v.fail(name, RuleFixedAlignment, e.FixedAlign, sec.Address%e.FixedAlign,
			fmt.Sprintf("%08x is not a multiple of %d", sec.Address, e.FixedAlign))
	}

	// size
	if e.Size.Set && sec.Size != e.Size.Value {
		v.fail(name, RuleSize, e.Size.Value, sec.Size, "")
	}

	// load region
	v.region(name, RuleLoadRegion, e.LoadRegion, lma, sec.Size)

	// section header compared to segment containment
	v.classify(p, contained)

	v.placed[name] = p
	v.prev = &p
	if e.Load == LoadResident {
		v.prevLoad = &p
	}
}

func (v *verifier) placement(p placed, first bool) {
	e := p.exp

	rule := e.VMA.Rule
	if rule == PlaceDefault {
		if e.Load == NoLoad {
			rule = PlaceAfterPrevious
		} else {
			rule = PlaceFree
		}
	}

	var expected uint64
	var detail string

	switch rule {
	case PlaceFree:
		return

	case PlaceRegionBase:
		r, ok := v.profile.Region(e.Region)
		if !ok {
			return
		}
		expected = r.Base
		detail = fmt.Sprintf("at base of %s", r.Name)

	case PlaceAddress:
		expected = e.VMA.Address
		detail = "at fixed address"

	case PlaceAfterPrevious:
		if first {
			r, ok := v.profile.Region(e.Region)
			if !ok {
				return
			}
			expected = r.Base
			detail = fmt.Sprintf("at base of %s", r.Name)
		} else {
			if v.prev == nil {
				logger.Logf(logger.Allow, "layout", "%s: previous section is missing. not checking placement", e.Section)
				return
			}
			expected = v.prev.end(e.Align)
			detail = fmt.Sprintf("after %s", v.prev.exp.Section)
		}

	case PlaceAfter:
		after, ok := v.placed[e.VMA.After]
		if !ok {
			logger.Logf(logger.Allow, "layout", "%s: %s is missing. not checking placement", e.Section, e.VMA.After)
			return
		}
		expected = after.end(e.Align)
		detail = fmt.Sprintf("after %s", after.exp.Section)

	case PlaceAtLoadAddress:
		expected = p.lma
		detail = "at load address"

	default:
		return
	}

	if p.sec.Address != expected {
		v.fail(e.Section, RuleAdjacency, expected, p.sec.Address, detail)
	}
}

// the section header flags say whether a section has content in the file. the
// program headers say which addresses are loaded. the two should agree.
func (v *verifier) classify(p placed, contained bool) {
	if p.sec.Size == 0 {
		return
	}

	name := p.exp.Section

	switch {
	case p.exp.Load == NoLoad && p.sec.HasContent():
		v.warn(name, RuleLoadClassification, "section has file content but is expected to be noload")
	case p.exp.Load == LoadResident && !p.sec.HasContent():
		v.warn(name, RuleLoadClassification, "section has no file content but is expected to be loaded")
	}

	switch {
	case p.sec.HasContent() && !contained:
		v.warn(name, RuleLoadClassification, "section has file content but is not in a loadable segment. load address is assumed to be the run address")
	case !p.sec.HasContent() && contained && p.lma != p.sec.Address:
		v.warn(name, RuleLoadClassification, "section has no file content but is in a loadable segment with a different load address")
	}
}
