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

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jetsetilly/elflayout/layout"
	"github.com/olekukonko/tablewriter"
	"github.com/xlab/treeprint"
)

// WriteTable writes one line for each profile, in the order given.
func WriteTable(w io.Writer, profiles []layout.Profile) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Board", "Flash", "Sections", "Description"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, p := range profiles {
		flash := "-"
		if r, ok := p.Region(FLASH); ok {
			flash = fmt.Sprintf("%08x %s", r.Base, humanize.IBytes(r.Size))
		}
		table.Append([]string{
			p.Board,
			flash,
			fmt.Sprintf("%d", len(p.Sections)),
			p.Description,
		})
	}

	table.Render()
}

// Describe returns the profile as a tree of regions, symbols and sections.
func Describe(p layout.Profile) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s: %s", p.Board, p.Description))

	regions := tree.AddBranch("regions")
	for _, r := range p.Regions {
		regions.AddNode(fmt.Sprintf("%s %s", r, humanize.IBytes(r.Size)))
	}

	if len(p.Symbols) > 0 {
		symbols := tree.AddBranch("symbols")
		for _, s := range p.Symbols {
			symbols.AddNode(describeSymbol(s))
		}
	}

	sections := tree.AddBranch("sections")
	for _, e := range p.Sections {
		sections.AddNode(describeSection(e))
	}

	return tree.String()
}

func describeSymbol(s layout.SymbolExpectation) string {
	d := []string{s.Symbol}
	if s.Address.Set {
		d = append(d, fmt.Sprintf("at %08x", s.Address.Value))
	}
	if s.Size.Set {
		d = append(d, fmt.Sprintf("size %s", s.Size))
	}
	if s.Region != "" {
		d = append(d, fmt.Sprintf("in %s", s.Region))
	}
	if s.InLoadImage {
		d = append(d, "in load image")
	}
	return strings.Join(d, ", ")
}

func describeSection(e layout.Expectation) string {
	d := []string{e.Section, e.Load.String()}
	if e.Region != "" {
		d = append(d, fmt.Sprintf("in %s", e.Region))
	}
	if e.Align > 1 {
		d = append(d, fmt.Sprintf("align %d", e.Align))
	}
	if e.FixedAlign > 1 {
		d = append(d, fmt.Sprintf("fixed align %d", e.FixedAlign))
	}
	if e.VMA.Rule != layout.PlaceDefault {
		d = append(d, e.VMA.String())
	}
	if e.LoadAt.Set {
		d = append(d, fmt.Sprintf("loaded at %08x", e.LoadAt.Value))
	}
	if e.LoadRegion != "" {
		d = append(d, fmt.Sprintf("loaded in %s", e.LoadRegion))
	}
	if e.Size.Set {
		d = append(d, fmt.Sprintf("size %s", humanize.IBytes(e.Size.Value)))
	}
	return strings.Join(d, ", ")
}
