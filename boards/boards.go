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
	"sort"

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/layout"
	"github.com/jetsetilly/elflayout/logger"
)

// UnknownBoard is returned by Lookup() when there is no profile for the
// board identifier.
const UnknownBoard = "boards: unknown board (%s)"

// copies a profile so that the caller can change it without affecting the
// original.
func clone(p layout.Profile) layout.Profile {
	p.Regions = append([]layout.Region(nil), p.Regions...)
	p.Symbols = append([]layout.SymbolExpectation(nil), p.Symbols...)
	p.Sections = append([]layout.Expectation(nil), p.Sections...)
	return p
}

// Lookup returns the built-in profile for the board.
func Lookup(board string) (layout.Profile, error) {
	for _, p := range builtin {
		if p.Board == board {
			return clone(p), nil
		}
	}
	return layout.Profile{}, curated.Errorf(UnknownBoard, board)
}

// List returns the identifiers of the built-in boards in sorted order.
func List() []string {
	l := make([]string, 0, len(builtin))
	for _, p := range builtin {
		l = append(l, p.Board)
	}
	sort.Strings(l)
	return l
}

// Builtin returns a copy of every built-in profile, in sorted order.
func Builtin() []layout.Profile {
	l := make([]layout.Profile, 0, len(builtin))
	for _, b := range List() {
		p, _ := Lookup(b)
		l = append(l, p)
	}
	return l
}

// Catalogue is a collection of profiles. The zero value is an empty catalogue.
type Catalogue struct {
	profiles map[string]layout.Profile
}

// NewCatalogue returns a catalogue with the built-in profiles.
func NewCatalogue() *Catalogue {
	cat := &Catalogue{}
	for _, p := range Builtin() {
		cat.Add(p)
	}
	return cat
}

// Add a profile to the catalogue. A profile with the same board identifier is
// replaced.
func (cat *Catalogue) Add(p layout.Profile) {
	if cat.profiles == nil {
		cat.profiles = make(map[string]layout.Profile)
	}
	if _, ok := cat.profiles[p.Board]; ok {
		logger.Logf(logger.Allow, "boards", "replacing profile for %s", p.Board)
	}
	cat.profiles[p.Board] = clone(p)
}

// AddDatabase adds every profile in the board database to the catalogue.
func (cat *Catalogue) AddDatabase(path string) error {
	profiles, err := LoadDatabase(path)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		cat.Add(p)
	}
	return nil
}

// Lookup returns the profile for the board.
func (cat *Catalogue) Lookup(board string) (layout.Profile, error) {
	p, ok := cat.profiles[board]
	if !ok {
		return layout.Profile{}, curated.Errorf(UnknownBoard, board)
	}
	return clone(p), nil
}

// List returns the identifiers of the boards in the catalogue in sorted order.
func (cat *Catalogue) List() []string {
	l := make([]string, 0, len(cat.profiles))
	for b := range cat.profiles {
		l = append(l, b)
	}
	sort.Strings(l)
	return l
}

// Profiles returns a copy of every profile in the catalogue, in sorted order.
func (cat *Catalogue) Profiles() []layout.Profile {
	l := make([]layout.Profile, 0, len(cat.profiles))
	for _, b := range cat.List() {
		l = append(l, clone(cat.profiles[b]))
	}
	return l
}
