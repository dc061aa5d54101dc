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

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/database"
	"github.com/jetsetilly/elflayout/layout"
	"github.com/jetsetilly/elflayout/logger"
)

// LoadDatabase reads the profiles in the board database. Profiles are
// returned in the order their board entries appear in the database. Every
// profile is validated.
func LoadDatabase(path string) ([]layout.Profile, error) {
	db, err := database.StartSession(path, database.ActivityReading, initSession)
	if err != nil {
		return nil, curated.Errorf("boards: %v", err)
	}
	defer db.EndSession(false)

	var order []string
	profiles := make(map[string]*layout.Profile)

	// entries that refer to a board that has not been seen yet are an
	// error. the board entry must come first
	profile := func(board string) (*layout.Profile, error) {
		p, ok := profiles[board]
		if !ok {
			return nil, fmt.Errorf("entry for %s before board entry", board)
		}
		return p, nil
	}

	_, err = db.SelectAll(func(ent database.Entry) error {
		switch ent := ent.(type) {
		case *boardEntry:
			if _, ok := profiles[ent.board]; ok {
				return fmt.Errorf("duplicate board entry (%s)", ent.board)
			}
			profiles[ent.board] = &layout.Profile{Board: ent.board, Description: ent.description}
			order = append(order, ent.board)
		case *regionEntry:
			p, err := profile(ent.board)
			if err != nil {
				return err
			}
			p.Regions = append(p.Regions, ent.region)
		case *symbolEntry:
			p, err := profile(ent.board)
			if err != nil {
				return err
			}
			p.Symbols = append(p.Symbols, ent.symbol)
		case *sectionEntry:
			p, err := profile(ent.board)
			if err != nil {
				return err
			}
			p.Sections = append(p.Sections, ent.section)
		}
		return nil
	})
	if err != nil {
		return nil, curated.Errorf("boards: %v", err)
	}

	l := make([]layout.Profile, 0, len(order))
	for _, b := range order {
		p := *profiles[b]
		if err := p.Validate(); err != nil {
			return nil, curated.Errorf("boards: %v", err)
		}
		l = append(l, p)
	}

	logger.Logf(logger.Allow, "boards", "%d profiles read from %s", len(l), path)

	return l, nil
}

// ExportDatabase writes the profiles to the board database. The database is
// created if necessary and any existing entries are removed.
func ExportDatabase(path string, profiles []layout.Profile) error {
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return curated.Errorf("boards: %v", err)
		}
	}

	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	if err != nil {
		return curated.Errorf("boards: %v", err)
	}

	for _, k := range db.SortedKeyList() {
		if err := db.Delete(k); err != nil {
			db.EndSession(false)
			return curated.Errorf("boards: %v", err)
		}
	}

	add := func(ent database.Entry) {
		if err == nil {
			err = db.Add(ent)
		}
	}

	for _, p := range profiles {
		add(&boardEntry{board: p.Board, description: p.Description})
		for _, r := range p.Regions {
			add(&regionEntry{board: p.Board, region: r})
		}
		for _, s := range p.Symbols {
			add(&symbolEntry{board: p.Board, symbol: s})
		}
		for _, s := range p.Sections {
			add(&sectionEntry{board: p.Board, section: s})
		}
	}

	if err != nil {
		db.EndSession(false)
		return curated.Errorf("boards: %v", err)
	}

	if err := db.EndSession(true); err != nil {
		return curated.Errorf("boards: %v", err)
	}

	logger.Logf(logger.Allow, "boards", "%d profiles written to %s", len(profiles), path)

	return nil
}
