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
	"strconv"
	"strings"

	"github.com/jetsetilly/elflayout/database"
	"github.com/jetsetilly/elflayout/layout"
)

// entry types in the board database.
const (
	boardEntryType   = "board"
	regionEntryType  = "region"
	symbolEntryType  = "symbol"
	sectionEntryType = "section"
)

// every entry other than the board entry begins with the board identifier.
type boardEntry struct {
	board       string
	description string
}

type regionEntry struct {
	board  string
	region layout.Region
}

type symbolEntry struct {
	board  string
	symbol layout.SymbolExpectation
}

type sectionEntry struct {
	board   string
	section layout.Expectation
}

func initSession(db *database.Session) error {
	if err := db.RegisterEntryType(boardEntryType, deserialiseBoard); err != nil {
		return err
	}
	if err := db.RegisterEntryType(regionEntryType, deserialiseRegion); err != nil {
		return err
	}
	if err := db.RegisterEntryType(symbolEntryType, deserialiseSymbol); err != nil {
		return err
	}
	if err := db.RegisterEntryType(sectionEntryType, deserialiseSection); err != nil {
		return err
	}
	return nil
}

func serialiseValue(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func deserialiseValue(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value (%s)", s)
	}
	return v, nil
}

const unset = "-"

func serialiseOptional(o layout.Optional) string {
	if !o.Set {
		return unset
	}
	return serialiseValue(o.Value)
}

func deserialiseOptional(s string) (layout.Optional, error) {
	if s == unset {
		return layout.Optional{}, nil
	}
	v, err := deserialiseValue(s)
	if err != nil {
		return layout.Optional{}, err
	}
	return layout.Exactly(v), nil
}

func checkFields(entryType string, fields database.SerialisedEntry, n int) error {
	if len(fields) != n {
		return fmt.Errorf("%s entry: expected %d fields, got %d", entryType, n, len(fields))
	}
	if fields[0] == "" {
		return fmt.Errorf("%s entry: no board identifier", entryType)
	}
	return nil
}

func (e *boardEntry) EntryType() string {
	return boardEntryType
}

func (e *boardEntry) String() string {
	return fmt.Sprintf("%s: %s", e.board, e.description)
}

// descriptions are free text and may contain the database separators.
var (
	escapeDescription   = strings.NewReplacer("%", "%25", ",", "%2C", "\n", "%0A")
	unescapeDescription = strings.NewReplacer("%25", "%", "%2C", ",", "%0A", "\n")
)

func (e *boardEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{e.board, escapeDescription.Replace(e.description)}, nil
}

func (e *boardEntry) CleanUp() error {
	return nil
}

func deserialiseBoard(fields database.SerialisedEntry) (database.Entry, error) {
	if err := checkFields(boardEntryType, fields, 2); err != nil {
		return nil, err
	}
	return &boardEntry{board: fields[0], description: unescapeDescription.Replace(fields[1])}, nil
}

func (e *regionEntry) EntryType() string {
	return regionEntryType
}

func (e *regionEntry) String() string {
	return fmt.Sprintf("%s: %s", e.board, e.region)
}

func (e *regionEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		e.board,
		e.region.Name,
		serialiseValue(e.region.Base),
		serialiseValue(e.region.Size),
	}, nil
}

func (e *regionEntry) CleanUp() error {
	return nil
}

func deserialiseRegion(fields database.SerialisedEntry) (database.Entry, error) {
	if err := checkFields(regionEntryType, fields, 4); err != nil {
		return nil, err
	}

	ent := &regionEntry{board: fields[0]}
	ent.region.Name = fields[1]

	var err error
	if ent.region.Base, err = deserialiseValue(fields[2]); err != nil {
		return nil, err
	}
	if ent.region.Size, err = deserialiseValue(fields[3]); err != nil {
		return nil, err
	}

	return ent, nil
}

func (e *symbolEntry) EntryType() string {
	return symbolEntryType
}

func (e *symbolEntry) String() string {
	return fmt.Sprintf("%s: %s address %s size %s", e.board, e.symbol.Symbol, e.symbol.Address, e.symbol.Size)
}

func (e *symbolEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		e.board,
		e.symbol.Symbol,
		serialiseOptional(e.symbol.Address),
		serialiseOptional(e.symbol.Size),
		e.symbol.Region,
		strconv.FormatBool(e.symbol.InLoadImage),
	}, nil
}

func (e *symbolEntry) CleanUp() error {
	return nil
}

func deserialiseSymbol(fields database.SerialisedEntry) (database.Entry, error) {
	if err := checkFields(symbolEntryType, fields, 6); err != nil {
		return nil, err
	}

	ent := &symbolEntry{board: fields[0]}
	ent.symbol.Symbol = fields[1]
	ent.symbol.Region = fields[4]

	var err error
	if ent.symbol.Address, err = deserialiseOptional(fields[2]); err != nil {
		return nil, err
	}
	if ent.symbol.Size, err = deserialiseOptional(fields[3]); err != nil {
		return nil, err
	}
	if ent.symbol.InLoadImage, err = strconv.ParseBool(fields[5]); err != nil {
		return nil, fmt.Errorf("invalid boolean (%s)", fields[5])
	}

	return ent, nil
}

var placementRules = map[layout.PlacementRule]string{
	layout.PlaceDefault:       "default",
	layout.PlaceFree:          "free",
	layout.PlaceRegionBase:    "base",
	layout.PlaceAddress:       "address",
	layout.PlaceAfterPrevious: "previous",
	layout.PlaceAfter:         "after",
	layout.PlaceAtLoadAddress: "lma",
}

func serialisePlacement(p layout.Placement) (string, string, error) {
	rule, ok := placementRules[p.Rule]
	if !ok {
		return "", "", fmt.Errorf("unknown placement rule (%d)", p.Rule)
	}

	switch p.Rule {
	case layout.PlaceAddress:
		return rule, serialiseValue(p.Address), nil
	case layout.PlaceAfter:
		return rule, p.After, nil
	}
	return rule, unset, nil
}

func deserialisePlacement(rule string, arg string) (layout.Placement, error) {
	for r, s := range placementRules {
		if s != rule {
			continue
		}

		p := layout.Placement{Rule: r}
		switch r {
		case layout.PlaceAddress:
			v, err := deserialiseValue(arg)
			if err != nil {
				return layout.Placement{}, err
			}
			p.Address = v
		case layout.PlaceAfter:
			p.After = arg
		}
		return p, nil
	}

	return layout.Placement{}, fmt.Errorf("unknown placement rule (%s)", rule)
}

func (e *sectionEntry) EntryType() string {
	return sectionEntryType
}

func (e *sectionEntry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s %s in %s", e.board, e.section.Section, e.section.Load, e.section.Region))
	s.WriteString(fmt.Sprintf(" align %d placed %s", e.section.Align, e.section.VMA))
	if e.section.Size.Set {
		s.WriteString(fmt.Sprintf(" size %s", e.section.Size))
	}
	return s.String()
}

func (e *sectionEntry) Serialise() (database.SerialisedEntry, error) {
	rule, arg, err := serialisePlacement(e.section.VMA)
	if err != nil {
		return nil, err
	}

	return database.SerialisedEntry{
		e.board,
		e.section.Section,
		e.section.Region,
		strconv.FormatUint(e.section.Align, 10),
		strconv.FormatUint(e.section.FixedAlign, 10),
		e.section.Load.String(),
		rule,
		arg,
		serialiseOptional(e.section.LoadAt),
		e.section.LoadRegion,
		serialiseOptional(e.section.Size),
	}, nil
}

func (e *sectionEntry) CleanUp() error {
	return nil
}

func deserialiseSection(fields database.SerialisedEntry) (database.Entry, error) {
	if err := checkFields(sectionEntryType, fields, 11); err != nil {
		return nil, err
	}

	ent := &sectionEntry{board: fields[0]}
	ent.section.Section = fields[1]
	ent.section.Region = fields[2]
	ent.section.LoadRegion = fields[9]

	var err error
	if ent.section.Align, err = strconv.ParseUint(fields[3], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid alignment (%s)", fields[3])
	}
	if ent.section.FixedAlign, err = strconv.ParseUint(fields[4], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid alignment (%s)", fields[4])
	}

	switch fields[5] {
	case layout.NoLoad.String():
		ent.section.Load = layout.NoLoad
	case layout.LoadResident.String():
		ent.section.Load = layout.LoadResident
	default:
		return nil, fmt.Errorf("invalid load kind (%s)", fields[5])
	}

	if ent.section.VMA, err = deserialisePlacement(fields[6], fields[7]); err != nil {
		return nil, err
	}
	if ent.section.LoadAt, err = deserialiseOptional(fields[8]); err != nil {
		return nil, err
	}
	if ent.section.Size, err = deserialiseOptional(fields[10]); err != nil {
		return nil, err
	}

	return ent, nil
}
