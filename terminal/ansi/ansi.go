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

// Package ansi builds ANSI control sequences for coloured terminal output.
package ansi

import (
	"strconv"
	"strings"

	"github.com/jetsetilly/elflayout/curated"
)

// UnknownStyle is returned by ColorBuild() for a pen or attribute it does not
// recognise.
const UnknownStyle = "ansi: unknown %s (%s)"

// offsets added to a colour number to select the foreground pen.
const (
	targetPen       = 30
	targetBrightPen = 90
)

var colours = map[string]int{
	"BLACK":   0,
	"RED":     1,
	"GREEN":   2,
	"YELLOW":  3,
	"BLUE":    4,
	"MAGENTA": 5,
	"CYAN":    6,
	"WHITE":   7,
	"NORMAL":  9,
}

// a value of -1 adds nothing to the sequence.
var attributes = map[string]int{
	"BOLD":      1,
	"UNDERLINE": 4,
	"NORMAL":    -1,
}

// Pens maps lower case colour names to the sequence for the bright pen of that
// colour.
var Pens map[string]string

// NormalPen resets the terminal to regular text.
var NormalPen string

// BoldPen is bold text in the normal colour.
var BoldPen string

func init() {
	NormalPen, _ = ColorBuild("", "", false)
	BoldPen, _ = ColorBuild("", "bold", false)

	Pens = make(map[string]string)
	for c := range colours {
		if c == "NORMAL" {
			continue
		}
		Pens[strings.ToLower(c)], _ = ColorBuild(c, "", true)
	}
}

// ColorBuild returns the sequence that selects the named pen and attribute.
// Either can be empty. Names are not case sensitive.
func ColorBuild(pen, attribute string, brightPen bool) (string, error) {
	var params []string

	if pen != "" {
		col, ok := colours[strings.ToUpper(pen)]
		if !ok {
			return "", curated.Errorf(UnknownStyle, "pen", pen)
		}
		if brightPen {
			col += targetBrightPen
		} else {
			col += targetPen
		}
		params = append(params, strconv.Itoa(col))
	}

	if attribute != "" {
		attr, ok := attributes[strings.ToUpper(attribute)]
		if !ok {
			return "", curated.Errorf(UnknownStyle, "attribute", attribute)
		}
		if attr >= 0 {
			params = append(params, strconv.Itoa(attr))
		}
	}

	return "\033[" + strings.Join(params, ";") + "m", nil
}
