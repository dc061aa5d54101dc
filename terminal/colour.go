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

package terminal

import (
	"fmt"
	"os"
	"strings"
)

// Colour is the user's choice of whether output should be colourised.
type Colour string

// List of valid Colour values.
const (
	ColourAuto Colour = "auto"
	ColourOn   Colour = "on"
	ColourOff  Colour = "off"
)

// String implements the flag.Value interface.
func (c *Colour) String() string {
	if c == nil || *c == "" {
		return string(ColourAuto)
	}
	return string(*c)
}

// Set implements the flag.Value interface.
func (c *Colour) Set(s string) error {
	switch v := Colour(strings.ToLower(s)); v {
	case ColourAuto, ColourOn, ColourOff:
		*c = v
		return nil
	}
	return fmt.Errorf("unrecognised colour option (%s)", s)
}

// Enabled returns true if output to the file should use colour.
func (c Colour) Enabled(f *os.File) bool {
	switch c {
	case ColourOn:
		return true
	case ColourOff:
		return false
	}
	if f == nil {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f.Fd())
}
