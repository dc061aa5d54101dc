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

package elfimage

import "fmt"

// Symbol is an entry in the symbol table.
type Symbol struct {
	Name    string
	Address uint64
	Size    uint64
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s: %08x (%d)", s.Name, s.Address, s.Size)
}

// FindSymbol returns the first symbol in the symbol table with the name.
func (img *Image) FindSymbol(name string) (Symbol, bool) {
	if i, ok := img.symbolIdx[name]; ok {
		return img.symbols[i], true
	}
	return Symbol{}, false
}

// Symbols returns a copy of the symbol table in table order.
func (img *Image) Symbols() []Symbol {
	return append([]Symbol{}, img.symbols...)
}
