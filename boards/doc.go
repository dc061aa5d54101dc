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

// Package boards contains the layout profiles for the supported boards.
//
// Three boards are built in: the i.MX RT1010 EVK (imxrt1010evk), the Teensy
// 4.0 and 4.1 (teensy4) and the Cortex-M7 core of the i.MX RT1170 EVK
// (imxrt1170evk-cm7). A built-in profile is found with Lookup() and List()
// returns the identifiers of all the built-in boards.
//
// Other boards are described in a board database. A board database is a file
// managed by the database package, with one entry per board, region, symbol
// and section. LoadDatabase() reads the profiles in a board database and
// ExportDatabase() writes profiles to one. The Catalogue type combines the
// built-in profiles with the profiles from any number of board databases. A
// board in a database replaces a built-in board with the same identifier.
//
// WriteTable() and Describe() present profiles to the user.
package boards
