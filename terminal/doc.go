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

// Package terminal decides whether output should be decorated with ANSI
// colour codes. The Colour type implements flag.Value so it can be used
// directly as a command line flag, taking one of the values "auto", "on" or
// "off". In the auto mode colour is used only when the output file is a
// terminal.
//
// Terminal detection is done with a termios request through
// "golang.org/x/sys/unix" on systems that support it. On other systems output
// is never considered to be a terminal.
package terminal
