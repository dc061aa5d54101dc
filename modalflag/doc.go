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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At it's simplest it can be used as a replacement for the flag package, with
// some differences. Whereas, with flag.FlagSet you call Parse() with the array
// of strings as the only argument, with modalflag you first NewArgs() with the
// array of arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() function. For example, handling exactly
// one ELF file argument:
//
//	switch len(md.RemainingArgs()) {
//	case 0:
//		return fmt.Errorf("ELF file required")
//	case 1:
//		verify(md.GetArg(0))
//	default:
//		return fmt.Errorf("too many arguments")
//	}
//
// The OneArg() and NoArgs() functions do the same for the common cases.
//
// Adding flags is similar to the flag package:
//
//	board := md.AddString("board", "", "board profile to verify against")
//
// These functions return a pointer to a variable of the specified type. The
// initial value of these variables is the default value. The Parse() function
// will set these values according to what the user has requested.
//
// The most important difference between the standard flag package and the
// modalflag package is the ability of the latter to handle "modes". A mode is
// a special command line argument that puts the program into a different mode
// of operation, with its own flags and arguments. Modes are added with the
// AddSubModes() function. The first sub-mode is the default.
//
//	md.AddSubModes("VERIFY", "BOARDS", "HEX")
//
// All sub-mode comparisons are case insensitive.
//
// Parse() processes the flags in the normal way and then checks to see if the
// first argument after the flags is one of the modes. Mode() returns the
// selected mode and RemainingArgs() returns the arguments after the flags and
// the mode selector:
//
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "BOARDS":
//		md.NewMode()
//		export := md.AddString("export", "", "write profiles to board database")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		...
//	}
//
// Modes can be chained as deeply as required. Path() returns the chain of
// modes encountered so far, separated by a forward slash.
package modalflag
