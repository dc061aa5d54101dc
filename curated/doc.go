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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies a curated error. Packages that want callers
// to recognise an error export the pattern as a string constant:
//
//	const ParseError = "elfimage: %v"
//
//	err := curated.Errorf(ParseError, "not a 32bit image")
//
//	if curated.Is(err, ParseError) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("elflayout: %v", err)
//
//	curated.Has(f, ParseError) // true
//	curated.Is(f, ParseError)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We think of curated errors as 'expected' and of any other
// error as 'unexpected'.
//
// The Error() implementation normalises the error chain. Specifically, the
// chain does not contain duplicate adjacent parts. This means a function does
// not need to worry about whether its caller has already prefixed the message
// with the same context. For example:
//
//	curated.Errorf("boards: %v", curated.Errorf("boards: unknown board (%s)", "foo"))
//
// prints as:
//
//	boards: unknown board (foo)
//
// For the purposes of this package we think of chains as being composed of
// parts separted by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// Curated errors also implement Unwrap() so that the errors package in the
// standard library can see any wrapped error values.
package curated
