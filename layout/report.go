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

package layout

import (
	"fmt"
	"io"

	"github.com/jetsetilly/elflayout/terminal/ansi"
)

// Report is the result of Verify(). Diagnostics are in the order the checks
// were run.
type Report struct {
	Board       string
	Diagnostics []Diagnostic
}

// Passed returns true if the report contains no errors. Warnings do not cause
// a report to fail.
func (r Report) Passed() bool {
	return r.Errors() == 0
}

// Errors returns the number of diagnostics with Error severity.
func (r Report) Errors() int {
	return r.count(Error)
}

// Warnings returns the number of diagnostics with Warning severity.
func (r Report) Warnings() int {
	return r.count(Warning)
}

func (r Report) count(sev Severity) int {
	var n int
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Subject returns all diagnostics for the named symbol or section.
func (r Report) Subject(name string) []Diagnostic {
	var s []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Subject == name {
			s = append(s, d)
		}
	}
	return s
}

// Rule returns all diagnostics produced by the rule.
func (r Report) Rule(rule Rule) []Diagnostic {
	var s []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Rule == rule {
			s = append(s, d)
		}
	}
	return s
}

func plural(n int, s string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, s)
	}
	return fmt.Sprintf("%d %ss", n, s)
}

func (r Report) summary() string {
	if r.Passed() {
		if r.Warnings() > 0 {
			return fmt.Sprintf("%s: passed with %s", r.Board, plural(r.Warnings(), "warning"))
		}
		return fmt.Sprintf("%s: passed", r.Board)
	}
	return fmt.Sprintf("%s: failed with %s and %s", r.Board, plural(r.Errors(), "error"), plural(r.Warnings(), "warning"))
}

func (r Report) String() string {
	s := r.summary()
	for _, d := range r.Diagnostics {
		s = fmt.Sprintf("%s\n%s", s, d)
	}
	return s
}

// Write the report to the io.Writer, one diagnostic per line after a summary
// line. Errors, warnings and the summary are coloured if colour is true.
func (r Report) Write(w io.Writer, colour bool) error {
	pen := func(col string) string {
		if !colour {
			return ""
		}
		s, err := ansi.ColorBuild(col, "bold", false)
		if err != nil {
			return ""
		}
		return s
	}

	normal := ""
	if colour {
		normal = ansi.NormalPen
	}

	summaryPen := pen("green")
	if !r.Passed() {
		summaryPen = pen("red")
	}

	if _, err := fmt.Fprintf(w, "%s%s%s\n", summaryPen, r.summary(), normal); err != nil {
		return err
	}

	for _, d := range r.Diagnostics {
		p := pen("red")
		if d.Severity == Warning {
			p = pen("yellow")
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", p, d, normal); err != nil {
			return err
		}
	}

	return nil
}
