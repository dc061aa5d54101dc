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
	"strings"
)

// Severity of a Diagnostic.
type Severity int

// List of valid Severity values.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return "unknown"
}

// Rule identifies the check that produced a Diagnostic.
type Rule string

// List of valid Rule values.
const (
	RuleSymbolNotFound     Rule = "SymbolNotFound"
	RuleSymbolAddress      Rule = "SymbolAddress"
	RuleSymbolSize         Rule = "SymbolSize"
	RuleSymbolRegion       Rule = "SymbolRegion"
	RuleSymbolNotLoaded    Rule = "SymbolNotLoaded"
	RuleSectionNotFound    Rule = "SectionNotFound"
	RuleRegion             Rule = "Region"
	RuleAlignment          Rule = "Alignment"
	RuleAdjacency          Rule = "Adjacency"
	RuleLoadAdjacency      Rule = "LoadAdjacency"
	RuleLoadEqualsRun      Rule = "LoadEqualsRun"
	RuleFixedAlignment     Rule = "FixedAlignment"
	RuleSize               Rule = "Size"
	RuleLoadRegion         Rule = "LoadRegion"
	RuleLoadClassification Rule = "LoadClassification"
)

// the rules that have no meaningful expected and actual values.
func (r Rule) hasValues() bool {
	switch r {
	case RuleSymbolNotFound, RuleSectionNotFound, RuleLoadClassification, RuleSymbolNotLoaded:
		return false
	}
	return true
}

// Diagnostic is the result of a single failed check.
type Diagnostic struct {
	Severity Severity

	// the name of the symbol or section that failed the check
	Subject string

	Rule     Rule
	Expected uint64
	Actual   uint64
	Detail   string
}

func (d Diagnostic) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s: %s", d.Severity, d.Subject, d.Rule))
	if d.Rule.hasValues() {
		s.WriteString(fmt.Sprintf(": expected %#x, actual %#x", d.Expected, d.Actual))
	}
	if d.Detail != "" {
		s.WriteString(fmt.Sprintf(" (%s)", d.Detail))
	}
	return s.String()
}
