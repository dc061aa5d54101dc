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

	"gopkg.in/yaml.v3"
)

type yamlDiagnostic struct {
	Severity string `yaml:"severity"`
	Subject  string `yaml:"subject"`
	Rule     Rule   `yaml:"rule"`
	Expected string `yaml:"expected,omitempty"`
	Actual   string `yaml:"actual,omitempty"`
	Detail   string `yaml:"detail,omitempty"`
}

type yamlReport struct {
	Board       string           `yaml:"board"`
	Passed      bool             `yaml:"passed"`
	Errors      int              `yaml:"errors"`
	Warnings    int              `yaml:"warnings"`
	Diagnostics []yamlDiagnostic `yaml:"diagnostics"`
}

// WriteYAML writes the report as a YAML document. Addresses are written as
// hex strings.
func (r Report) WriteYAML(w io.Writer) error {
	y := yamlReport{
		Board:       r.Board,
		Passed:      r.Passed(),
		Errors:      r.Errors(),
		Warnings:    r.Warnings(),
		Diagnostics: make([]yamlDiagnostic, 0, len(r.Diagnostics)),
	}

	for _, d := range r.Diagnostics {
		yd := yamlDiagnostic{
			Severity: d.Severity.String(),
			Subject:  d.Subject,
			Rule:     d.Rule,
			Detail:   d.Detail,
		}
		if d.Rule.hasValues() {
			yd.Expected = fmt.Sprintf("%#x", d.Expected)
			yd.Actual = fmt.Sprintf("%#x", d.Actual)
		}
		y.Diagnostics = append(y.Diagnostics, yd)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return err
	}
	return enc.Close()
}
