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

package modalflag_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/modalflag"
	"github.com/jetsetilly/elflayout/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}
	if md.Mode() != "" {
		t.Errorf("did not expect to see mode as result of Parse()")
	}
	if md.Path() != "" {
		t.Errorf("did not expect to see modes in mode path")
	}
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")

	if *testFlag != false {
		t.Error("expected *testFlag to be false before Parse()")
	}

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}
	if md.Mode() != "" {
		t.Errorf("did not expect to see mode as result of Parse()")
	}
	if md.Path() != "" {
		t.Errorf("did not expect to see modes in mode path")
	}

	if *testFlag != true {
		t.Error("expected *testFlag to be true after Parse()")
	}

	if len(md.RemainingArgs()) != 2 {
		t.Error("expected number of RemainingArgs() to be 2 after Parse()")
	}
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	if !tw.Compare("No help available\n") {
		t.Error("unexpected help message (wanted 'No help available')")
	}
}

func TestHelpFlags(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"

	if !tw.Compare(expectedHelp) {
		t.Error("unexpected help message")
	}
}

func TestHelpModes(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("A", "B", "C")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	expectedHelp := "Usage:\n" +
		"  available sub-modes: A, B, C\n" +
		"    default: A\n"

	if !tw.Compare(expectedHelp) {
		t.Error("unexpected help message")
	}
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("A", "B", "C")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available sub-modes: A, B, C\n" +
		"    default: A\n"

	if !tw.Compare(expectedHelp) {
		t.Error("unexpected help message")
	}
}

type colourMode string

func (c *colourMode) String() string {
	return string(*c)
}

func (c *colourMode) Set(s string) error {
	switch s {
	case "auto", "on", "off":
		*c = colourMode(s)
		return nil
	}
	return fmt.Errorf("unknown colour mode (%s)", s)
}

func TestVar(t *testing.T) {
	c := colourMode("auto")

	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"-colour", "off", "image.elf"})
	md.AddVar(&c, "colour", "colour output")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, colourMode("off"))
	test.ExpectEquality(t, md.GetArg(0), "image.elf")

	md.NewArgs([]string{"-colour", "sometimes"})
	md.AddVar(&c, "colour", "colour output")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"hex", "-o", "out.hex", "image.elf"})
	md.AddSubModes("VERIFY", "BOARDS", "HEX")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "HEX")

	md.NewMode()
	out := md.AddString("o", "", "output file")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *out, "out.hex")
	test.ExpectEquality(t, md.GetArg(0), "image.elf")
	test.ExpectEquality(t, md.Path(), "HEX")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"image.elf"})
	md.AddSubModes("VERIFY", "BOARDS", "HEX")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "VERIFY")
	test.ExpectEquality(t, md.GetArg(0), "image.elf")
}

func TestOneArg(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"hex"})
	md.AddSubModes("VERIFY", "HEX")
	_, _ = md.Parse()

	md.NewMode()
	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	_, err = md.OneArg("ELF file")
	test.ExpectSuccess(t, curated.Is(err, modalflag.ArgumentError))
	test.ExpectEquality(t, err.Error(), "arguments: ELF file required")

	md = modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"a.elf", "b.elf"})
	md.AddSubModes("VERIFY", "HEX")
	_, _ = md.Parse()
	md.NewMode()
	_, _ = md.Parse()
	_, err = md.OneArg("ELF file")
	test.ExpectEquality(t, err.Error(), "arguments: too many")

	md = modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"verify", "a.elf"})
	md.AddSubModes("VERIFY", "HEX")
	_, _ = md.Parse()
	md.NewMode()
	_, _ = md.Parse()
	arg, err := md.OneArg("ELF file")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, arg, "a.elf")
}

func TestNoArgs(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{})
	md.AddSubModes("BOARDS")
	_, _ = md.Parse()
	md.NewMode()
	_, _ = md.Parse()
	test.ExpectSuccess(t, md.NoArgs())

	md = modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"boards", "extra"})
	md.AddSubModes("BOARDS")
	_, _ = md.Parse()
	md.NewMode()
	_, _ = md.Parse()
	test.ExpectSuccess(t, curated.Is(md.NoArgs(), modalflag.ArgumentError))
}
