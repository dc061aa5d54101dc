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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/elflayout/boards"
	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/database"
	"github.com/jetsetilly/elflayout/elfimage"
	"github.com/jetsetilly/elflayout/flashimage"
	"github.com/jetsetilly/elflayout/layout"
	"github.com/jetsetilly/elflayout/logger"
	"github.com/jetsetilly/elflayout/modalflag"
	"github.com/jetsetilly/elflayout/paths"
	"github.com/jetsetilly/elflayout/statsview"
	"github.com/jetsetilly/elflayout/terminal"
	"github.com/jetsetilly/elflayout/version"
)

// the name of the board database in the resource directory.
const defaultBoardsDB = "boards.db"

// exit codes.
const (
	exitPass  = 0
	exitFail  = 1
	exitError = 2
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch is the body of main(). returns the exit code.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("VERIFY", "BOARDS", "HEX", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitPass

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitError
	}

	exit := exitPass

	switch md.Mode() {
	case "VERIFY":
		exit, err = verify(md, output)

	case "BOARDS":
		err = listBoards(md, output)

	case "HEX":
		err = hex(md, output)

	case "VERSION":
		err = showVersion(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %v\n", md, err)
		return exitError
	}

	return exit
}

// set debugging log echo.
func echoLog(log bool, output io.Writer) {
	if log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}
}

// catalogue of the built-in boards and the boards in the board database. if
// no database is specified then the default database is used if it exists.
func catalogue(boardsDB string) (*boards.Catalogue, error) {
	cat := boards.NewCatalogue()

	if boardsDB != "" {
		return cat, cat.AddDatabase(boardsDB)
	}

	err := cat.AddDatabase(paths.ResourcePath(defaultBoardsDB))
	if err != nil {
		if !curated.Has(err, database.NotAvailable) {
			return nil, err
		}
		logger.Log(logger.Allow, "boards", err)
	}

	return cat, nil
}

func verify(md *modalflag.Modes, output io.Writer) (int, error) {
	md.NewMode()

	board := md.AddString("board", "", "board identifier (see BOARDS mode)")
	boardsDB := md.AddString("boards", "", fmt.Sprintf("board database (default %s)", paths.ResourcePath(defaultBoardsDB)))
	log := md.AddBool("log", false, "echo debugging log to stdout")
	werror := md.AddBool("werror", false, "treat warnings as errors")
	memvizFile := md.AddString("memviz", "", "write graphviz description of the report to file")
	format := md.AddString("format", "text", "report format: text, yaml")

	colour := terminal.ColourAuto
	md.AddVar(&colour, "colour", "colour output: auto, on, off")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp(
		`Checks the placement of the sections and symbols in an ELF file against the
layout required by the board. Every check is run and all problems are reported.

The exit code is 0 if there are no errors, 1 if there are errors and 2 if the
ELF file can not be read or if the board is not known. Warnings do not cause a
non-zero exit code unless -werror is specified.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return exitPass, err
	}

	echoLog(*log, output)

	elfFile, err := md.OneArg("ELF file")
	if err != nil {
		return exitError, err
	}

	if *board == "" {
		return exitError, fmt.Errorf("board must be specified with the -board flag")
	}

	switch *format {
	case "text", "yaml":
	default:
		return exitError, fmt.Errorf("unknown report format (%s)", *format)
	}

	cat, err := catalogue(*boardsDB)
	if err != nil {
		return exitError, err
	}

	profile, err := cat.Lookup(*board)
	if err != nil {
		return exitError, err
	}

	img, err := elfimage.LoadFile(elfFile)
	if err != nil {
		return exitError, err
	}

	report := layout.Verify(img, profile)

	f, _ := output.(*os.File)
	switch *format {
	case "yaml":
		err = report.WriteYAML(output)
	default:
		err = report.Write(output, colour.Enabled(f))
	}
	if err != nil {
		return exitError, err
	}

	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, &report); err != nil {
			return exitError, err
		}
	}

	if stats != nil && *stats {
		statsview.Launch(output)
		waitForInterrupt(output)
	}

	if !report.Passed() {
		return exitFail, nil
	}
	if *werror && report.Warnings() > 0 {
		return exitFail, nil
	}

	return exitPass, nil
}

func writeMemviz(filename string, report *layout.Report) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, report)

	return nil
}

// #ctrlc
func waitForInterrupt(output io.Writer) {
	fmt.Fprintln(output, "press ctrl-c to end")
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	<-intChan
	signal.Stop(intChan)
}

func listBoards(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	boardsDB := md.AddString("boards", "", fmt.Sprintf("board database (default %s)", paths.ResourcePath(defaultBoardsDB)))
	export := md.AddString("export", "", "write all boards to a new board database")
	show := md.AddString("show", "", "describe the layout required by one board")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	echoLog(*log, output)

	if err := md.NoArgs(); err != nil {
		return err
	}

	cat, err := catalogue(*boardsDB)
	if err != nil {
		return err
	}

	if *export != "" {
		if err := boards.ExportDatabase(*export, cat.Profiles()); err != nil {
			return err
		}
		fmt.Fprintf(output, "%d boards written to %s\n", len(cat.List()), *export)
		return nil
	}

	if *show != "" {
		profile, err := cat.Lookup(*show)
		if err != nil {
			return err
		}
		fmt.Fprint(output, boards.Describe(profile))
		return nil
	}

	boards.WriteTable(output, cat.Profiles())

	return nil
}

func hex(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	out := md.AddString("o", "", "output file (default is a unique filename in the current directory)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp(
		`Writes the content of the loadable segments of the ELF file, at their load
addresses, as an Intel HEX file. The ELF file is not changed.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	echoLog(*log, output)

	elfFile, err := md.OneArg("ELF file")
	if err != nil {
		return err
	}

	img, err := elfimage.LoadFile(elfFile)
	if err != nil {
		return err
	}

	filename := *out
	if filename == "" {
		base := filepath.Base(elfFile)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		filename = fmt.Sprintf("%s.hex", paths.UniqueFilename("load", base))
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = flashimage.Write(f, img)
	if err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(output, "load image written to %s\n", filename)

	return nil
}

func showVersion(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Fprintf(output, "%s %s (%s)\n", version.ApplicationName, v, r)
	} else {
		fmt.Fprintln(output, version.String())
	}

	return nil
}
