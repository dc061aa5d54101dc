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

package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is used when referring to the program in output.
const ApplicationName = "elflayout"

// number is set by the linker for release builds:
//
//	go build -ldflags "-X github.com/jetsetilly/elflayout/version.number=v0.1.0"
var number string

// the values returned by Version(). set once by init()
var version, revision string

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// The version is "unreleased" for a build from a version controlled checkout
// without a release number and "local" when there is no vcs information at
// all, for example with "go run .". A revision with uncommitted changes is
// suffixed with "+dirty".
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns the application name and version. The revision is included
// if this is not a release.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

// fromBuildInfo decides the version and revision strings from the release
// number and the build settings recorded by the go tool.
func fromBuildInfo(release string, info *debug.BuildInfo) (string, string) {
	var vcs, modified bool
	var rev string

	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if rev == "" {
		rev = "no revision information"
	} else if modified {
		rev = fmt.Sprintf("%s+dirty", rev)
	}

	switch {
	case release != "":
		return release, rev
	case vcs:
		return "unreleased", rev
	}
	return "local", rev
}

func init() {
	info, _ := debug.ReadBuildInfo()
	version, revision = fromBuildInfo(number, info)
}
