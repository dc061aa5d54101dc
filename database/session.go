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

package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/elflayout/curated"
	"github.com/jetsetilly/elflayout/logger"
)

// NotAvailable is returned by StartSession() when the database file does not
// exist and the activity does not allow it to be created.
const NotAvailable = "database: not available (%v)"

// Activity is used to specify the type of activity that will be performed
// during the database session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

func (a Activity) String() string {
	switch a {
	case ActivityReading:
		return "reading"
	case ActivityModifying:
		return "modifying"
	case ActivityCreating:
		return "creating"
	}
	return "unknown"
}

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new database session. The init function
// is called once the database has been opened but before the database is
// read. The function should register the entry types that might be found in
// the database.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	var err error

	db := &Session{
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	var flags int
	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	default:
		return nil, curated.Errorf("database: unknown activity (%d)", activity)
	}

	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf("database: %v", err)
	}

	// closing of db.dbfile requires a call to EndSession()

	err = init(db)
	if err != nil {
		db.dbfile.Close()
		return nil, curated.Errorf("database: %v", err)
	}

	err = db.readDBFile()
	if err != nil {
		db.dbfile.Close()
		return nil, curated.Errorf("database: %v", err)
	}

	logger.Logf(logger.Allow, "database", "%s %s (%d entries)", activity, path, len(db.entries))

	return db, nil
}

// EndSession closes the database. Changes are written to the file if
// commitChanges is true and the session is not ActivityReading.
func (db *Session) EndSession(commitChanges bool) (rerr error) {
	if db.dbfile == nil {
		return nil
	}

	// the file is closed however the session ends
	defer func() {
		err := db.dbfile.Close()
		db.dbfile = nil
		if err != nil && rerr == nil {
			rerr = curated.Errorf("database: %v", err)
		}
	}()

	if !commitChanges || db.activity == ActivityReading {
		return nil
	}

	s := strings.Builder{}
	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]
		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		s.WriteString(recordHeader(key, ent.EntryType()))
		for _, f := range ser {
			if strings.ContainsAny(f, fieldSep+entrySep) {
				return curated.Errorf("database: field cannot contain separator (%q)", f)
			}
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)
	}

	if err := db.dbfile.Truncate(0); err != nil {
		return curated.Errorf("database: %v", err)
	}

	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf("database: %v", err)
	}

	if _, err := db.dbfile.WriteString(s.String()); err != nil {
		return curated.Errorf("database: %v", err)
	}

	logger.Logf(logger.Allow, "database", "committed %d entries to %s", len(db.entries), db.dbfile.Name())

	return nil
}

// RegisterEntryType tells the database what entries it may expect in the
// database and what to do when it encounters one.
func (db *Session) RegisterEntryType(entryType string, des Deserialiser) error {
	if _, ok := db.entryTypes[entryType]; ok {
		return curated.Errorf("database: trying to register a duplicate entry type (%s)", entryType)
	}
	db.entryTypes[entryType] = des
	return nil
}

func (db *Session) readDBFile() error {
	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return err
	}

	lines := strings.Split(string(buffer), entrySep)

	for i := range lines {
		line := strings.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return fmt.Errorf("missing fields at line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return fmt.Errorf("invalid key (%s) at line %d", fields[leaderFieldKey], i+1)
		}

		if _, ok := db.entries[key]; ok {
			return fmt.Errorf("duplicate key (%d) at line %d", key, i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldType]]
		if !ok {
			return fmt.Errorf("unrecognised entry type (%s) at line %d", fields[leaderFieldType], i+1)
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}

		db.entries[key] = ent
	}

	return nil
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}
