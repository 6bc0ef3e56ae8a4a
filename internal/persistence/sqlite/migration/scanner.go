package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
)

var fileNamePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

// Scanner discovers migration files on a filesystem.
type Scanner struct {
	fsys fs.FS
	dir  string
}

// NewScanner creates a scanner over the given filesystem directory.
func NewScanner(fsys fs.FS, dir string) *Scanner {
	return &Scanner{fsys: fsys, dir: dir}
}

// Scan returns all migrations sorted by ascending version. Files that do
// not match the NNN_name.sql convention and duplicate version numbers are
// rejected.
func (s *Scanner) Scan() ([]Migration, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, &Error{Operation: "scan", Err: err}
	}

	seen := make(map[int]string)
	var migrations []Migration

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := fileNamePattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			return nil, &Error{
				Operation: "scan",
				Err:       fmt.Errorf("%w: %s", ErrInvalidMigrationFile, entry.Name()),
			}
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil || version <= 0 {
			return nil, &Error{
				Operation: "scan",
				Err:       fmt.Errorf("%w: %s", ErrInvalidMigrationFile, entry.Name()),
			}
		}

		if prev, ok := seen[version]; ok {
			return nil, &Error{
				Version:   version,
				Operation: "scan",
				Err:       fmt.Errorf("%w: %s and %s", ErrDuplicateVersion, prev, entry.Name()),
			}
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(s.fsys, s.dir+"/"+entry.Name())
		if err != nil {
			return nil, &Error{Version: version, Operation: "read", Err: err}
		}

		sum := sha256.Sum256(content)
		migrations = append(migrations, Migration{
			Version:  version,
			Name:     matches[2],
			SQL:      string(content),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}
