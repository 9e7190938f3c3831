package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const dirPerm = 0o755

const (
	// maxNameBytes is the longest leaf name common filesystems accept.
	maxNameBytes = 255
	// suffixReserve leaves room for a __N collision suffix.
	suffixReserve = 16
	// labelBytes is the per-label share of what remains after the date and
	// separators.
	labelBytes = (maxNameBytes - len("2006-01-02") - 2*len("__") - suffixReserve) / 2
)

// RecordDir is a freshly allocated, empty record directory.
type RecordDir struct {
	Path string // absolute or root-relative path of the leaf
	Name string // leaf directory name, including any collision suffix
	Date string // YYYY-MM-DD the record is filed under
}

// DateParts splits t into the year-month, day and full date strings used in
// record paths, in t's own location.
func DateParts(t time.Time) (yearMonth, day, ymd string) {
	return t.Format("2006-01"), t.Format("02"), t.Format("2006-01-02")
}

// BaseName returns the record name for the given labels, before any
// collision suffix. Spaces inside labels become dashes. Labels are cut on a
// rune boundary so the name plus a suffix stays within maxNameBytes.
func BaseName(ymd, companyLabel, roleLabel string) string {
	return ymd + "__" + nameLabel(companyLabel) + "__" + nameLabel(roleLabel)
}

func nameLabel(label string) string {
	label = strings.ReplaceAll(label, " ", "-")
	if len(label) <= labelBytes {
		return label
	}
	cut := 0
	for i, r := range label {
		if i+utf8.RuneLen(r) > labelBytes {
			break
		}
		cut = i + utf8.RuneLen(r)
	}
	return strings.TrimRight(label[:cut], ".-")
}

// Allocator creates uniquely named record directories under
// <root>/<YYYY-MM>/<DD>/.
//
// Check-then-create is not atomic. Two callers racing for the same name get
// one success and one AllocationError from the exclusive mkdir, never a
// shared directory.
type Allocator struct{}

// Allocate creates the date folders as needed and a new leaf directory named
// <YYYY-MM-DD>__<company>__<role>, suffixed __2, __3, ... on collision.
func (a *Allocator) Allocate(rootPath string, now time.Time, companyLabel, roleLabel string) (*RecordDir, error) {
	yearMonth, day, ymd := DateParts(now)

	monthDir, err := ensureDir(rootPath, yearMonth)
	if err != nil {
		return nil, err
	}
	dayDir, err := ensureDir(monthDir, day)
	if err != nil {
		return nil, err
	}

	base := BaseName(ymd, companyLabel, roleLabel)
	if err := checkName(base); err != nil {
		return nil, &AllocationError{Path: dayDir, Message: "invalid record name", Cause: err}
	}

	name := base
	for n := 2; ; n++ {
		taken, err := exists(filepath.Join(dayDir, name))
		if err != nil {
			return nil, &AllocationError{Path: filepath.Join(dayDir, name), Message: "failed to check name", Cause: err}
		}
		if !taken {
			break
		}
		name = fmt.Sprintf("%s__%d", base, n)
	}

	leaf := filepath.Join(dayDir, name)
	if err := os.Mkdir(leaf, dirPerm); err != nil {
		return nil, &AllocationError{Path: leaf, Message: "failed to create record directory", Cause: err}
	}

	return &RecordDir{Path: leaf, Name: name, Date: ymd}, nil
}

// ensureDir creates parent/name unless a directory by that name already exists.
func ensureDir(parent, name string) (string, error) {
	path := filepath.Join(parent, name)
	err := os.Mkdir(path, dirPerm)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return "", &AllocationError{Path: path, Message: "failed to create directory", Cause: err}
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return "", &AllocationError{Path: path, Message: "failed to stat directory", Cause: statErr}
	}
	if !info.IsDir() {
		return "", &AllocationError{Path: path, Message: "exists and is not a directory"}
	}
	return path, nil
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q is not a usable directory name", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator):
		return fmt.Errorf("%q contains a path separator", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%q contains a NUL byte", name)
	}
	return nil
}
