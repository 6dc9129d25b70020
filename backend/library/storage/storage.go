// Package storage keeps every user's files under their own directory so that
// identical filenames from different users never collide.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNameTooLong = errors.New("file name too long")
)

// MaxNameLen is the longest accepted name in bytes, the common NAME_MAX.
const MaxNameLen = 255

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// UserDir is base/<userID>.
func UserDir(base string, userID int64) string {
	return filepath.Join(base, strconv.FormatInt(userID, 10))
}

// EnsureDir creates base/<userID> if needed and returns it. MkdirAll treats an
// existing directory as success, so concurrent first requests for the same
// user both succeed.
func EnsureDir(base string, userID int64) (string, error) {
	dir := UserDir(base, userID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// CleanName reduces an uploaded filename to its base name and rejects names
// that would escape the user directory or exceed MaxNameLen.
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "" || name == "." || name == "/" || name == ".." || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	if len(name) > MaxNameLen {
		return "", ErrNameTooLong
	}
	return name, nil
}

// UserFile joins name under base/<userID> after cleaning it.
func UserFile(base string, userID int64, name string) (string, error) {
	clean, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(UserDir(base, userID), clean), nil
}

// Exists reports whether path is an existing regular file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteAtomic streams write into a hidden temp file in dir and renames it to
// dir/name only when write and close succeed. Readers never observe a
// partially written file at the final path; on failure the temp file is
// removed.
func WriteAtomic(dir string, name string, write func(w io.Writer) error) (string, error) {
	final := filepath.Join(dir, name)
	tmp := filepath.Join(dir, ".tmp-"+uuid.NewString()+".part")

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename into %s: %w", final, err)
	}
	return final, nil
}

// Remove deletes path; a file that is already gone is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
