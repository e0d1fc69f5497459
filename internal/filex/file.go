// Package filex has the file helpers used for résumé handling: directory
// setup for locally stored uploads and validation of résumé documents.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/hireboard/internal/common"
)

// MaxResumeSize caps the size of a résumé read from disk.
const MaxResumeSize = 10 << 20

// EnsureSubdDir creates dirName (relative to the working directory unless it
// is absolute) and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ResumeExt returns the lower-cased extension of name when it is an accepted
// résumé type.
func ResumeExt(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(common.AllowedResumeExtensions, ext) {
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFile, filepath.Base(name))
	}
	return ext, nil
}

// CheckResume validates a résumé payload before it is uploaded.
func CheckResume(name string, data []byte) error {
	if _, err := ResumeExt(name); err != nil {
		return err
	}
	if len(data) == 0 {
		return common.ErrEmptyFile
	}
	if len(data) > MaxResumeSize {
		return fmt.Errorf("%w: %d bytes exceeds limit", common.ErrorValidation, len(data))
	}
	return nil
}

// ReadResume loads a résumé from disk and returns its base name and content.
func ReadResume(path string) (string, []byte, error) {
	name := filepath.Base(path)
	if _, err := ResumeExt(name); err != nil {
		return "", nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() > MaxResumeSize {
		return "", nil, fmt.Errorf("%w: %s is larger than %d bytes", common.ErrorValidation, name, MaxResumeSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := CheckResume(name, data); err != nil {
		return "", nil, err
	}

	return name, data, nil
}
