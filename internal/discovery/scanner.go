package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
	prefix   string
	suffix   string
}

// NewScanner creates a new Scanner matching files named prefix*suffix and
// pruning the given directory names
func NewScanner(prefix, suffix string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, prefix: prefix, suffix: suffix}
}

// Scan finds all test files in the given root directory, sorted lexicographically
func (s *Scanner) Scan(root string) ([]string, error) {
	var testfiles []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && s.Match(d.Name()) {
			testfiles = append(testfiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(testfiles)
	return testfiles, nil
}

// Match reports whether a file name follows the test file naming convention
func (s *Scanner) Match(name string) bool {
	return strings.HasPrefix(name, s.prefix) && strings.HasSuffix(name, s.suffix)
}
