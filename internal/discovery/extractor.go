package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"pta/internal/classify"
	"pta/internal/domain"
)

// ErrInvalidEncoding is returned for files that are not valid UTF-8
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

var (
	// Matches:
	// - def test_open_trade(
	// -     def test_method(self):
	// - async def test_ws_stream(
	testFuncPattern = regexp.MustCompile(`^\s*(?:async\s+)?def\s+(test_\w+)\s*\(`)

	// Top-level test classes only: "class TestFoo(Base):" or "class TestFoo:"
	testClassPattern = regexp.MustCompile(`^class\s+(Test\w+)\s*[(:]`)

	markPattern = regexp.MustCompile(`@pytest\.mark\.(\w+)`)

	// Any function or class statement, test or not
	defPattern = regexp.MustCompile(`^\s*(?:async\s+)?(?:def|class)\s`)
)

// Extractor extracts test metadata from test source files
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new Extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractOptions controls a multi-file extraction run
type ExtractOptions struct {
	// KeepGoing skips unreadable files instead of aborting the run
	KeepGoing bool
	// OnFile is called after each file with the number of files processed so far
	OnFile func(done int)
}

// ExtractAll extracts every file in order. Paths are reported relative to root.
func (e *Extractor) ExtractAll(root string, paths []string, opts ExtractOptions) ([]domain.FileReport, error) {
	reports := make([]domain.FileReport, 0, len(paths))
	for i, path := range paths {
		report, err := e.Extract(root, path)
		if err != nil {
			if !opts.KeepGoing {
				return nil, err
			}
			e.logger.Warn("Skipping test file", zap.String("path", path), zap.Error(err))
		} else {
			reports = append(reports, report)
		}
		if opts.OnFile != nil {
			opts.OnFile(i + 1)
		}
	}
	return reports, nil
}

// Extract reads one test file and extracts its tests and classes
func (e *Extractor) Extract(root, path string) (domain.FileReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.FileReport{}, fmt.Errorf("error reading file %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return domain.FileReport{}, fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
	}

	report := ParseSource(RelativePath(root, path), string(content))
	e.logger.Debug("Extracted test file",
		zap.String("file", report.File),
		zap.Int("tests", report.TestCount),
		zap.Int("classes", len(report.Classes)))
	return report, nil
}

// RelativePath returns path relative to root using forward slashes.
// Paths outside root are returned unchanged.
func RelativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// ParseSource extracts tests and classes from file content.
// file is the relative path used for classification and reporting.
func ParseSource(file, content string) domain.FileReport {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	report := domain.FileReport{
		File:       file,
		TotalLines: len(lines),
		Tests:      []domain.TestRecord{},
		Classes:    []domain.ClassInfo{},
	}

	for i, line := range lines {
		if match := testClassPattern.FindStringSubmatch(line); match != nil {
			report.Classes = append(report.Classes, domain.ClassInfo{Name: match[1], Line: i + 1})
			continue
		}

		match := testFuncPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		name := match[1]
		marks := markNames(decoratorBlock(lines, i))
		record := domain.TestRecord{
			Name:         name,
			Line:         i + 1,
			File:         file,
			Skipped:      hasMark(marks, "skip", "skipif"),
			Parametrized: hasMark(marks, "parametrize"),
			Priority:     classify.Priority(file, name),
			Module:       classify.Module(file),
			Marks:        marks,
		}
		report.Tests = append(report.Tests, record)

		if record.Skipped {
			report.SkippedCount++
		}
		if record.Parametrized {
			report.ParametrizedCount++
		}
	}
	report.TestCount = len(report.Tests)

	return report
}

// decoratorBlock returns the decorator lines directly above lines[defIdx]
// in source order. Comment lines are skipped and multi-line decorator
// arguments are followed by bracket balance; a blank line, a def or class
// statement, or any other statement ends the block.
func decoratorBlock(lines []string, defIdx int) []string {
	var block, pending []string
	depth := 0

	for i := defIdx - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if depth == 0 && strings.HasPrefix(trimmed, "#") {
			continue
		}
		if defPattern.MatchString(trimmed) {
			break
		}

		depth += bracketBalance(trimmed)
		switch {
		case depth > 0:
			// Inside the arguments of a decorator that starts further up
			pending = append(pending, trimmed)
		case strings.HasPrefix(trimmed, "@"):
			block = append(block, pending...)
			block = append(block, trimmed)
			pending = nil
			depth = 0
		default:
			return reversed(block)
		}
	}

	return reversed(block)
}

// bracketBalance returns closing minus opening brackets in s, ignoring
// brackets inside string literals and after a # comment
func bracketBalance(s string) int {
	balance := 0
	var quote rune
	escaped := false

	for _, r := range s {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}

		switch r {
		case '"', '\'':
			quote = r
		case '#':
			return balance
		case ')', ']', '}':
			balance++
		case '(', '[', '{':
			balance--
		}
	}
	return balance
}

func reversed(lines []string) []string {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}

// markNames returns the distinct pytest.mark names used in block, in order
func markNames(block []string) []string {
	var marks []string
	seen := make(map[string]bool)
	for _, line := range block {
		for _, match := range markPattern.FindAllStringSubmatch(line, -1) {
			if !seen[match[1]] {
				seen[match[1]] = true
				marks = append(marks, match[1])
			}
		}
	}
	return marks
}

func hasMark(marks []string, names ...string) bool {
	for _, mark := range marks {
		for _, name := range names {
			if mark == name {
				return true
			}
		}
	}
	return false
}
