package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	docerrors "github.com/Aman-CERP/docrank/internal/errors"
)

// DefaultExtensions are the unit file extensions discovered by default.
var DefaultExtensions = []string{".md"}

// Default directories to exclude.
var defaultExcludeDirs = []string{
	"**/.git/**",
	"**/node_modules/**",
}

// DiscoverOptions configures corpus discovery.
type DiscoverOptions struct {
	// Root is the directory to walk.
	Root string

	// Extensions lists unit file extensions, including the dot (empty = .md).
	Extensions []string

	// Exclude lists directory patterns to skip, in addition to the defaults.
	// Supported forms: "**/name/**", "dir/**" and exact relative paths.
	Exclude []string
}

// Discover walks opts.Root and returns the absolute paths of all unit
// files, sorted. Symbolic links are not followed. A missing or non-directory
// root is a fatal input error.
func Discover(ctx context.Context, opts DiscoverOptions) ([]string, error) {
	rootDir := opts.Root
	if rootDir == "" {
		rootDir = "."
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, docerrors.FatalInput(docerrors.ErrCodeCorpusRoot,
			fmt.Sprintf("corpus root not found: %s", absRoot), err).
			WithSuggestion("Pass an existing directory with --root")
	}
	if !info.IsDir() {
		return nil, docerrors.FatalInput(docerrors.ErrCodeCorpusRoot,
			fmt.Sprintf("corpus root is not a directory: %s", absRoot), nil)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // Skip entries we can't access
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil || relPath == "." {
			return nil
		}

		if d.IsDir() {
			if shouldExcludeDir(relPath, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if hasExtension(path, exts) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// shouldExcludeDir checks if a directory should be excluded.
func shouldExcludeDir(relPath string, exclude []string) bool {
	for _, pattern := range defaultExcludeDirs {
		if matchDirPattern(relPath, pattern) {
			return true
		}
	}
	for _, pattern := range exclude {
		if matchDirPattern(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchDirPattern checks if a directory path matches a pattern.
func matchDirPattern(relPath, pattern string) bool {
	pattern = filepath.FromSlash(pattern)
	sep := string(filepath.Separator)

	// **/name/** matches a path segment anywhere
	if strings.HasPrefix(pattern, "**"+sep) {
		name := strings.TrimPrefix(pattern, "**"+sep)
		name = strings.TrimSuffix(name, sep+"**")
		for _, part := range strings.Split(relPath, sep) {
			if part == name {
				return true
			}
		}
		return false
	}

	// dir/** matches the directory itself and anything under it
	prefix := strings.TrimSuffix(pattern, sep+"**")
	return relPath == prefix || strings.HasPrefix(relPath, prefix+sep)
}
