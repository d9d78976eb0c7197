// Package metadata reads module descriptor files.
//
// Descriptors are treated as line-oriented text rather than parsed YAML:
// only the first top-level "title:" line is of interest, and descriptors in
// real corpora are frequently not valid YAML.
package metadata

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	docerrors "github.com/Aman-CERP/docrank/internal/errors"
)

// titlePattern matches a title line. Case-sensitive, anchored at line start.
var titlePattern = regexp.MustCompile(`^title:\s+(.+)`)

// trimSet is stripped repeatedly from both ends of a captured title.
const trimSet = " \t\r\n'\""

// ReadTitle returns the title declared in the descriptor at path.
// It returns an empty string and a nil error when the descriptor has no
// title line. An unreadable descriptor yields ERR_203_MODULE_METADATA.
func ReadTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", docerrors.New(docerrors.ErrCodeModuleMetadata,
			fmt.Sprintf("cannot read module descriptor %s", path), err).
			WithDetail("descriptor", path)
	}
	defer func() { _ = f.Close() }()

	title, err := parseTitle(bufio.NewScanner(f))
	if err != nil {
		return "", docerrors.New(docerrors.ErrCodeModuleMetadata,
			fmt.Sprintf("cannot read module descriptor %s", path), err).
			WithDetail("descriptor", path)
	}
	return title, nil
}

func parseTitle(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		m := titlePattern.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		return CleanTitle(m[1]), nil
	}
	return "", sc.Err()
}

// CleanTitle strips whitespace and quote characters from both ends of s
// until none remain, so `"'Intro'"` becomes `Intro`.
func CleanTitle(s string) string {
	for {
		t := strings.Trim(s, trimSet)
		if t == s {
			return t
		}
		s = t
	}
}
