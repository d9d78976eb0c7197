// Package corpus models a documentation corpus as modules owning ordered
// units (pages).
//
// A module is a directory holding a descriptor file (index.yml by default).
// Units live one directory below it, e.g. <module>/includes/1-intro.md.
// Markdown files whose presumed module directory has no descriptor, such as
// shared snippets, are not part of the corpus.
package corpus

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Aman-CERP/docrank/internal/metadata"
)

// UnknownTitle is the title cached for modules whose descriptor is
// unreadable or declares no title.
const UnknownTitle = "unknown"

// DefaultDescriptor is the module descriptor file name.
const DefaultDescriptor = "index.yml"

// TitleReader returns the title declared by the descriptor at path.
// An empty title with a nil error means the descriptor has no title.
type TitleReader func(descriptorPath string) (string, error)

// Layout describes how modules are recognized and addressed.
type Layout struct {
	// Descriptor is the module descriptor file name (default: index.yml).
	Descriptor string
	// BaseURL prefixes module canonical URLs.
	BaseURL string
	// ReadTitle reads module titles (default: metadata.ReadTitle).
	ReadTitle TitleReader
}

func (l Layout) descriptor() string {
	if l.Descriptor == "" {
		return DefaultDescriptor
	}
	return l.Descriptor
}

// IsModuleRoot reports whether dir contains a module descriptor file.
func (l Layout) IsModuleRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, l.descriptor()))
	return err == nil && info.Mode().IsRegular()
}

// ModuleRootOf returns the presumed module directory of a unit file: the
// parent of the directory containing it. The filesystem is not consulted.
func ModuleRootOf(unitPath string) string {
	return filepath.Dir(filepath.Dir(filepath.Clean(unitPath)))
}

// Unit is one page of a module.
type Unit struct {
	path   string
	parent string
}

// Path returns the unit's file path, which identifies it.
func (u *Unit) Path() string { return u.path }

// Parent returns the identifier (path) of the owning module.
func (u *Unit) Parent() string { return u.parent }

// Stem returns the unit file name without its extension.
func (u *Unit) Stem() string {
	base := filepath.Base(u.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Module is a documentation module and the units it owns.
type Module struct {
	path       string
	descriptor string
	baseURL    string
	units      []*Unit
	readTitle  TitleReader

	titleOnce sync.Once
	title     string
}

// Path returns the module directory, which identifies it.
func (m *Module) Path() string { return m.path }

// Name returns the module directory name.
func (m *Module) Name() string { return filepath.Base(m.path) }

// Units returns the module's units in stored order.
func (m *Module) Units() []*Unit { return m.units }

// DescriptorPath returns the path of the module descriptor file.
func (m *Module) DescriptorPath() string {
	return filepath.Join(m.path, m.descriptor)
}

// Title returns the module title, reading the descriptor on first use.
// The result, including the UnknownTitle fallback, is memoized so the
// descriptor is read at most once.
func (m *Module) Title() string {
	m.titleOnce.Do(func() {
		m.title = UnknownTitle
		if m.readTitle == nil {
			return
		}
		title, err := m.readTitle(m.DescriptorPath())
		if err != nil {
			slog.Debug("module_title_unavailable",
				slog.String("module", m.path),
				slog.String("error", err.Error()))
			return
		}
		if title != "" {
			m.title = title
		}
	})
	return m.title
}

// CanonicalURL returns the module's externally addressable URL.
func (m *Module) CanonicalURL() string {
	base := strings.TrimRight(m.baseURL, "/")
	if base == "" {
		return m.Name()
	}
	return base + "/" + m.Name()
}

// Corpus is the set of confirmed modules built from discovered unit paths.
type Corpus struct {
	modules  []*Module
	byPath   map[string]*Module
	excluded []string
}

// Build groups unit paths by ModuleRootOf, keeps the groups whose root is a
// module root, and returns the resulting corpus. Modules are ordered by
// path, and units within a module by path.
func (l Layout) Build(unitPaths []string) *Corpus {
	groups := make(map[string][]string)
	for _, p := range unitPaths {
		p = filepath.Clean(p)
		root := ModuleRootOf(p)
		groups[root] = append(groups[root], p)
	}

	roots := make([]string, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	readTitle := l.ReadTitle
	if readTitle == nil {
		readTitle = metadata.ReadTitle
	}

	c := &Corpus{byPath: make(map[string]*Module)}
	for _, root := range roots {
		paths := groups[root]
		if !l.IsModuleRoot(root) {
			slog.Debug("paths_excluded_no_descriptor",
				slog.String("dir", root),
				slog.Int("count", len(paths)))
			c.excluded = append(c.excluded, paths...)
			continue
		}

		sort.Strings(paths)
		m := &Module{
			path:       root,
			descriptor: l.descriptor(),
			baseURL:    l.BaseURL,
			readTitle:  readTitle,
			units:      make([]*Unit, 0, len(paths)),
		}
		for i, p := range paths {
			if i > 0 && paths[i-1] == p {
				continue
			}
			m.units = append(m.units, &Unit{path: p, parent: root})
		}
		c.modules = append(c.modules, m)
		c.byPath[root] = m
	}
	sort.Strings(c.excluded)

	return c
}

// Modules returns the modules in stored order.
func (c *Corpus) Modules() []*Module { return c.modules }

// Module returns the module identified by path, or nil.
func (c *Corpus) Module(path string) *Module { return c.byPath[path] }

// ParentOf returns the module owning u, or nil if u is not from this corpus.
func (c *Corpus) ParentOf(u *Unit) *Module { return c.byPath[u.parent] }

// Units returns every unit of every module, in stored order.
func (c *Corpus) Units() []*Unit {
	var units []*Unit
	for _, m := range c.modules {
		units = append(units, m.units...)
	}
	return units
}

// Excluded returns the unit paths dropped because their presumed module
// directory has no descriptor.
func (c *Corpus) Excluded() []string { return c.excluded }

// UnitURL returns the canonical URL of u: its module's URL followed by the
// unit stem. It returns "" if u's parent is not in the corpus.
func (c *Corpus) UnitURL(u *Unit) string {
	m := c.ParentOf(u)
	if m == nil {
		return ""
	}
	return m.CanonicalURL() + "/" + u.Stem()
}
