package catalog

import (
	"sort"
	"strings"

	"github.com/anchore/npmsweep/internal"
)

// UnknownVersion is the sentinel version held by entries whose source row carried no usable version. Such entries
// match on package presence regardless of the version found.
const UnknownVersion = "unknown"

// Row is a single raw record from the catalog source, before any normalization.
type Row struct {
	Package string
	Version string
}

// Entry is a compromised package and the ordered set of versions known to be compromised.
type Entry struct {
	Name     string
	Versions []string
}

// AnyVersion indicates that every version of the package is considered compromised.
func (e Entry) AnyVersion() bool {
	return len(e.Versions) == 1 && e.Versions[0] == UnknownVersion
}

// Catalog maps compromised package names to their entries. A Catalog is never mutated after New returns, so it
// can be shared freely between goroutines.
type Catalog struct {
	entries map[string]Entry
	names   []string
}

// New normalizes the given rows into a Catalog. Rows with an empty package name are skipped. Rows that name the
// same package are merged: the resulting version set is the union of all rows in first-seen order.
func New(rows ...Row) *Catalog {
	sets := make(map[string]*internal.OrderedSet[string])
	for _, r := range rows {
		name := normalizeName(r.Package)
		if name == "" {
			continue
		}
		set, ok := sets[name]
		if !ok {
			set = internal.NewOrderedSet[string]()
			sets[name] = set
		}
		set.Add(parseVersions(r.Version)...)
	}

	c := &Catalog{
		entries: make(map[string]Entry, len(sets)),
		names:   make([]string, 0, len(sets)),
	}
	for name, set := range sets {
		versions := []string{UnknownVersion}
		if !set.IsEmpty() {
			versions = set.ToSlice()
		}
		c.entries[name] = Entry{Name: name, Versions: versions}
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Get returns the entry for the given package name.
func (c *Catalog) Get(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[name]
	return e, ok
}

// Names returns all package names in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Entries returns all entries ordered by package name.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	entries := make([]Entry, 0, len(c.names))
	for _, name := range c.names {
		e := c.entries[name]
		e.Versions = append([]string(nil), e.Versions...)
		entries = append(entries, e)
	}
	return entries
}

// Len is the number of distinct packages in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

func normalizeName(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(raw), `\`, ""))
}

// parseVersions splits a version specification on any whitespace (spaces and newlines alike), strips equality
// markers ("=1.2.3" and "==1.2.3" both become "1.2.3") and deduplicates while keeping first-seen order.
func parseVersions(raw string) []string {
	set := internal.NewOrderedSet[string]()
	for _, token := range strings.Fields(raw) {
		v := strings.TrimSpace(strings.ReplaceAll(token, "=", ""))
		if v == "" {
			continue
		}
		set.Add(v)
	}
	return set.ToSlice()
}
