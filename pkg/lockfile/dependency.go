package lockfile

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/locktower/pkg/errors"
)

// Dependency is a possibly partial reference to another package in the
// same document. Older format revisions always record the full
// (name, version, source) triple; newer ones record only the name unless
// more is needed to stay unambiguous. Partial references are resolved
// against the full package list at graph-build time.
type Dependency struct {
	Name    string
	Version *semver.Version // nil when the reference omits it
	Source  *Source         // nil when the reference omits it
}

// ParseDependency parses a compact dependency string.
//
// The accepted forms are:
//
//	"name"
//	"name version"
//	"name version (source)"
func ParseDependency(s string) (Dependency, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 3 {
		return Dependency{}, errors.New(errors.ErrCodeInvalidDependency,
			"malformed dependency string: %q", s)
	}

	dep := Dependency{Name: fields[0]}
	if len(fields) >= 2 {
		v, err := semver.NewVersion(fields[1])
		if err != nil {
			return Dependency{}, errors.Wrap(errors.ErrCodeInvalidDependency, err,
				"malformed dependency version in %q", s)
		}
		dep.Version = v
	}
	if len(fields) == 3 {
		raw := fields[2]
		if !strings.HasPrefix(raw, "(") || !strings.HasSuffix(raw, ")") {
			return Dependency{}, errors.New(errors.ErrCodeInvalidDependency,
				"dependency source must be parenthesized in %q", s)
		}
		src, err := ParseSource(raw[1 : len(raw)-1])
		if err != nil {
			return Dependency{}, errors.Wrap(errors.ErrCodeInvalidDependency, err,
				"malformed dependency source in %q", s)
		}
		dep.Source = &src
	}
	return dep, nil
}

// String renders the reference in its compact on-disk form, including only
// the fields the reference carries.
func (d Dependency) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if d.Version != nil {
		b.WriteByte(' ')
		b.WriteString(d.Version.String())
	}
	if d.Source != nil {
		b.WriteString(" (")
		b.WriteString(d.Source.String())
		b.WriteByte(')')
	}
	return b.String()
}

// Matches reports whether pkg satisfies this reference: the names must be
// equal, and version and source must also match when the reference carries
// them.
func (d Dependency) Matches(pkg *Package) bool {
	if d.Name != pkg.Name {
		return false
	}
	if d.Version != nil && !d.Version.Equal(pkg.Version) {
		return false
	}
	if d.Source != nil && *d.Source != pkg.Source {
		return false
	}
	return true
}
