package lockfile

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Identity uniquely identifies one resolved package within a document:
// the (name, version, source) triple. It is comparable and is used as a
// map and graph-node key throughout the module.
//
// The version is stored as the string the document spelled it with, which
// the formats this package reads always write canonically.
type Identity struct {
	Name    string
	Version string // canonical semver string
	Source  Source // zero when the package has no source
}

// String renders the identity as "name version" with the source locator
// appended in parentheses when present.
func (id Identity) String() string {
	if id.Source.IsZero() {
		return fmt.Sprintf("%s %s", id.Name, id.Version)
	}
	return fmt.Sprintf("%s %s (%s)", id.Name, id.Version, id.Source)
}

// Compare orders identities by name, then version (semantic ordering),
// then source. It returns -1, 0, or +1.
func (id Identity) Compare(other Identity) int {
	if c := strings.Compare(id.Name, other.Name); c != 0 {
		return c
	}
	av, aerr := semver.NewVersion(id.Version)
	bv, berr := semver.NewVersion(other.Version)
	if aerr == nil && berr == nil {
		if c := av.Compare(bv); c != 0 {
			return c
		}
	} else if c := strings.Compare(id.Version, other.Version); c != 0 {
		return c
	}
	return strings.Compare(id.Source.String(), other.Source.String())
}
