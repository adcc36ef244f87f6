package lockfile

import (
	"os"

	"github.com/matzehuels/locktower/pkg/errors"
)

// Lockfile is the normalized in-memory form of a dependency snapshot,
// independent of the format revision that produced it. It is constructed
// once by Parse or Load and is read-only afterwards; derived structures
// such as the dependency graph are built on demand from it.
type Lockfile struct {
	// Version is the detected (or explicitly overridden) resolve version.
	// Encoding honors it, so a document keeps its shape unless a
	// translation is requested.
	Version ResolveVersion

	// Root is the legacy [root] reference, present only in V1 documents.
	Root *Dependency

	// Packages is the resolved package list in document order.
	Packages []Package

	// Metadata holds [metadata] pass-through entries. V1 checksum entries
	// are moved inline onto their packages during parsing and do not
	// appear here.
	Metadata Metadata

	// Patch holds [patch] section packages not selected by resolution.
	Patch Patch
}

// Parse decodes a lockfile document from raw TOML.
func Parse(data []byte) (*Lockfile, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.decode()
}

// Load reads and parses the lockfile at path.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOFailure, err, "failed to read %s", path)
	}
	return Parse(data)
}

// PackagesNamed returns all packages with the given name, in list order.
func (lf *Lockfile) PackagesNamed(name string) []*Package {
	var out []*Package
	for i := range lf.Packages {
		if lf.Packages[i].Name == name {
			out = append(out, &lf.Packages[i])
		}
	}
	return out
}
