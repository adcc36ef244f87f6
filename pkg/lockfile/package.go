package lockfile

import (
	"github.com/Masterminds/semver/v3"
)

// Package is one resolved package entry in the lockfile. It is built once
// during parsing and treated as read-only afterwards.
type Package struct {
	Name     string
	Version  *semver.Version
	Source   Source   // zero for packages without a source (workspace members)
	Checksum Checksum // zero when the document recorded no checksum

	// Dependencies holds the package's references in the order they
	// appeared in the source document. References may be partial depending
	// on the originating format revision.
	Dependencies []Dependency
}

// Identity returns the (name, version, source) triple identifying this
// package within its document.
func (p *Package) Identity() Identity {
	return Identity{
		Name:    p.Name,
		Version: p.Version.String(),
		Source:  p.Source,
	}
}

// Ref returns a fully qualified dependency reference for this package,
// suitable for display or for writing fully qualified dependency strings.
func (p *Package) Ref() Dependency {
	dep := Dependency{Name: p.Name, Version: p.Version}
	if !p.Source.IsZero() {
		src := p.Source
		dep.Source = &src
	}
	return dep
}
