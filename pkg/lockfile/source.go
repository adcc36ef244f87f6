package lockfile

import (
	"strings"

	"github.com/matzehuels/locktower/pkg/errors"
)

// DefaultRegistryURL is the URL of the default package registry index.
const DefaultRegistryURL = "https://github.com/rust-lang/crates.io-index"

// SourceKind identifies the protocol a package was obtained through.
type SourceKind string

// Recognized source kinds.
const (
	SourceRegistry SourceKind = "registry"
	SourceSparse   SourceKind = "sparse"
	SourceGit      SourceKind = "git"
	SourcePath     SourceKind = "path"
)

// Source is a package source locator of the form "kind+url[?ref][#precise]".
//
// Examples:
//
//	registry+https://github.com/rust-lang/crates.io-index
//	git+https://github.com/owner/repo?branch=main#9f35b8e
//	path+file:///home/user/project
//
// Source is comparable and participates in package identity: two packages
// with the same name and version but different sources are distinct.
type Source struct {
	Kind SourceKind
	URL  string // bare URL, without kind prefix, query, or fragment

	// Reference is the raw git reference query ("branch=main", "tag=v1.0",
	// "rev=9f35b8e"). Empty for non-git sources.
	Reference string

	// Precise is the exact revision the source resolved to, recorded in the
	// URL fragment. Empty when the format revision did not record one.
	Precise string
}

// ParseSource parses a source locator string.
func ParseSource(s string) (Source, error) {
	kind, rest, ok := strings.Cut(s, "+")
	if !ok {
		return Source{}, errors.New(errors.ErrCodeInvalidSource,
			"source is missing a kind prefix: %q", s)
	}

	var src Source
	switch SourceKind(kind) {
	case SourceRegistry, SourceSparse, SourceGit, SourcePath:
		src.Kind = SourceKind(kind)
	default:
		return Source{}, errors.New(errors.ErrCodeInvalidSource,
			"unknown source kind %q in %q", kind, s)
	}

	rest, src.Precise, _ = strings.Cut(rest, "#")
	src.URL, src.Reference, _ = strings.Cut(rest, "?")
	if src.URL == "" {
		return Source{}, errors.New(errors.ErrCodeInvalidSource,
			"source has an empty URL: %q", s)
	}
	return src, nil
}

// String reconstructs the locator in its on-disk form.
func (s Source) String() string {
	var b strings.Builder
	b.WriteString(string(s.Kind))
	b.WriteByte('+')
	b.WriteString(s.URL)
	if s.Reference != "" {
		b.WriteByte('?')
		b.WriteString(s.Reference)
	}
	if s.Precise != "" {
		b.WriteByte('#')
		b.WriteString(s.Precise)
	}
	return b.String()
}

// IsZero reports whether the source is unset. Packages without a source
// (e.g. workspace members) have a zero Source.
func (s Source) IsZero() bool { return s.Kind == "" }

// IsDefaultRegistry reports whether the source points at the default
// package registry.
func (s Source) IsDefaultRegistry() bool {
	return s.Kind == SourceRegistry && s.URL == DefaultRegistryURL
}
