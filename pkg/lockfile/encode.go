package lockfile

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
)

// bareKeyRe matches TOML keys that can be written unquoted.
var bareKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// encoder serializes a lockfile in the layout its resolve version
// prescribes. The output is canonical: encoding a freshly parsed V2/V3
// document reproduces it byte for byte.
type encoder struct {
	buf    bytes.Buffer
	lf     *Lockfile
	byName map[string][]*Package
}

func newEncoder(lf *Lockfile) *encoder {
	enc := &encoder{lf: lf, byName: make(map[string][]*Package)}
	for i := range lf.Packages {
		pkg := &lf.Packages[i]
		enc.byName[pkg.Name] = append(enc.byName[pkg.Name], pkg)
	}
	return enc
}

// Encode writes the document to w, honoring lf.Version.
func (lf *Lockfile) Encode(w io.Writer) error {
	enc := newEncoder(lf)
	enc.document()
	_, err := w.Write(enc.buf.Bytes())
	return err
}

// String returns the encoded document.
func (lf *Lockfile) String() string {
	enc := newEncoder(lf)
	enc.document()
	return enc.buf.String()
}

func (e *encoder) document() {
	first := true
	sectionBreak := func() {
		if !first {
			e.buf.WriteByte('\n')
		}
		first = false
	}

	if e.lf.Version.hasMarker() {
		sectionBreak()
		fmt.Fprintf(&e.buf, "version = %s\n", e.lf.Version)
	}

	if e.lf.Version == ResolveV1 && e.lf.Root != nil {
		sectionBreak()
		e.root(e.lf.Root)
	}

	for i := range e.lf.Packages {
		sectionBreak()
		e.pkg(&e.lf.Packages[i], "[[package]]")
	}

	if entries := e.metadataEntries(); len(entries) > 0 {
		sectionBreak()
		e.buf.WriteString("[metadata]\n")
		for _, entry := range entries {
			fmt.Fprintf(&e.buf, "%s = %q\n", tomlKey(entry[0]), entry[1])
		}
	}

	for i := range e.lf.Patch.Unused {
		sectionBreak()
		e.pkg(&e.lf.Patch.Unused[i], "[[patch.unused]]")
	}
}

func (e *encoder) root(root *Dependency) {
	e.buf.WriteString("[root]\n")
	fmt.Fprintf(&e.buf, "name = %q\n", root.Name)
	if root.Version != nil {
		fmt.Fprintf(&e.buf, "version = %q\n", root.Version)
	}
	if root.Source != nil {
		fmt.Fprintf(&e.buf, "source = %q\n", root.Source)
	}
}

func (e *encoder) pkg(pkg *Package, header string) {
	e.buf.WriteString(header)
	e.buf.WriteByte('\n')
	fmt.Fprintf(&e.buf, "name = %q\n", pkg.Name)
	fmt.Fprintf(&e.buf, "version = %q\n", pkg.Version)
	if !pkg.Source.IsZero() {
		fmt.Fprintf(&e.buf, "source = %q\n", pkg.Source)
	}
	if e.lf.Version >= ResolveV2 && !pkg.Checksum.IsZero() {
		fmt.Fprintf(&e.buf, "checksum = %q\n", pkg.Checksum)
	}
	if len(pkg.Dependencies) > 0 {
		e.buf.WriteString("dependencies = [\n")
		for _, dep := range pkg.Dependencies {
			fmt.Fprintf(&e.buf, " %q,\n", e.depString(dep))
		}
		e.buf.WriteString("]\n")
	}
}

// depString renders one dependency reference for the target revision:
// fully qualified for V1, minimally qualified for V2/V3.
func (e *encoder) depString(dep Dependency) string {
	target := e.resolve(dep)

	if e.lf.Version == ResolveV1 {
		if target != nil {
			return target.Ref().String()
		}
		return dep.String() // unresolvable: keep what the document recorded
	}

	candidates := e.byName[dep.Name]
	if len(candidates) <= 1 {
		return dep.Name
	}

	// The name alone is ambiguous in this document; qualify with the
	// version, and with the source too when versions still collide.
	out := dep
	if out.Version == nil && target != nil {
		out.Version = target.Version
	}
	if out.Version == nil {
		return dep.Name
	}
	sameVersion := 0
	for _, c := range candidates {
		if c.Version.Equal(out.Version) {
			sameVersion++
		}
	}
	if sameVersion <= 1 {
		out.Source = nil
		return out.String()
	}
	if out.Source == nil && target != nil && !target.Source.IsZero() {
		src := target.Source
		out.Source = &src
	}
	return out.String()
}

// resolve returns the unique package satisfying dep, or nil when the
// reference is absent or ambiguous in this document.
func (e *encoder) resolve(dep Dependency) *Package {
	var found *Package
	for _, pkg := range e.byName[dep.Name] {
		if dep.Matches(pkg) {
			if found != nil {
				return nil
			}
			found = pkg
		}
	}
	return found
}

// metadataEntries assembles the [metadata] key/value pairs for the target
// revision. Pass-through entries are always included; V1 additionally
// synthesizes a checksum key per source-bearing package. Entries are
// emitted in lexicographic key order, the canonical layout for this table.
func (e *encoder) metadataEntries() [][2]string {
	var entries [][2]string
	for _, key := range e.lf.Metadata.Keys() {
		value, _ := e.lf.Metadata.Get(key)
		entries = append(entries, [2]string{key, value})
	}

	if e.lf.Version == ResolveV1 {
		for i := range e.lf.Packages {
			pkg := &e.lf.Packages[i]
			if pkg.Source.IsZero() {
				continue
			}
			value := noChecksum
			if !pkg.Checksum.IsZero() {
				value = pkg.Checksum.String()
			}
			entries = append(entries, [2]string{checksumKey(pkg.Identity()), value})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i][0] < entries[j][0] })
	return entries
}

// tomlKey quotes a key unless it is a bare TOML key.
func tomlKey(key string) string {
	if bareKeyRe.MatchString(key) {
		return key
	}
	return fmt.Sprintf("%q", key)
}
