package lockfile

import (
	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/locktower/pkg/errors"
)

// noChecksum is the placeholder V1 wrote for source-bearing packages whose
// archive had no recorded digest.
const noChecksum = "<none>"

// Wire-level shapes, one per recognized section. Fields not present in a
// given revision simply decode to their zero values.

type encodedPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

type encodedRoot struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

type encodedPatch struct {
	Unused []encodedPackage `toml:"unused"`
}

// document is the generic ordered key/value form a parsed TOML file is
// reduced to before the section visitor runs. Keeping this layer separate
// from the TOML library lets the visitor enforce its own duplicate and
// missing-section rules, and lets tests feed it synthetic documents the
// tokenizer itself would reject.
type document struct {
	sections []section
	meta     toml.MetaData
}

// section is one top-level key and its still-undecoded value.
type section struct {
	key   string
	value toml.Primitive
}

// parseDocument tokenizes raw TOML into an ordered generic document.
func parseDocument(data []byte) (*document, error) {
	var raw map[string]toml.Primitive
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "malformed TOML document")
	}

	doc := &document{meta: meta}
	seen := make(map[string]bool)
	for _, key := range meta.Keys() {
		if len(key) != 1 || seen[key[0]] {
			continue
		}
		seen[key[0]] = true
		doc.sections = append(doc.sections, section{key: key[0], value: raw[key[0]]})
	}
	return doc, nil
}

// accumulator collects the decoded sections while the visitor walks the
// document.
type accumulator struct {
	packages    []encodedPackage
	havePackage bool
	root        *encodedRoot
	metadata    Metadata
	patch       encodedPatch
	marker      int64
}

// sectionHandlers dispatches each recognized top-level key to its decoder.
// Keys not in this table are silently ignored for forward compatibility
// with future sections.
var sectionHandlers = map[string]func(*accumulator, *document, toml.Primitive) error{
	"package": func(acc *accumulator, doc *document, prim toml.Primitive) error {
		acc.havePackage = true
		return doc.meta.PrimitiveDecode(prim, &acc.packages)
	},
	"root": func(acc *accumulator, doc *document, prim toml.Primitive) error {
		acc.root = &encodedRoot{}
		return doc.meta.PrimitiveDecode(prim, acc.root)
	},
	"metadata": func(acc *accumulator, doc *document, prim toml.Primitive) error {
		values := make(map[string]string)
		if err := doc.meta.PrimitiveDecode(prim, &values); err != nil {
			return err
		}
		// Re-establish document order from the full key listing; the
		// decoded map alone has none.
		for _, key := range doc.meta.Keys() {
			if len(key) == 2 && key[0] == "metadata" {
				acc.metadata.Set(key[1], values[key[1]])
			}
		}
		return nil
	},
	"patch": func(acc *accumulator, doc *document, prim toml.Primitive) error {
		return doc.meta.PrimitiveDecode(prim, &acc.patch)
	},
	"version": func(acc *accumulator, doc *document, prim toml.Primitive) error {
		return doc.meta.PrimitiveDecode(prim, &acc.marker)
	},
}

// decode runs the section visitor over the document and produces the
// normalized lockfile. Each recognized key may appear at most once and the
// package list is mandatory; the resolve version is detected from the
// decoded content before normalization finalizes the model.
func (doc *document) decode() (*Lockfile, error) {
	var acc accumulator
	seen := make(map[string]bool)

	for _, sec := range doc.sections {
		handler, ok := sectionHandlers[sec.key]
		if !ok {
			continue
		}
		if seen[sec.key] {
			return nil, errors.New(errors.ErrCodeDuplicateSection, "duplicate section: %q", sec.key)
		}
		seen[sec.key] = true
		if err := handler(&acc, doc, sec.value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "malformed section %q", sec.key)
		}
	}

	if !acc.havePackage {
		return nil, errors.New(errors.ErrCodeMissingSection, "missing section: %q", "package")
	}

	return acc.finalize()
}

// finalize converts the accumulated wire shapes into the typed model,
// detects the resolve version, and normalizes V1 checksum storage.
func (acc *accumulator) finalize() (*Lockfile, error) {
	packages, err := decodePackages(acc.packages)
	if err != nil {
		return nil, err
	}
	if err := checkUniqueIdentities(packages); err != nil {
		return nil, err
	}

	version, err := detectResolveVersion(packages, &acc.metadata, acc.marker)
	if err != nil {
		return nil, err
	}

	if err := inlineMetadataChecksums(packages, &acc.metadata); err != nil {
		return nil, err
	}

	lf := &Lockfile{
		Version:  version,
		Packages: packages,
		Metadata: acc.metadata,
	}

	if acc.root != nil {
		root, err := decodeRoot(acc.root)
		if err != nil {
			return nil, err
		}
		lf.Root = root
	}

	if len(acc.patch.Unused) > 0 {
		unused, err := decodePackages(acc.patch.Unused)
		if err != nil {
			return nil, err
		}
		lf.Patch.Unused = unused
	}

	return lf, nil
}

func decodePackages(encoded []encodedPackage) ([]Package, error) {
	packages := make([]Package, 0, len(encoded))
	for _, ep := range encoded {
		pkg, err := decodePackage(ep)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func decodePackage(ep encodedPackage) (Package, error) {
	if ep.Name == "" {
		return Package{}, errors.New(errors.ErrCodeInvalidDocument, "package entry without a name")
	}

	version, err := semver.NewVersion(ep.Version)
	if err != nil {
		return Package{}, errors.Wrap(errors.ErrCodeInvalidVersion, err,
			"invalid version %q for package %q", ep.Version, ep.Name)
	}
	pkg := Package{Name: ep.Name, Version: version}

	if ep.Source != "" {
		if pkg.Source, err = ParseSource(ep.Source); err != nil {
			return Package{}, err
		}
	}
	if ep.Checksum != "" {
		if pkg.Checksum, err = ParseChecksum(ep.Checksum); err != nil {
			return Package{}, err
		}
	}
	for _, raw := range ep.Dependencies {
		dep, err := ParseDependency(raw)
		if err != nil {
			return Package{}, err
		}
		pkg.Dependencies = append(pkg.Dependencies, dep)
	}
	return pkg, nil
}

func decodeRoot(er *encodedRoot) (*Dependency, error) {
	root := &Dependency{Name: er.Name}
	if er.Version != "" {
		version, err := semver.NewVersion(er.Version)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidVersion, err,
				"invalid version %q in root section", er.Version)
		}
		root.Version = version
	}
	if er.Source != "" {
		src, err := ParseSource(er.Source)
		if err != nil {
			return nil, err
		}
		root.Source = &src
	}
	return root, nil
}

func checkUniqueIdentities(packages []Package) error {
	seen := make(map[Identity]bool, len(packages))
	for i := range packages {
		id := packages[i].Identity()
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate package identity: %s", id)
		}
		seen[id] = true
	}
	return nil
}

// inlineMetadataChecksums moves V1 checksum entries from the metadata table
// onto their packages. Keys naming a package absent from the list are left
// in place so that listing and translation still work on such documents;
// only graph-affecting problems are deferred to graph-build time.
func inlineMetadataChecksums(packages []Package, metadata *Metadata) error {
	for _, key := range append([]string(nil), metadata.Keys()...) {
		ref, ok := parseChecksumKey(key)
		if !ok {
			continue
		}

		var target *Package
		for i := range packages {
			if ref.Matches(&packages[i]) {
				target = &packages[i]
				break
			}
		}
		if target == nil {
			continue
		}

		value, _ := metadata.Get(key)
		if value != noChecksum {
			sum, err := ParseChecksum(value)
			if err != nil {
				return err
			}
			target.Checksum = sum
		}
		metadata.Delete(key)
	}
	return nil
}
