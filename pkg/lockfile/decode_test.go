package lockfile

import (
	"testing"

	"github.com/matzehuels/locktower/pkg/errors"
)

const fixtureV3 = `version = 3

[[package]]
name = "adler"
version = "1.0.2"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "f26201604c87b1e01bd3d98f8d5d9a8fcbb815e8cedb41ffccbeb4bf593a35fe"

[[package]]
name = "miniz_oxide"
version = "0.5.4"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "96590ba8f175222643a85693f33d26e9c8a015f599c216509b1a6894af675d34"
dependencies = [
 "adler",
]
`

const fixtureV2 = `[[package]]
name = "adler"
version = "1.0.2"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "f26201604c87b1e01bd3d98f8d5d9a8fcbb815e8cedb41ffccbeb4bf593a35fe"

[[package]]
name = "miniz_oxide"
version = "0.5.4"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "96590ba8f175222643a85693f33d26e9c8a015f599c216509b1a6894af675d34"
dependencies = [
 "adler",
]
`

const fixtureV1 = `[root]
name = "app"
version = "0.1.0"

[[package]]
name = "app"
version = "0.1.0"
dependencies = [
 "libc 0.2.62 (registry+https://github.com/rust-lang/crates.io-index)",
]

[[package]]
name = "libc"
version = "0.2.62"
source = "registry+https://github.com/rust-lang/crates.io-index"

[metadata]
"checksum libc 0.2.62 (registry+https://github.com/rust-lang/crates.io-index)" = "34fcd2c08d2f832f376f4173a231990fa5aee4e22ad357b4e97f0e1c953255f3"
`

func TestParseV3(t *testing.T) {
	lf, err := Parse([]byte(fixtureV3))
	if err != nil {
		t.Fatal(err)
	}

	if lf.Version != ResolveV3 {
		t.Errorf("Version = V%s, want V3", lf.Version)
	}
	if len(lf.Packages) != 2 {
		t.Fatalf("len(Packages) = %d, want 2", len(lf.Packages))
	}
	if lf.Packages[0].Checksum.IsZero() {
		t.Error("inline checksum not decoded")
	}
	if deps := lf.Packages[1].Dependencies; len(deps) != 1 || deps[0].Name != "adler" || deps[0].Version != nil {
		t.Errorf("compact dependency decoded wrong: %+v", deps)
	}
	if lf.Root != nil {
		t.Error("Root should be nil outside V1")
	}
}

func TestParseV2(t *testing.T) {
	lf, err := Parse([]byte(fixtureV2))
	if err != nil {
		t.Fatal(err)
	}
	if lf.Version != ResolveV2 {
		t.Errorf("Version = V%s, want V2", lf.Version)
	}
}

func TestParseV1NormalizesChecksums(t *testing.T) {
	lf, err := Parse([]byte(fixtureV1))
	if err != nil {
		t.Fatal(err)
	}

	if lf.Version != ResolveV1 {
		t.Fatalf("Version = V%s, want V1", lf.Version)
	}
	if lf.Root == nil || lf.Root.Name != "app" {
		t.Fatalf("Root = %+v, want app", lf.Root)
	}

	libc := lf.PackagesNamed("libc")
	if len(libc) != 1 {
		t.Fatalf("libc not found")
	}
	if libc[0].Checksum.String() != "34fcd2c08d2f832f376f4173a231990fa5aee4e22ad357b4e97f0e1c953255f3" {
		t.Errorf("metadata checksum not inlined, got %q", libc[0].Checksum)
	}
	if lf.Metadata.Len() != 0 {
		t.Errorf("consumed checksum keys should leave metadata empty, got %v", lf.Metadata.Keys())
	}

	// V1 references are fully qualified.
	app := lf.PackagesNamed("app")[0]
	if dep := app.Dependencies[0]; dep.Version == nil || dep.Source == nil {
		t.Errorf("V1 dependency should be fully qualified: %+v", dep)
	}
}

func TestParseV1ChecksumEdgeCases(t *testing.T) {
	doc := `[[package]]
name = "app"
version = "0.1.0"
source = "registry+https://github.com/rust-lang/crates.io-index"

[metadata]
"checksum app 0.1.0 (registry+https://github.com/rust-lang/crates.io-index)" = "<none>"
"checksum ghost 9.9.9 (registry+https://github.com/rust-lang/crates.io-index)" = "f26201604c87b1e01bd3d98f8d5d9a8fcbb815e8cedb41ffccbeb4bf593a35fe"
plain = "value"
`
	lf, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if lf.Version != ResolveV1 {
		t.Fatalf("Version = V%s, want V1", lf.Version)
	}
	if !lf.Packages[0].Checksum.IsZero() {
		t.Error("<none> checksum should stay unset")
	}

	// The key naming a missing package is tolerated at parse time and kept;
	// the plain entry passes through untouched.
	keys := lf.Metadata.Keys()
	if len(keys) != 2 {
		t.Fatalf("metadata keys = %v, want ghost checksum and plain entry", keys)
	}
	if _, ok := lf.Metadata.Get("plain"); !ok {
		t.Error("plain metadata entry lost")
	}
}

func TestParseMissingPackageSection(t *testing.T) {
	_, err := Parse([]byte("[metadata]\nfoo = \"bar\"\n"))
	if !errors.Is(err, errors.ErrCodeMissingSection) {
		t.Fatalf("error = %v, want MISSING_SECTION", err)
	}
}

func TestParseDuplicateSection(t *testing.T) {
	doc, err := parseDocument([]byte(fixtureV2))
	if err != nil {
		t.Fatal(err)
	}

	// The TOML layer cannot produce a duplicate top-level key, so splice a
	// repeated section into the generic document directly.
	for _, sec := range doc.sections {
		if sec.key == "package" {
			doc.sections = append(doc.sections, sec)
			break
		}
	}

	_, err = doc.decode()
	if !errors.Is(err, errors.ErrCodeDuplicateSection) {
		t.Fatalf("error = %v, want DUPLICATE_SECTION", err)
	}
}

func TestParseIgnoresUnknownSections(t *testing.T) {
	doc := `[future-section]
key = "value"

[[package]]
name = "adler"
version = "1.0.2"
`
	lf, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(lf.Packages) != 1 {
		t.Errorf("len(Packages) = %d, want 1", len(lf.Packages))
	}
}

func TestParseDuplicateIdentity(t *testing.T) {
	doc := `[[package]]
name = "adler"
version = "1.0.2"

[[package]]
name = "adler"
version = "1.0.2"
`
	_, err := Parse([]byte(doc))
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Fatalf("error = %v, want INVALID_DOCUMENT", err)
	}
}

func TestParsePatchSection(t *testing.T) {
	doc := fixtureV2 + `
[[patch.unused]]
name = "quux"
version = "0.9.0"
`
	lf, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(lf.Patch.Unused) != 1 || lf.Patch.Unused[0].Name != "quux" {
		t.Errorf("Patch.Unused = %+v, want quux", lf.Patch.Unused)
	}
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse([]byte("not toml at all ["))
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Fatalf("error = %v, want INVALID_DOCUMENT", err)
	}
}
