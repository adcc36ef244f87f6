package lockfile

import (
	"testing"

	"github.com/matzehuels/locktower/pkg/errors"
)

const (
	testRegistry = "registry+https://github.com/rust-lang/crates.io-index"
	testDigest   = "d468802bab17cbc0cc575e9b053f41e72aa36bfa6b7f55e3529ffa43161b97fa"
)

func TestParseResolveVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    ResolveVersion
		wantErr bool
	}{
		{input: "1", want: ResolveV1},
		{input: "2", want: ResolveV2},
		{input: "3", want: ResolveV3},
		{input: "0", wantErr: true},
		{input: "4", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResolveVersion(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidVersion) {
					t.Fatalf("error = %v, want INVALID_VERSION", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseResolveVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestDetectResolveVersion(t *testing.T) {
	// Building blocks assembled per case below.
	inlinePkg := func(deps ...string) encodedPackage {
		return encodedPackage{
			Name: "a", Version: "1.0.0", Source: testRegistry,
			Checksum: testDigest, Dependencies: deps,
		}
	}
	plainPkg := func(name string, deps ...string) encodedPackage {
		return encodedPackage{Name: name, Version: "1.0.0", Source: testRegistry, Dependencies: deps}
	}

	tests := []struct {
		name     string
		packages []encodedPackage
		checksum string // metadata-table checksum entry for package "a", if any
		marker   int64
		want     ResolveVersion
		wantErr  errors.Code
	}{
		{
			name:     "InlineChecksumFullyQualifiedDetectsNewest",
			packages: []encodedPackage{inlinePkg("b 1.0.0 (" + testRegistry + ")"), plainPkg("b")},
			want:     ResolveV3,
		},
		{
			name:     "InlineChecksumCompactDepsDetectsV2",
			packages: []encodedPackage{inlinePkg("b"), plainPkg("b")},
			want:     ResolveV2,
		},
		{
			name:     "InlineChecksumCompactDepsWithMarkerDetectsV3",
			packages: []encodedPackage{inlinePkg("b"), plainPkg("b")},
			marker:   3,
			want:     ResolveV3,
		},
		{
			name:     "MetadataChecksumDetectsV1",
			packages: []encodedPackage{plainPkg("a")},
			checksum: testDigest,
			want:     ResolveV1,
		},
		{
			name:     "MetadataChecksumWithMarkerConflicts",
			packages: []encodedPackage{plainPkg("a")},
			checksum: testDigest,
			marker:   3,
			wantErr:  errors.ErrCodeFormatConflict,
		},
		{
			name:     "MixedChecksumStorageConflicts",
			packages: []encodedPackage{inlinePkg()},
			checksum: testDigest,
			wantErr:  errors.ErrCodeFormatConflict,
		},
		{
			name: "EmptyDocumentDefaultsToNewest",
			want: ResolveV3,
		},
		{
			name:     "NoSignalsFullyQualifiedDetectsV2",
			packages: []encodedPackage{plainPkg("a", "b 1.0.0 ("+testRegistry+")"), plainPkg("b")},
			want:     ResolveV2,
		},
		{
			name:     "NoSignalsWithMarkerDetectsV3",
			packages: []encodedPackage{plainPkg("a", "b 1.0.0 ("+testRegistry+")"), plainPkg("b")},
			marker:   3,
			want:     ResolveV3,
		},
		{
			name:     "UnsupportedMarkerFails",
			packages: []encodedPackage{plainPkg("a")},
			marker:   7,
			wantErr:  errors.ErrCodeInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packages, err := decodePackages(tt.packages)
			if err != nil {
				t.Fatalf("fixture packages: %v", err)
			}
			var metadata Metadata
			if tt.checksum != "" {
				key := "checksum a 1.0.0 (" + testRegistry + ")"
				metadata.Set(key, tt.checksum)
			}

			got, err := detectResolveVersion(packages, &metadata, tt.marker)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("detectResolveVersion = V%s, want V%s", got, tt.want)
			}
		})
	}
}
