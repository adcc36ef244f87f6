package lockfile

import (
	"strconv"

	"github.com/matzehuels/locktower/pkg/errors"
)

// ResolveVersion is the historical format revision a lockfile document
// uses. It is detected once per document during parsing and governs how
// the document is encoded: where checksums live, how dependency strings
// are qualified, and whether a version marker or legacy [root] section
// is written.
type ResolveVersion uint32

// Supported format revisions.
const (
	// ResolveV1 stores checksums in the [metadata] table and writes fully
	// qualified dependency strings.
	ResolveV1 ResolveVersion = iota + 1

	// ResolveV2 stores checksums inline on each package and writes compact
	// dependency strings.
	ResolveV2

	// ResolveV3 is the V2 layout plus an explicit "version = 3" marker.
	ResolveV3
)

// DefaultResolveVersion is the revision used for new or signal-free
// documents: always the newest supported one.
const DefaultResolveVersion = ResolveV3

// String returns the numeric form of the revision ("1", "2", "3").
func (v ResolveVersion) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// ParseResolveVersion parses a numeric revision string.
func ParseResolveVersion(s string) (ResolveVersion, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidVersion, err,
			"invalid resolve version %q", s)
	}
	v := ResolveVersion(n)
	if v < ResolveV1 || v > ResolveV3 {
		return 0, errors.New(errors.ErrCodeInvalidVersion,
			"unsupported resolve version %d", n)
	}
	return v, nil
}

// hasMarker reports whether documents at this revision carry an explicit
// top-level "version" marker.
func (v ResolveVersion) hasMarker() bool { return v >= ResolveV3 }

// detectSignals are the structural facts the detection rules inspect.
type detectSignals struct {
	inlineChecksums bool  // any package carries an inline checksum
	tableChecksums  bool  // [metadata] contains checksum-form keys
	partialDeps     bool  // any dependency reference omits its version
	empty           bool  // the package list is empty
	marker          int64 // top-level "version" marker, 0 when absent
}

// detectRule is one priority-ordered classification rule: when applies
// returns true, classify decides the revision (or fails).
type detectRule struct {
	applies  func(detectSignals) bool
	classify func(detectSignals) (ResolveVersion, error)
}

// detectRules run in order; the first applicable rule wins. Adding a future
// revision means adding a rule, not touching the existing ones.
var detectRules = []detectRule{
	// Both checksum storage layouts in use at once: a corrupted or
	// hand-edited document. Never resolved silently.
	{
		applies: func(s detectSignals) bool { return s.inlineChecksums && s.tableChecksums },
		classify: func(detectSignals) (ResolveVersion, error) {
			return 0, errors.New(errors.ErrCodeFormatConflict,
				"document mixes inline and metadata-table checksums")
		},
	},
	// Metadata-table checksums are a V1-only layout; a version marker
	// alongside them contradicts that.
	{
		applies: func(s detectSignals) bool { return s.tableChecksums },
		classify: func(s detectSignals) (ResolveVersion, error) {
			if s.marker != 0 {
				return 0, errors.New(errors.ErrCodeFormatConflict,
					"metadata-table checksums conflict with version marker %d", s.marker)
			}
			return ResolveV1, nil
		},
	},
	// Inline checksums with fully qualified references are consistent with
	// every post-V1 revision: default to the newest.
	{
		applies:  func(s detectSignals) bool { return s.inlineChecksums && !s.partialDeps },
		classify: markerOrDefault(DefaultResolveVersion),
	},
	// Name-only dependency references mean a post-V1 layout; the marker
	// distinguishes V3 from V2.
	{
		applies:  func(s detectSignals) bool { return s.inlineChecksums || s.partialDeps },
		classify: markerOrDefault(ResolveV2),
	},
	// An empty package list is consistent with every revision: default to
	// the newest.
	{
		applies:  func(s detectSignals) bool { return s.empty },
		classify: markerOrDefault(DefaultResolveVersion),
	},
	// No checksums anywhere and fully qualified references: V2 unless the
	// marker claims the newer layout.
	{
		applies:  func(detectSignals) bool { return true },
		classify: markerOrDefault(ResolveV2),
	},
}

// markerOrDefault classifies from the version marker when one is present,
// falling back to the given revision when it is absent.
func markerOrDefault(fallback ResolveVersion) func(detectSignals) (ResolveVersion, error) {
	return func(s detectSignals) (ResolveVersion, error) {
		switch s.marker {
		case 0:
			return fallback, nil
		case 3:
			return ResolveV3, nil
		default:
			return 0, errors.New(errors.ErrCodeInvalidVersion,
				"unsupported version marker %d", s.marker)
		}
	}
}

// detectResolveVersion classifies the format revision that produced a
// decoded document. marker is the top-level "version" value, 0 when the
// document has none.
func detectResolveVersion(packages []Package, metadata *Metadata, marker int64) (ResolveVersion, error) {
	signals := detectSignals{
		tableChecksums: metadata.HasChecksumKeys(),
		empty:          len(packages) == 0,
		marker:         marker,
	}
	for i := range packages {
		if !packages[i].Checksum.IsZero() {
			signals.inlineChecksums = true
		}
		for _, dep := range packages[i].Dependencies {
			if dep.Version == nil {
				signals.partialDeps = true
			}
		}
	}

	for _, rule := range detectRules {
		if rule.applies(signals) {
			return rule.classify(signals)
		}
	}
	// The final rule always applies.
	return 0, errors.New(errors.ErrCodeInternal, "no detection rule matched")
}
