package lockfile

import (
	"encoding/hex"
	"strings"

	"github.com/matzehuels/locktower/pkg/errors"
)

// sha256HexLen is the length of a hex-encoded SHA-256 digest.
const sha256HexLen = 64

// Checksum is a content hash recorded for a package's source archive.
// Only SHA-256 digests are used by the formats this package understands;
// the value is stored as lowercase hex.
type Checksum struct {
	hex string
}

// ParseChecksum parses a hex-encoded SHA-256 digest.
// Uppercase input is accepted and normalized to lowercase.
func ParseChecksum(s string) (Checksum, error) {
	if len(s) != sha256HexLen {
		return Checksum{}, errors.New(errors.ErrCodeInvalidChecksum,
			"checksum must be %d hex characters, got %d: %q", sha256HexLen, len(s), s)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return Checksum{}, errors.Wrap(errors.ErrCodeInvalidChecksum, err,
			"checksum is not valid hex: %q", s)
	}
	return Checksum{hex: strings.ToLower(s)}, nil
}

// String returns the lowercase hex digest.
func (c Checksum) String() string { return c.hex }

// IsZero reports whether the checksum is unset.
func (c Checksum) IsZero() bool { return c.hex == "" }
