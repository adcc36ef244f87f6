package lockfile

import (
	"strings"
	"testing"

	"github.com/matzehuels/locktower/pkg/errors"
)

func TestParseChecksum(t *testing.T) {
	const digest = "d468802bab17cbc0cc575e9b053f41e72aa36bfa6b7f55e3529ffa43161b97fa"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Lowercase", input: digest, want: digest},
		{name: "Uppercase", input: strings.ToUpper(digest), want: digest},
		{name: "TooShort", input: digest[:40], wantErr: true},
		{name: "TooLong", input: digest + "00", wantErr: true},
		{name: "NotHex", input: strings.Repeat("z", 64), wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChecksum(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidChecksum) {
					t.Fatalf("ParseChecksum(%q) error = %v, want INVALID_CHECKSUM", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChecksum(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
			if got.IsZero() {
				t.Error("parsed checksum should not be zero")
			}
		})
	}

	if !(Checksum{}).IsZero() {
		t.Error("zero checksum should report IsZero")
	}
}
