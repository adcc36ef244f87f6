package lockfile

import "strings"

// checksumKeyPrefix marks V1 metadata entries that carry package checksums.
const checksumKeyPrefix = "checksum "

// Metadata is the [metadata] section: an insertion-ordered mapping of
// opaque string keys to string values. The V1 format piggybacks package
// checksums here using keys of the form
// "checksum <name> <version> (<source>)"; those entries are pulled inline
// onto their packages during parsing and synthesized back when encoding V1.
type Metadata struct {
	keys   []string
	values map[string]string
}

// Set stores a key/value pair, preserving first-insertion order.
// Setting an existing key overwrites its value in place.
func (m *Metadata) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it is present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes a key if present.
func (m *Metadata) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Metadata) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice must not
// be modified.
func (m *Metadata) Keys() []string { return m.keys }

// HasChecksumKeys reports whether any entry uses the V1 checksum key form.
func (m *Metadata) HasChecksumKeys() bool {
	for _, k := range m.keys {
		if strings.HasPrefix(k, checksumKeyPrefix) {
			return true
		}
	}
	return false
}

// checksumKey synthesizes the V1 metadata key for a package identity.
func checksumKey(id Identity) string {
	var b strings.Builder
	b.WriteString(checksumKeyPrefix)
	b.WriteString(id.Name)
	b.WriteByte(' ')
	b.WriteString(id.Version)
	if !id.Source.IsZero() {
		b.WriteString(" (")
		b.WriteString(id.Source.String())
		b.WriteByte(')')
	}
	return b.String()
}

// parseChecksumKey decodes a V1 checksum key into the package reference it
// names. Returns false when the key does not use the checksum form or the
// embedded reference is malformed.
func parseChecksumKey(key string) (Dependency, bool) {
	rest, ok := strings.CutPrefix(key, checksumKeyPrefix)
	if !ok {
		return Dependency{}, false
	}
	dep, err := ParseDependency(rest)
	if err != nil {
		return Dependency{}, false
	}
	return dep, true
}
