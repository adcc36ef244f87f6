// Package lockfile parses, normalizes, and re-emits Cargo.lock style
// dependency snapshots.
//
// # Overview
//
// A lockfile records a fully resolved dependency set: one entry per package
// with its name, version, source locator, optional content checksum, and
// the list of packages it depends on. The on-disk format went through
// incompatible revisions; this package accepts any of them, detects which
// revision produced a given document, and exposes a single normalized
// in-memory model regardless of origin.
//
// # Format Revisions
//
// Three resolve versions are supported:
//
//   - V1: checksums live in the [metadata] table under synthesized
//     "checksum <name> <version> (<source>)" keys, dependency strings are
//     fully qualified, and a legacy [root] section may be present.
//   - V2: checksums move inline onto each [[package]] entry and dependency
//     strings become compact (name only, qualified just enough to stay
//     unambiguous within the document).
//   - V3: identical layout to V2 plus an explicit "version = 3" marker at
//     the top of the document.
//
// Parsing always produces the same normalized model: checksums inline on
// packages, [metadata] holding only pass-through entries. Encoding honors
// the lockfile's resolve version, so a document round-trips in its native
// shape unless a translation is explicitly requested.
//
// # Usage
//
//	lf, err := lockfile.Load("Cargo.lock")
//	if err != nil {
//	    return err
//	}
//	for _, pkg := range lf.Packages {
//	    fmt.Println(pkg.Identity())
//	}
//
//	// Translate to another revision
//	lf.Version = lockfile.ResolveV1
//	fmt.Print(lf.String())
//
// The dependency graph derived from a lockfile lives in the nested
// graph package.
package lockfile
