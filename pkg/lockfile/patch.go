package lockfile

// Patch is the [patch] section: packages that appear in the document's
// patch table but not in the resolved package list.
type Patch struct {
	// Unused holds patched packages that resolution did not select.
	Unused []Package
}

// IsEmpty reports whether the patch section carries no entries.
func (p *Patch) IsEmpty() bool { return len(p.Unused) == 0 }
