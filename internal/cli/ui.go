package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/locktower/pkg/lockfile"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - package names
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// styleName for package names.
	styleName = lipgloss.NewStyle().Foreground(colorCyan)

	// styleValue for versions and other data values.
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// styleDim for secondary/muted text such as source locators.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)
)

// formatPackage renders one package as "name version (source)" with the
// source part dimmed.
func formatPackage(pkg *lockfile.Package) string {
	line := styleName.Render(pkg.Name) + " " + styleValue.Render(pkg.Version.String())
	if !pkg.Source.IsZero() {
		line += " " + styleDim.Render("("+pkg.Source.String()+")")
	}
	return line
}
