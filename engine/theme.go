package engine

// Built-in theme names. Engines accept any other name registered with them.
const (
	ThemeVS      = "vs"
	ThemeVSDark  = "vs-dark"
	ThemeHCBlack = "hc-black"
	ThemeHCLight = "hc-light"
)

// BuiltinThemes lists the themes every engine provides.
var BuiltinThemes = []string{ThemeVS, ThemeVSDark, ThemeHCBlack, ThemeHCLight}

// IsBuiltinTheme reports whether name is one of BuiltinThemes.
func IsBuiltinTheme(name string) bool {
	for _, t := range BuiltinThemes {
		if t == name {
			return true
		}
	}
	return false
}
