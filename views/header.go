package views

// HeaderVariant selects how the site title is shown at the top of a page.
type HeaderVariant int

const (
	// HeaderPrimary is the large title shown on the root page.
	HeaderPrimary HeaderVariant = iota
	// HeaderSecondary is the smaller title shown everywhere else.
	HeaderSecondary
)

func (v HeaderVariant) String() string {
	if v == HeaderPrimary {
		return "primary"
	}
	return "secondary"
}

// SelectHeader returns HeaderPrimary when currentPath is the site root and
// HeaderSecondary for every other path. Paths are compared exactly.
func SelectHeader(currentPath, rootPath string) HeaderVariant {
	if currentPath == rootPath {
		return HeaderPrimary
	}
	return HeaderSecondary
}
