//go:build lunydebug

package variable

// Debug reports whether the package was built with the lunydebug tag.
const Debug = true
