//go:build !lunydebug

package variable

// Debug reports whether the package was built with the lunydebug tag.
// When false, Variable names are not retained and tables default to
// not raising change events.
const Debug = false
