// Package variable implements the dynamic values used by luny scripting state.
//
// This package contains:
//   - Number, a float64 wrapper with strict explicit conversions
//   - Variable, a closed tagged union (Null, Boolean, Number, String, Struct)
//   - Typed, the boxless generic struct payload
//   - Vector2 and Vector3, the geometric payloads with their own tags
package variable
