package variable

import "errors"

// Error conditions shared by the value and table layers. Callers match them
// with errors.Is; call sites wrap them with the offending names and kinds.
var (
	// ErrInvalidOperation reports a disallowed operation, such as arithmetic
	// on a bool or string operand, or a write to a constant.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidArgument reports a comparison against an unrelated type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotSupported reports a conversion the source tag does not allow.
	ErrNotSupported = errors.New("conversion not supported")

	// ErrInvalidCast reports a handle or slot requested as the wrong type.
	ErrInvalidCast = errors.New("invalid cast")
)
