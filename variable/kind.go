package variable

// ---------------------------------------------------------------------------
// Kind: the tag table for Variable
// ---------------------------------------------------------------------------
//
// Every Variable carries exactly one Kind. Struct is the generic payload
// case; Vector2 and Vector3 are Struct payloads recognised for typed
// extraction and are stored inline rather than behind an interface.

// Kind identifies which variant a Variable holds.
type Kind uint8

const (
	KindNull    Kind = iota // No value
	KindBoolean             // bool
	KindNumber              // Number
	KindString              // string
	KindStruct              // Arbitrary payload
	KindVector2             // Vector2 payload
	KindVector3             // Vector3 payload
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindStruct:
		return "Struct"
	case KindVector2:
		return "Vector2"
	case KindVector3:
		return "Vector3"
	default:
		return "Unknown"
	}
}

// IsStruct reports whether k is the generic struct tag or one of its
// geometric specialisations.
func (k Kind) IsStruct() bool {
	return k == KindStruct || k == KindVector2 || k == KindVector3
}
