package marshal

// Kind is the static category of an element type. Marshalling rules are
// dispatched on Kind, fixed at bind time.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBytes
	KindStruct
	KindEnum
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindBytes:  "bytes",
	KindStruct: "struct",
	KindEnum:   "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether elements of this kind are copied by value in both
// marshalling directions.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInt, KindUint, KindFloat:
		return true
	default:
		return false
	}
}
