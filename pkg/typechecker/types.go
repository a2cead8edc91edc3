package typechecker

// Type is the checker's three-value lattice. Any means "unknown, assume
// compatible": a deliberate unsoundness escape, not inference.
type Type int

const (
	TypeNumber Type = iota
	TypeBool
	TypeAny
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeBool:
		return "Bool"
	case TypeAny:
		return "Any"
	default:
		return "unknown"
	}
}

// constraintType maps a declared parameter constraint name onto the
// lattice; unrecognized names are assumed compatible.
func constraintType(name string) Type {
	switch name {
	case "Number":
		return TypeNumber
	case "Bool":
		return TypeBool
	default:
		return TypeAny
	}
}
