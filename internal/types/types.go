// Package types models the sized types that annotate a checked
// program tree. Resource analysis reads only byte sizes and stack
// payloads from it; the rest of the shape mirrors what the semantic
// layer produces.
package types

import "fmt"

// Kind discriminates the type categories.
type Kind uint8

const (
	// None marks an expression with no value, e.g. a bare builtin call
	// used as a statement.
	None Kind = iota
	// Void is the unit return type of subprograms.
	Void
	// Integer is a fixed-width integer.
	Integer
	// String is a NUL-terminated byte buffer of fixed size.
	String
	// Pointer is an 8-byte address.
	Pointer
	// Array is a fixed-count sequence of one element type.
	Array
	// Record is a C struct or union with a precomputed layout size.
	Record
	// Stack is a call-stack capture payload.
	Stack
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Void:
		return "void"
	case Integer:
		return "integer"
	case String:
		return "string"
	case Pointer:
		return "pointer"
	case Array:
		return "array"
	case Record:
		return "record"
	case Stack:
		return "stack"
	}
	return "unknown"
}

// Type is a resolved, sized type. The zero value is None.
type Type struct {
	Kind   Kind
	Bits   uint32 // Integer: width in bits
	Signed bool   // Integer: signedness
	Bytes  uint64 // String and Record: total byte size
	Elem   *Type  // Pointer and Array: element type
	Count  uint64 // Array: element count
	Tag    string // Record: "struct foo" / "union bar"
	Stack  StackType
}

const pointerSize = 8

// Size returns the byte width resource analysis charges for a value
// of this type.
func (t Type) Size() uint64 {
	switch t.Kind {
	case Integer:
		return uint64(t.Bits) / 8
	case String, Record:
		return t.Bytes
	case Pointer, Stack:
		return pointerSize
	case Array:
		if t.Elem == nil {
			return 0
		}
		return t.Elem.Size() * t.Count
	default:
		return 0
	}
}

// IsStack reports whether the type carries a stack capture payload.
func (t Type) IsStack() bool { return t.Kind == Stack }

func (t Type) String() string {
	switch t.Kind {
	case Integer:
		if t.Signed {
			return fmt.Sprintf("int%d", t.Bits)
		}
		return fmt.Sprintf("uint%d", t.Bits)
	case String:
		return fmt.Sprintf("string[%d]", t.Bytes)
	case Pointer:
		if t.Elem != nil {
			return t.Elem.String() + " *"
		}
		return "void *"
	case Array:
		if t.Elem != nil {
			return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Count)
		}
		return fmt.Sprintf("[%d]", t.Count)
	case Record:
		return t.Tag
	case Stack:
		return "stack " + t.Stack.String()
	default:
		return t.Kind.String()
	}
}

// NewNone returns the no-value type.
func NewNone() Type { return Type{Kind: None} }

// NewVoid returns the subprogram unit type.
func NewVoid() Type { return Type{Kind: Void} }

// NewInt returns a fixed-width integer type.
func NewInt(bits uint32, signed bool) Type {
	return Type{Kind: Integer, Bits: bits, Signed: signed}
}

// NewInt64 returns the default expression type, a signed 64-bit int.
func NewInt64() Type { return NewInt(64, true) }

// NewString returns a string type of n bytes including the NUL.
func NewString(n uint64) Type { return Type{Kind: String, Bytes: n} }

// NewStringLiteral returns the type of a literal: its length plus NUL.
func NewStringLiteral(s string) Type { return NewString(uint64(len(s)) + 1) }

// NewPointer returns a pointer to elem.
func NewPointer(elem Type) Type { return Type{Kind: Pointer, Elem: &elem} }

// NewArray returns an array of count elements.
func NewArray(elem Type, count uint64) Type {
	return Type{Kind: Array, Elem: &elem, Count: count}
}

// NewRecord returns a struct/union type with a precomputed layout size.
func NewRecord(tag string, size uint64) Type {
	return Type{Kind: Record, Tag: tag, Bytes: size}
}

// NewStack returns a stack capture type.
func NewStack(st StackType) Type { return Type{Kind: Stack, Stack: st} }
