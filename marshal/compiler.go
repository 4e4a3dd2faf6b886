package marshal

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/list-bridge/errors"
)

// Enum marks a named integer type as an enumeration element type. The tag
// names index by native tag value; tags outside the slice are invalid.
type Enum interface {
	EnumStrings() []string
}

var enumIface = reflect.TypeOf((*Enum)(nil)).Elem()

// ElemType is the compiled descriptor of an element type. One descriptor is
// built per distinct Go type and shared by every adapter bound to it.
type ElemType struct {
	GoType reflect.Type
	Names  []string // enum tag names, KindEnum only
	Fields []Field  // KindStruct only
	Bits   int      // scalar width, KindInt/KindUint/KindFloat
	Kind   Kind
}

// Field describes one marshallable field of a composite element type.
// Composite nesting stops at one level: fields are scalars or byte strings.
type Field struct {
	Type  *ElemType
	Name  string // host-facing kebab-case name
	Index int    // Go struct field index
}

// String returns the descriptor's element type name for error reporting.
func (et *ElemType) String() string {
	switch et.Kind {
	case KindStruct:
		return "struct " + et.GoType.Name()
	case KindEnum:
		return "enum " + et.GoType.Name()
	case KindInt, KindUint, KindFloat:
		return et.GoType.Kind().String()
	default:
		return et.Kind.String()
	}
}

// Compiler builds ElemType descriptors from Go types. Compilation results
// are cached per Go type; compiling the same type twice returns the same
// descriptor.
type Compiler struct {
	cache sync.Map // reflect.Type -> *ElemType
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile maps a Go type to its element category. Pointer-to-struct types
// are dereferenced first. Types with no marshalling rule fail with an
// unsupported error.
func (c *Compiler) Compile(goType reflect.Type) (*ElemType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}

	if goType.Kind() == reflect.Ptr && goType.Elem().Kind() == reflect.Struct {
		goType = goType.Elem()
	}

	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*ElemType), nil
	}

	et, err := c.compile(goType, nil)
	if err != nil {
		return nil, err
	}

	c.cache.Store(goType, et)
	return et, nil
}

func (c *Compiler) compile(goType reflect.Type, path []string) (*ElemType, error) {
	if goType.Implements(enumIface) {
		// enums are one-directional, so a composite carrying one could
		// never be converted host-to-native
		if len(path) > 0 {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(path...).
				GoType(goType.String()).
				Detail("composite fields must be scalars or byte strings").
				Build()
		}
		return c.compileEnum(goType)
	}

	switch goType.Kind() {
	case reflect.Bool:
		return &ElemType{Kind: KindBool, GoType: goType}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &ElemType{Kind: KindInt, GoType: goType, Bits: goType.Bits()}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &ElemType{Kind: KindUint, GoType: goType, Bits: goType.Bits()}, nil

	case reflect.Float32, reflect.Float64:
		return &ElemType{Kind: KindFloat, GoType: goType, Bits: goType.Bits()}, nil

	case reflect.String:
		return &ElemType{Kind: KindBytes, GoType: goType}, nil

	case reflect.Slice:
		if goType.Elem().Kind() == reflect.Uint8 {
			return &ElemType{Kind: KindBytes, GoType: goType}, nil
		}

	case reflect.Struct:
		if len(path) > 0 {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(path...).
				GoType(goType.String()).
				Detail("composite fields must be scalars or byte strings").
				Build()
		}
		return c.compileStruct(goType)
	}

	return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		GoType(goType.String()).
		Detail("no marshalling rule for this type").
		Build()
}

func (c *Compiler) compileEnum(goType reflect.Type) (*ElemType, error) {
	switch goType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			GoType(goType.String()).
			Detail("enum types must have an integer underlying kind").
			Build()
	}

	names := reflect.Zero(goType).Interface().(Enum).EnumStrings()
	if len(names) == 0 {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidInput).
			GoType(goType.String()).
			Detail("enum type declares no tag names").
			Build()
	}

	return &ElemType{Kind: KindEnum, GoType: goType, Names: names}, nil
}

func (c *Compiler) compileStruct(goType reflect.Type) (*ElemType, error) {
	et := &ElemType{Kind: KindStruct, GoType: goType}

	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		if !sf.IsExported() {
			continue
		}

		ft, err := c.compile(sf.Type, []string{goType.Name(), sf.Name})
		if err != nil {
			return nil, err
		}

		et.Fields = append(et.Fields, Field{
			Type:  ft,
			Name:  toKebabCase(sf.Name),
			Index: i,
		})
	}

	if len(et.Fields) == 0 {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			GoType(goType.String()).
			Detail("composite type has no marshallable fields").
			Build()
	}

	return et, nil
}

// toKebabCase converts PascalCase to kebab-case.
// Handles acronyms: GetHTTPURL -> get-http-url
func toKebabCase(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsUpper(r) {
			acronymEnd := i + 1
			for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
				acronymEnd++
			}

			if acronymEnd > i+1 {
				// Last uppercase before lowercase starts next word, not part of acronym
				if acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
					acronymEnd--
				}
			}

			if i > 0 {
				result.WriteByte('-')
			}

			for j := i; j < acronymEnd; j++ {
				result.WriteRune(unicode.ToLower(runes[j]))
			}
			i = acronymEnd - 1 // -1 because loop will increment
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
