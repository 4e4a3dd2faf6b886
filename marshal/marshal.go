package marshal

import (
	"reflect"
	"unicode/utf8"

	listbridge "github.com/wippyai/list-bridge"
	"github.com/wippyai/list-bridge/errors"
)

// Marshaller converts element values between their native representation and
// the host value domain. It is stateless apart from the allocator that owned
// byte-string copies are charged against; one marshaller serves any number
// of adapters sharing that allocator.
type Marshaller struct {
	alloc listbridge.Allocator
}

// New creates a marshaller. A nil allocator means unmetered byte-string
// copies.
func New(alloc listbridge.Allocator) *Marshaller {
	if alloc == nil {
		alloc = listbridge.Unlimited()
	}
	return &Marshaller{alloc: alloc}
}

// ToHost converts a native element value to its host representation.
// Composite elements are never copied outward; callers expose them through
// wrappers, and asking ToHost for one is a contract violation.
func (m *Marshaller) ToHost(et *ElemType, native any) (any, error) {
	switch et.Kind {
	case KindBool:
		rv, err := nativeValue(et, native)
		if err != nil {
			return nil, err
		}
		return rv.Bool(), nil

	case KindInt:
		rv, err := nativeValue(et, native)
		if err != nil {
			return nil, err
		}
		return rv.Int(), nil

	case KindUint:
		rv, err := nativeValue(et, native)
		if err != nil {
			return nil, err
		}
		return rv.Uint(), nil

	case KindFloat:
		rv, err := nativeValue(et, native)
		if err != nil {
			return nil, err
		}
		return rv.Float(), nil

	case KindBytes:
		// host-appended elements are stored as owned []byte copies, but a
		// natively-populated string list reads through the same path
		var b []byte
		switch v := native.(type) {
		case []byte:
			b = v
		case string:
			b = []byte(v)
		default:
			return nil, errors.TypeMismatch(errors.PhaseToHost, nil, typeName(native), et.String())
		}
		if !utf8.Valid(b) {
			return nil, errors.InvalidUTF8(errors.PhaseToHost, nil, b)
		}
		return string(b), nil

	case KindEnum:
		rv := reflect.ValueOf(native)
		if rv.Type() != et.GoType {
			return nil, errors.TypeMismatch(errors.PhaseToHost, nil, typeName(native), et.String())
		}
		tag := enumTag(rv)
		if tag < 0 || tag >= int64(len(et.Names)) {
			return nil, errors.InvalidEnum(errors.PhaseToHost, nil, tag, et.String())
		}
		return et.Names[tag], nil

	case KindStruct:
		return nil, errors.Unsupported(errors.PhaseToHost,
			"composite elements are exposed through wrappers, not copied")
	}

	return nil, errors.Unsupported(errors.PhaseToHost, "no marshalling rule for "+et.Kind.String())
}

// CopyOut is like ToHost but value-copies composite elements into a host
// field map, for callers that need a self-contained copy rather than a
// live wrapper.
func (m *Marshaller) CopyOut(et *ElemType, native any) (any, error) {
	if et.Kind != KindStruct {
		return m.ToHost(et, native)
	}

	rv := reflect.ValueOf(native)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, errors.NilPointer(errors.PhaseToHost, nil, et.String())
		}
		rv = rv.Elem()
	}
	if rv.Type() != et.GoType {
		return nil, errors.TypeMismatch(errors.PhaseToHost, nil, typeName(native), et.String())
	}

	out := make(map[string]any, len(et.Fields))
	for _, f := range et.Fields {
		fv, err := m.fieldToHost(&f, rv.Field(f.Index))
		if err != nil {
			return nil, err
		}
		out[f.Name] = fv
	}
	return out, nil
}

func (m *Marshaller) fieldToHost(f *Field, rv reflect.Value) (any, error) {
	if f.Type.Kind == KindBytes {
		var b []byte
		switch rv.Kind() {
		case reflect.String:
			b = []byte(rv.String())
		default:
			b = rv.Bytes()
		}
		if !utf8.Valid(b) {
			return nil, errors.InvalidUTF8(errors.PhaseToHost, []string{f.Name}, b)
		}
		return string(b), nil
	}
	return m.ToHost(f.Type, rv.Interface())
}

// FromHost converts a host value into a freshly-owned native element value.
// Nothing is left reserved on failure.
func (m *Marshaller) FromHost(et *ElemType, host any) (any, error) {
	switch et.Kind {
	case KindBool:
		return convert(reflect.ValueOf(Truthy(host)), et.GoType), nil

	case KindInt:
		v, ok := coerceToInt64(host)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseFromHost, nil, typeName(host), et.String())
		}
		if !fitsSignedBits(v, et.Bits) {
			return nil, errors.Overflow(errors.PhaseFromHost, nil, v, et.String())
		}
		return convert(reflect.ValueOf(v), et.GoType), nil

	case KindUint:
		v, ok := coerceToUint64(host)
		if !ok {
			// negative numbers are numeric but out of range, not mistyped
			if _, isNumeric := coerceToInt64(host); isNumeric {
				return nil, errors.Overflow(errors.PhaseFromHost, nil, host, et.String())
			}
			return nil, errors.TypeMismatch(errors.PhaseFromHost, nil, typeName(host), et.String())
		}
		if !fitsUnsignedBits(v, et.Bits) {
			return nil, errors.Overflow(errors.PhaseFromHost, nil, v, et.String())
		}
		return convert(reflect.ValueOf(v), et.GoType), nil

	case KindFloat:
		v, ok := coerceToFloat64(host)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseFromHost, nil, typeName(host), et.String())
		}
		return convert(reflect.ValueOf(v), et.GoType), nil

	case KindBytes:
		b, err := m.bytesFromHost(host, nil)
		if err != nil {
			return nil, err
		}
		return b, nil

	case KindStruct:
		return m.structFromHost(et, host)

	case KindEnum:
		return nil, errors.Unsupported(errors.PhaseFromHost,
			"enum element types convert native-to-host only")
	}

	return nil, errors.Unsupported(errors.PhaseFromHost, "no marshalling rule for "+et.Kind.String())
}

// bytesFromHost allocates a native-owned copy of the host string's bytes,
// charged against the allocator.
func (m *Marshaller) bytesFromHost(host any, path []string) ([]byte, error) {
	var src []byte
	switch v := host.(type) {
	case string:
		if !utf8.ValidString(v) {
			return nil, errors.InvalidUTF8(errors.PhaseFromHost, path, []byte(v))
		}
		src = []byte(v)
	case []byte:
		if !utf8.Valid(v) {
			return nil, errors.InvalidUTF8(errors.PhaseFromHost, path, v)
		}
		src = v
	default:
		return nil, errors.TypeMismatch(errors.PhaseFromHost, path, typeName(host), "bytes")
	}

	if err := m.alloc.Reserve(len(src)); err != nil {
		return nil, errors.AllocationFailed(errors.PhaseFromHost, len(src), err)
	}

	owned := make([]byte, len(src))
	copy(owned, src)
	return owned, nil
}

// structFromHost value-copies the host-supplied composite's fields into a
// fresh native struct. Accepted shapes: a field map keyed by host field
// names, or a value/pointer of the exact native struct type.
func (m *Marshaller) structFromHost(et *ElemType, host any) (any, error) {
	fields, err := hostFields(et, host)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(et.GoType)
	var reserved int
	for _, f := range et.Fields {
		raw, ok := fields[f.Name]
		if !ok {
			m.alloc.Release(reserved)
			return nil, errors.FieldMissing(errors.PhaseFromHost, []string{et.GoType.Name()}, f.Name)
		}

		var fv any
		if f.Type.Kind == KindBytes {
			b, err := m.bytesFromHost(raw, []string{et.GoType.Name(), f.Name})
			if err != nil {
				m.alloc.Release(reserved)
				return nil, err
			}
			reserved += len(b)
			fv = b
		} else {
			fv, err = m.FromHost(f.Type, raw)
			if err != nil {
				m.alloc.Release(reserved)
				return nil, errors.Wrap(errors.PhaseFromHost, errors.KindTypeMismatch, err,
					"field "+f.Name)
			}
		}

		field := ptr.Elem().Field(f.Index)
		field.Set(reflect.ValueOf(fv).Convert(field.Type()))
	}

	return ptr.Interface(), nil
}

// hostFields normalizes the supported composite shapes into one field map.
func hostFields(et *ElemType, host any) (map[string]any, error) {
	if mp, ok := host.(map[string]any); ok {
		return mp, nil
	}

	rv := reflect.ValueOf(host)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != et.GoType {
		return nil, errors.New(errors.PhaseFromHost, errors.KindTypeMismatch).
			GoType(typeName(host)).
			ElemType(et.String()).
			Detail("host value shape does not match the composite element type").
			Build()
	}

	fields := make(map[string]any, len(et.Fields))
	for _, f := range et.Fields {
		fields[f.Name] = rv.Field(f.Index).Interface()
	}
	return fields, nil
}

// ReleaseNative returns the allocator units held by a native element's owned
// byte storage. Called exactly once when the owning node is destroyed.
func (m *Marshaller) ReleaseNative(et *ElemType, native any) {
	switch et.Kind {
	case KindBytes:
		if b, ok := native.([]byte); ok {
			m.alloc.Release(len(b))
		}

	case KindStruct:
		rv := reflect.ValueOf(native)
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return
			}
			rv = rv.Elem()
		}
		if rv.Type() != et.GoType {
			return
		}
		for _, f := range et.Fields {
			if f.Type.Kind != KindBytes {
				continue
			}
			m.alloc.Release(rv.Field(f.Index).Len())
		}
	}
}

func nativeValue(et *ElemType, native any) (reflect.Value, error) {
	rv := reflect.ValueOf(native)
	if !rv.IsValid() || rv.Type() != et.GoType {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseToHost, nil, typeName(native), et.String())
	}
	return rv, nil
}

func enumTag(rv reflect.Value) int64 {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	default:
		return rv.Int()
	}
}

func convert(rv reflect.Value, to reflect.Type) any {
	return rv.Convert(to).Interface()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
