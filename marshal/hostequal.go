package marshal

import "reflect"

// HostEqual compares two host values under host equality semantics: numbers
// compare by value regardless of width or integer/float representation,
// byte strings by content, booleans strictly, and everything else by deep
// equality (wrappers therefore compare by identity).
func HostEqual(a, b any) bool {
	if as, ok := hostString(a); ok {
		bs, ok := hostString(b)
		return ok && as == bs
	}
	if _, ok := hostString(b); ok {
		return false
	}

	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	if _, ok := b.(bool); ok {
		return false
	}

	af, aNum := coerceToFloat64(a)
	bf, bNum := coerceToFloat64(b)
	if aNum && bNum {
		// integral values compare exactly where float64 would lose bits
		if ai, ok := coerceToInt64(a); ok {
			if bi, ok := coerceToInt64(b); ok {
				return ai == bi
			}
		}
		if au, ok := coerceToUint64(a); ok {
			if bu, ok := coerceToUint64(b); ok {
				return au == bu
			}
		}
		return af == bf
	}
	if aNum != bNum {
		return false
	}

	return reflect.DeepEqual(a, b)
}

func hostString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}
