package rdom

import "reflect"

// equality tiers for the default item comparison.
type tier uint8

const (
	tierPrimitive tier = iota + 1
	tierReference
	tierComposite
)

func tierOf(k reflect.Kind) tier {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return tierPrimitive
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.UnsafePointer:
		return tierReference
	default:
		return tierComposite
	}
}

// DefaultEquals is the two-tier reuse heuristic: non-primitive values
// compare by reference identity, primitive values by equality, and a tier
// mismatch counts as changed. Composite values without identity (struct and
// array values) always count as changed - the heuristic cannot tell an
// untouched copy from a rebuilt one, so it re-renders.
//
// This is a pluggable default, not a rule: pass your own equality function
// when the heuristic would mistake accidental reference reuse for an
// intentional one.
func DefaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}

	ra, rb := reflect.ValueOf(av), reflect.ValueOf(bv)
	if ra.Type() != rb.Type() {
		return false
	}

	switch tierOf(ra.Kind()) {
	case tierPrimitive:
		return av == bv
	case tierReference:
		return ra.Pointer() == rb.Pointer()
	default:
		return false
	}
}
