package store

import (
	"reflect"

	"github.com/revio-dev/revio/internal/errors"
	"github.com/revio-dev/revio/pkg/reactive"
)

// Store wraps one root cell holding a structured value.
type Store[T any] struct {
	root *reactive.Cell[T]
}

// New creates a store over a fresh root cell owned by rt.
func New[T any](rt *reactive.Runtime, initial T) *Store[T] {
	return &Store[T]{
		root: reactive.NewCell(rt, initial),
	}
}

// Cell exposes the root cell, e.g. for declaring it as an effect dependency.
func (s *Store[T]) Cell() *reactive.Cell[T] {
	return s.root
}

// Value returns the current root value.
func (s *Store[T]) Value() T {
	return s.root.Get()
}

// Set replaces the root value. One write, one notification burst.
func (s *Store[T]) Set(v T) {
	s.root.Set(v)
}

// Update writes mutator(current) as the new root value.
func (s *Store[T]) Update(mutator func(T) T) {
	s.root.Set(mutator(s.root.Get()))
}

// Patch shallow-merges partial into the current value and writes the result
// as one root write. The store value must be a struct or a string-keyed map;
// each key must name an existing field (or map key) with an assignable
// value. Violations panic with a coded usage error, raised before any write
// happens.
func (s *Store[T]) Patch(partial map[string]any) {
	s.root.Set(merge(s.root.Get(), partial))
}

// merge builds the shallow-merged copy. The original is never mutated.
func merge[T any](current T, partial map[string]any) T {
	rv := reflect.ValueOf(&current).Elem()

	switch rv.Kind() {
	case reflect.Struct:
		next := reflect.New(rv.Type()).Elem()
		next.Set(rv)
		for key, val := range partial {
			field := next.FieldByName(key)
			if !field.IsValid() {
				panic(errors.Newf("E103", "no field %q in %s", key, rv.Type()))
			}
			if !field.CanSet() {
				panic(errors.Newf("E103", "field %q of %s is unexported", key, rv.Type()))
			}
			assign(field, key, val)
		}
		return next.Interface().(T)

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			panic(errors.Newf("E103", "map key type is %s, want string", rv.Type().Key()))
		}
		next := reflect.MakeMapWithSize(rv.Type(), rv.Len()+len(partial))
		iter := rv.MapRange()
		for iter.Next() {
			next.SetMapIndex(iter.Key(), iter.Value())
		}
		for key, val := range partial {
			elem := reflect.New(rv.Type().Elem()).Elem()
			assign(elem, key, val)
			next.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), elem)
		}
		return next.Interface().(T)

	default:
		panic(errors.Newf("E103", "store value is %s, want struct or map", rv.Kind()))
	}
}

// assign sets dst to val, allowing nil for nilable targets.
func assign(dst reflect.Value, key string, val any) {
	if val == nil {
		switch dst.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
			reflect.Func, reflect.Interface:
			dst.Set(reflect.Zero(dst.Type()))
			return
		}
		panic(errors.Newf("E103", "nil value for non-nilable key %q (%s)", key, dst.Type()))
	}
	v := reflect.ValueOf(val)
	if !v.Type().AssignableTo(dst.Type()) {
		panic(errors.Newf("E103", "value for key %q is %s, want %s", key, v.Type(), dst.Type()))
	}
	dst.Set(v)
}
