package internal

import (
	"fmt"
	"reflect"

	"github.com/barkimedes/go-deepcopy"
	"github.com/mitchellh/reflectwalk"
)

// Relocate returns a private deep copy of the draw state v, so a render call
// never shares mutable memory with the caller while its workers are running.
// It fails when v cannot survive a copy: funcs, channels, unsafe pointers or
// unexported fields anywhere in the value graph.
func Relocate(v interface{}) (interface{}, error) {
	if err := CheckRelocatable(v); err != nil {
		return nil, err
	}
	return deepcopy.Anything(v)
}

// CheckRelocatable walks the whole value graph of v and reports the first
// value that would not survive a deep copy. Remember that reflect is
// relatively slow; callers relocating in a loop should validate once.
func CheckRelocatable(v interface{}) error {
	return reflectwalk.Walk(v, &relocationWalker{})
}

type relocationWalker struct{}

func (w *relocationWalker) Struct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.PkgPath != "" {
			return fmt.Errorf("unexported field %s.%s cannot be relocated", t.Name(), f.Name)
		}
	}
	return nil
}

func (w *relocationWalker) StructField(f reflect.StructField, v reflect.Value) error {
	return checkKind(f.Name, v)
}

func (w *relocationWalker) Primitive(v reflect.Value) error {
	return checkKind("", v)
}

func checkKind(name string, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if name != "" {
			return fmt.Errorf("field %s holds a %s and cannot be relocated", name, v.Kind())
		}
		return fmt.Errorf("%s values cannot be relocated", v.Kind())
	}
	return nil
}
