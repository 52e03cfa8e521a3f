package util

import (
	"errors"
	"fmt"
	"reflect"
)

// IsStructInitialized returns an error naming the first exported field of s
// (a struct or pointer to one) that still holds its zero value. Fields tagged
// `ready:"optional"` are skipped.
func IsStructInitialized(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return errors.New("struct is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := range v.NumField() {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("ready") == "optional" {
			continue
		}
		if v.Field(i).IsZero() {
			return fmt.Errorf("field %s is not initialized", field.Name)
		}
	}

	return nil
}
