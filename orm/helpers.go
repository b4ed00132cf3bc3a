package orm

import "reflect"

// cloneEmpty returns a new zero value of the same type as m.
func cloneEmpty(m Model) Model {
	t := reflect.TypeOf(m)
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface().(Model)
	}
	return reflect.New(t).Elem().Interface().(Model)
}
