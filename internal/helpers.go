package internal

import "reflect"

func ZeroValue[T any]() T {
	var nilValue T
	return nilValue
}

func TypeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if name := t.Name(); name != "" {
		return name
	}

	return t.String()
}

// InstanceTypeName names the dynamic type of instance, looking through pointers.
func InstanceTypeName(instance any) string {
	t := reflect.TypeOf(instance)
	if t == nil {
		return "nil"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if name := t.Name(); name != "" {
		return name
	}

	return t.String()
}
