package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mutex       sync.RWMutex
	enumManager = map[string]any{}
)

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
	values   []T
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.Name()
}

// New registers value as a member of its enum type. The string form used by
// ToEnum and ToString is the given name, or the value itself when no name is
// given.
func New[T comparable](value T, name ...string) T {
	mutex.Lock()
	defer mutex.Unlock()

	key := typeKey(reflect.TypeOf(value))
	if _, ok := enumManager[key]; !ok {
		enumManager[key] = &enum[T]{toEnum: make(map[string]T), toString: make(map[T]string)}
	}

	s := fmt.Sprint(value)
	if len(name) > 0 {
		s = name[0]
	}

	e := enumManager[key].(*enum[T])
	e.toEnum[s] = value
	e.toString[value] = s
	e.values = append(e.values, value)
	return value
}

func get[T comparable]() (*enum[T], bool) {
	mutex.RLock()
	defer mutex.RUnlock()

	var defaultT T
	e, ok := enumManager[typeKey(reflect.TypeOf(defaultT))]
	if !ok {
		return nil, false
	}

	return e.(*enum[T]), true
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := get[T]()
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

func ToString[T comparable](value T) string {
	e, ok := get[T]()
	if !ok {
		return ""
	}

	return e.toString[value]
}

// Values returns all registered members of T in registration order.
func Values[T comparable]() []T {
	e, ok := get[T]()
	if !ok {
		return nil
	}

	return append([]T(nil), e.values...)
}
