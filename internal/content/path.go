package content

import (
	"errors"
	"fmt"
)

// ErrPathNotFound reports a path segment that matches nothing.
var ErrPathNotFound = errors.New("path not found in payload")

// GetPath resolves a path through the payload. Object segments are field
// names; list segments are item ids.
func GetPath(p Payload, path []string) (Value, bool) {
	if len(path) == 0 {
		return Null(), false
	}
	current, ok := p[path[0]]
	if !ok {
		return Null(), false
	}
	for _, segment := range path[1:] {
		current, ok = step(current, segment)
		if !ok {
			return Null(), false
		}
	}
	return current, true
}

// SetPath returns a copy of the payload with the value at the path
// replaced. Intermediate segments must exist; only the leaf may be new,
// and only inside an object.
func SetPath(p Payload, path []string, v Value) (Payload, error) {
	if len(path) == 0 {
		return nil, ErrPathNotFound
	}
	next := p.Clone()
	if len(path) == 1 {
		next[path[0]] = v
		return next, nil
	}
	root, ok := next[path[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path[0])
	}
	replaced, err := setValue(root, path[1:], v)
	if err != nil {
		return nil, err
	}
	next[path[0]] = replaced
	return next, nil
}

func setValue(current Value, path []string, v Value) (Value, error) {
	segment := path[0]
	switch current.Kind() {
	case KindObject:
		fields := make(map[string]Value, len(current.Fields()))
		for name, value := range current.Fields() {
			fields[name] = value
		}
		if len(path) == 1 {
			fields[segment] = v
			return Object(fields), nil
		}
		child, ok := fields[segment]
		if !ok {
			return Null(), fmt.Errorf("%w: %q", ErrPathNotFound, segment)
		}
		replaced, err := setValue(child, path[1:], v)
		if err != nil {
			return Null(), err
		}
		fields[segment] = replaced
		return Object(fields), nil
	case KindList:
		items := current.Items()
		for i, item := range items {
			if id, ok := item.Field("id"); ok && id.Str() == segment {
				var (
					replaced Value
					err      error
				)
				if len(path) == 1 {
					replaced = v
				} else {
					replaced, err = setValue(item, path[1:], v)
					if err != nil {
						return Null(), err
					}
				}
				out := make([]Value, len(items))
				copy(out, items)
				out[i] = replaced
				return List(out...), nil
			}
		}
		return Null(), fmt.Errorf("%w: item %q", ErrPathNotFound, segment)
	default:
		return Null(), fmt.Errorf("%w: %q is not traversable", ErrPathNotFound, segment)
	}
}

func step(current Value, segment string) (Value, bool) {
	switch current.Kind() {
	case KindObject:
		return current.Field(segment)
	case KindList:
		for _, item := range current.Items() {
			if id, ok := item.Field("id"); ok && id.Str() == segment {
				return item, true
			}
		}
	}
	return Null(), false
}
